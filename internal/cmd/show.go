package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gravitrone/novel-matrix/internal/config"
	"github.com/gravitrone/novel-matrix/internal/logging"
	"github.com/gravitrone/novel-matrix/internal/matrix"
	"github.com/gravitrone/novel-matrix/internal/session"
	"github.com/gravitrone/novel-matrix/internal/ui/components"
)

const showCellWidth = 9

// ShowCmd returns the `matrix show` command.
func ShowCmd() *cobra.Command {
	var (
		flags    ProjectFlags
		category string
	)
	cmd := &cobra.Command{
		Use:   "show [project]",
		Short: "Print one category of the matrix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cat, err := parseCategory(category)
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			log := logging.New(c.ErrOrStderr(), cfg.SlogLevel())

			s, err := flags.Open(cfg, args, log.Logger)
			if err != nil {
				return err
			}
			printMatrix(c.OutOrStdout(), s, cat)
			return nil
		},
	}
	flags.Bind(cmd)
	cmd.Flags().StringVarP(&category, "category", "c", "arcs", "arcs, characters, locations or items")
	return cmd
}

func parseCategory(name string) (matrix.Category, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, c := range matrix.Categories {
		full := strings.ToLower(c.String())
		if n == full || n == strings.TrimSuffix(full, "s") {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q (want arcs, characters, locations or items)", name)
}

func printMatrix(w io.Writer, s *session.Session, c matrix.Category) {
	labels := s.Labels()
	cols := labels.Columns(c)
	fmt.Fprintf(w, "%s: %d scenes, %d %s\n", s.Name(), len(labels.Rows), len(cols), strings.ToLower(c.String()))
	if c == matrix.Arc && labels.Subplot {
		fmt.Fprintln(w, "no arcs defined: showing the Subplot flag")
	}
	if len(labels.Rows) == 0 || len(cols) == 0 {
		return
	}

	titles := make([]string, 0, len(cols))
	for _, col := range cols {
		titles = append(titles, col.Title)
	}
	rows := make([]components.GridRow, 0, len(labels.Rows))
	labelWidth := 8
	for i, r := range labels.Rows {
		cells := make([]bool, 0, len(cols))
		for _, col := range cols {
			cells = append(cells, s.Grid().Get(r.Key, c, col.Key))
		}
		rows = append(rows, components.GridRow{Number: i + 1, Title: r.Title, Cells: cells})
		if lw := lipgloss.Width(fmt.Sprintf("%d %s", i+1, components.SanitizeOneLine(r.Title))); lw > labelWidth {
			labelWidth = lw
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, components.MatrixGrid(components.GridSpec{
		Columns:    titles,
		Rows:       rows,
		ActiveRow:  -1,
		ActiveCol:  -1,
		LabelWidth: labelWidth,
		CellWidth:  showCellWidth,
		On:         "x",
		Off:        ".",
	}))
}

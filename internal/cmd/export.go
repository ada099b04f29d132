package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravitrone/novel-matrix/internal/config"
	"github.com/gravitrone/novel-matrix/internal/export"
	"github.com/gravitrone/novel-matrix/internal/logging"
)

// ExportCmd returns the `matrix export` command.
func ExportCmd() *cobra.Command {
	var (
		flags        ProjectFlags
		out          string
		delimiter    string
		encoding     string
		marker       string
		noRowNumbers bool
	)
	cmd := &cobra.Command{
		Use:   "export [project]",
		Short: "Write the relationship matrix as CSV",
		Long: "Write every scene of the normal chapters against all arcs, characters,\n" +
			"locations and items. The file name must end with the configured suffix\n" +
			"and .csv; by default it is written next to the project file.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			log := logging.New(c.ErrOrStderr(), cfg.SlogLevel())

			s, err := flags.Open(cfg, args, log.Logger)
			if err != nil {
				return err
			}

			if c.Flags().Changed("delimiter") {
				cfg.CSVDelimiter = delimiter
			}
			opts := cfg.ExportOptions()
			if encoding != "" {
				opts.Encoding = encoding
			}
			if noRowNumbers {
				opts.RowNumbers = false
			}
			if marker != "" {
				opts.SharedMarkers(export.Markers{True: marker})
			}

			path := out
			if path == "" {
				path = s.DefaultExportPath(opts.Suffix)
			}
			if err := s.Export(path, opts); err != nil {
				return fmt.Errorf("export: %w", err)
			}

			fmt.Fprintf(c.OutOrStdout(), "exported %d scenes to %s\n", len(s.Labels().Rows), path)
			return nil
		},
	}
	flags.Bind(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (must end with the suffix and .csv)")
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "", "field delimiter: a character, tab or semicolon")
	cmd.Flags().StringVar(&encoding, "encoding", "", "text encoding, e.g. utf-8 or windows-1252")
	cmd.Flags().StringVar(&marker, "marker", "", "one marker for every category instead of the per-category ones")
	cmd.Flags().BoolVar(&noRowNumbers, "no-row-numbers", false, "omit the scene number column")
	return cmd
}

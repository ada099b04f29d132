package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/novel-matrix/internal/cmd"
	"github.com/gravitrone/novel-matrix/internal/config"
	"github.com/gravitrone/novel-matrix/internal/host"
	"github.com/gravitrone/novel-matrix/internal/logging"
	"github.com/gravitrone/novel-matrix/internal/session"
	"github.com/gravitrone/novel-matrix/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags cmd.ProjectFlags
	root := &cobra.Command{
		Use:   "matrix [project]",
		Short: "Scene relationship matrix for novel projects",
		Long: "matrix edits which arcs, characters, locations and items appear in each\n" +
			"scene of a novel project, and exports the grid as CSV.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runTUI(&flags, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.Bind(root)

	root.AddCommand(cmd.ExportCmd())
	root.AddCommand(cmd.ShowCmd())
	root.AddCommand(cmd.ConfigCmd())
	root.AddCommand(cmd.PingCmd())
	return root
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI(flags *cmd.ProjectFlags, args []string) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}

	p, path, err := flags.Project(cfg, args)
	if err != nil {
		if errors.Is(err, host.ErrNoProject) {
			fmt.Println("no project. run 'matrix <project file>' or set host_url in the config.")
		}
		return err
	}
	logger, err := logging.NewFile(config.Dir(), cfg.SlogLevel())
	if err != nil {
		return err
	}
	defer logger.Close()

	s, err := session.Open(p, logger.Logger)
	if err != nil {
		return err
	}
	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return errors.New("the editor needs a terminal; use 'matrix show' or 'matrix export'")
	}

	if path != "" && path != cfg.Project {
		cfg.Project = path
		if err := cfg.Save(); err != nil {
			logger.Warn("remember project failed", "err", err)
		}
	}

	prog := tea.NewProgram(ui.NewApp(s, cfg), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		logger.Error("tui exited", "err", err)
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

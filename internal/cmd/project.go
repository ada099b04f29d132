package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/gravitrone/novel-matrix/internal/config"
	"github.com/gravitrone/novel-matrix/internal/host"
	"github.com/gravitrone/novel-matrix/internal/session"
)

// ProjectFlags selects the project a command works on. A positional project
// file wins over the configured one; --host switches to the bridge.
type ProjectFlags struct {
	Host    string
	Token   string
	Timeout time.Duration
}

// Bind registers --host, --token and --timeout on cmd.
func (f *ProjectFlags) Bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Host, "host", "", "bridge URL of a running host application")
	cmd.Flags().StringVar(&f.Token, "token", "", "bridge token (defaults to host_token)")
	cmd.Flags().DurationVar(&f.Timeout, "timeout", 0, "bridge request timeout (default 30s)")
}

// Project resolves the project from args, flags and config. path is the
// absolute project file, or empty when the bridge is used.
func (f *ProjectFlags) Project(cfg *config.Config, args []string) (host.Project, string, error) {
	path, hostURL, token := cfg.Project, cfg.HostURL, cfg.HostToken
	if len(args) > 0 {
		path = args[0]
		hostURL = ""
	}
	if f.Host != "" {
		hostURL = f.Host
	}
	if f.Token != "" {
		token = f.Token
	}

	p, err := host.Open(path, hostURL, token, f.Timeout)
	if err != nil {
		return nil, "", err
	}
	if _, ok := p.(*host.FileProject); !ok {
		return p, "", nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolve project path: %w", err)
	}
	return host.NewFileProject(abs), abs, nil
}

// Open resolves the project and loads it into a session.
func (f *ProjectFlags) Open(cfg *config.Config, args []string, log *slog.Logger) (*session.Session, error) {
	p, _, err := f.Project(cfg, args)
	if err != nil {
		return nil, err
	}
	return session.Open(p, log)
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravitrone/novel-matrix/internal/api"
	"github.com/gravitrone/novel-matrix/internal/config"
	"github.com/gravitrone/novel-matrix/internal/host"
)

// PingCmd returns the `matrix ping` command.
func PingCmd() *cobra.Command {
	var flags ProjectFlags
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that the host bridge is reachable",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			url, token := cfg.HostURL, cfg.HostToken
			if flags.Host != "" {
				url = flags.Host
			}
			if flags.Token != "" {
				token = flags.Token
			}
			if url == "" {
				return errors.New("no host: pass --host or set host_url in the config")
			}

			client := api.NewClient(url, token)
			if flags.Timeout > 0 {
				client = client.WithTimeout(flags.Timeout)
			}
			if err := host.NewRemoteProject(client).Ping(); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "host ok: %s\n", client.BaseURL())
			return nil
		},
	}
	flags.Bind(cmd)
	return cmd
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/leadscout/leadscout/internal/server"
)

// newServeCmd creates the serve command: the scoring and capture HTTP
// service the hunter can score against and append leads to.
func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scoring and capture HTTP service.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			store, err := server.NewCaptureStore(cfg.Server.StorePath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return server.NewServer(store, logger).Run(cmd.Context(), cfg.Server.Port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (defaults to server.port)")

	return cmd
}

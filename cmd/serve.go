package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-profile/internal/api"
	"github.com/naka-gawa/github-profile/internal/logger"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve profile statistics over HTTP",
		Long:  `Starts an HTTP server answering GET /api/github?u=<username> with the aggregated profile statistics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if port, _ := cmd.Flags().GetInt("port"); port > 0 {
				cfg.Server.Port = port
			}

			app := fx.New(
				fx.Supply(cfg),
				fx.Provide(
					logger.New,
					newFetcher,
					newAggregator,
				),
				fx.Decorate(func(l *zap.Logger) *zap.Logger {
					return l.With(zap.String("service", "github-profile"))
				}),
				fx.Invoke(api.Run),
				fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
					return &fxevent.ZapLogger{Logger: l}
				}),
			)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
	cmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides SERVER_PORT)")
	return cmd
}

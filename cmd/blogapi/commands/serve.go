package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"blogapi/internal/api"
	"blogapi/internal/pipe"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {

			cfg := loadConfig()

			st, closer, err := openStore(cmd.Context(), cfg)
			if err != nil {
				logrus.WithError(err).Error("error connecting to the database")
				return err
			}
			defer closer()

			router := api.NewRouter(st, api.Options{
				BcryptCost: cfg.BcryptCost,
				Logger:     pipe.DefaultLogger{},
			})

			logrus.WithField("port", cfg.Port).Info("server is running")
			return router.Run(":" + cfg.Port)
		},
	}
}

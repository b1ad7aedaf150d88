package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"blogapi/internal/seed"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load fixture data into the store",
		RunE: func(cmd *cobra.Command, args []string) error {

			cfg := loadConfig()

			st, closer, err := openStore(cmd.Context(), cfg)
			if err != nil {
				logrus.WithError(err).Error("error connecting to the database")
				return err
			}
			defer closer()

			return seed.Seed(cmd.Context(), st, cfg.BcryptCost)
		},
	}
}

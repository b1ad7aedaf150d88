package commands

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"blogapi/internal/app"
	"blogapi/internal/store"
	"blogapi/internal/store/memstore"
)

var (
	port       string
	mongoURI   string
	database   string
	bcryptCost int
	useMem     bool
)

func Execute() error {
	root := &cobra.Command{
		Use:           "blogapi",
		Short:         "Users, posts, and comments over a document store",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&port, "port", "", "listen port (default $PORT or 3000)")
	root.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "", "mongo connection string (default $MONGO_URI)")
	root.PersistentFlags().StringVar(&database, "database", "", "mongo database name (default $MONGO_DATABASE)")
	root.PersistentFlags().IntVar(&bcryptCost, "bcrypt-cost", 0, "password hashing work factor (default $BCRYPT_COST or 10)")
	root.PersistentFlags().BoolVar(&useMem, "mem", false, "use the in-memory store instead of mongo")

	root.AddCommand(serveCmd(), seedCmd())
	return root.Execute()
}

// loadConfig merges environment configuration with flag overrides.
func loadConfig() app.Config {
	cfg := app.FromEnv()
	if port != "" {
		cfg.Port = port
	}
	if mongoURI != "" {
		cfg.MongoURI = mongoURI
	}
	if database != "" {
		cfg.Database = database
	}
	if bcryptCost != 0 {
		cfg.BcryptCost = bcryptCost
	}
	return cfg
}

// openStore connects the configured store. The returned closer is safe to
// defer regardless of which backend was selected.
func openStore(ctx context.Context, cfg app.Config) (store.Store, func(), error) {

	if useMem {
		logrus.Info("using in-memory store")
		return memstore.New(), func() {}, nil
	}

	ms, err := store.Connect(ctx, cfg.MongoURI, cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	closer := func() {
		if err := ms.Close(context.Background()); err != nil {
			logrus.WithError(err).Warn("error disconnecting from the database")
		}
	}

	if err := ms.EnsureIndexes(ctx); err != nil {
		closer()
		return nil, nil, err
	}

	return ms, closer, nil
}

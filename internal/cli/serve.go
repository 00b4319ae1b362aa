package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ringlet/internal/server"
	"github.com/matzehuels/ringlet/pkg/config"
	"github.com/matzehuels/ringlet/pkg/session"
	"github.com/matzehuels/ringlet/pkg/store"
)

// serveCommand creates the serve command for running the browser editor.
func (c *CLI) serveCommand() *cobra.Command {
	var configPath, listen string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the browser editing server",
		Long: `Serve runs the HTTP server hosting the browser editor. Each browser
session edits its own diagram; diagrams can be saved to and loaded from the
configured store. Backends (sessions, store) are set in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			return c.runServe(cmd.Context(), cfg, noCache)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/ringlet/config.toml)")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config, noCache bool) error {
	sessions, err := newSessionStore(ctx, cfg.Sessions)
	if err != nil {
		return err
	}
	defer sessions.Close()
	c.Logger.Infof("Sessions: %s backend", cfg.Sessions.Backend)

	diagrams, err := newDiagramStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer diagrams.Close()
	c.Logger.Infof("Store: %s backend", cfg.Store.Backend)

	runner := c.newRunner(noCache)
	defer runner.Close()

	return server.New(cfg, sessions, diagrams, runner, c.Logger).Run(ctx)
}

func newSessionStore(ctx context.Context, cfg config.Sessions) (session.Store, error) {
	switch cfg.Backend {
	case config.SessionBackendRedis:
		return session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	default:
		return session.NewMemoryStore(), nil
	}
}

func newDiagramStore(ctx context.Context, cfg config.Store) (store.Store, error) {
	switch cfg.Backend {
	case config.StoreBackendMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		return store.NewFileStore(cfg.Dir)
	}
}

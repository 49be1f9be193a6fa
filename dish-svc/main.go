package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"overcooked-restaurant/config"
	httpapi "overcooked-restaurant/dish-svc/internal/api/http"
	"overcooked-restaurant/dish-svc/internal/seed"
	"overcooked-restaurant/dish-svc/internal/service"
	"overcooked-restaurant/dish-svc/internal/storage"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("dish-svc failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "dish-svc",
		Usage: "restaurant dishes, users and orders",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "optional dotenv file read before the environment",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "seed", Usage: "insert the baseline data into empty tables first"},
				},
				Action: runServe,
			},
			{
				Name:   "migrate",
				Usage:  "apply schema migrations and exit",
				Action: runMigrate,
			},
			{
				Name:   "seed",
				Usage:  "apply migrations, insert the baseline data and exit",
				Action: runSeed,
			},
		},
	}
}

// bootstrap loads configuration and returns a migrated gateway.
func bootstrap(c *cli.Context) (*config.Config, *storage.Gateway, error) {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return nil, nil, err
	}
	config.InitLogger(cfg, "dish-svc")

	gw, err := storage.Open(c.Context, storage.Options{
		Driver:          cfg.DB.Driver,
		DSN:             cfg.DB.DSN(),
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := gw.Migrate(c.Context); err != nil {
		gw.Close()
		return nil, nil, err
	}
	return cfg, gw, nil
}

func runMigrate(c *cli.Context) error {
	_, gw, err := bootstrap(c)
	if err != nil {
		return err
	}
	return gw.Close()
}

func runSeed(c *cli.Context) error {
	_, gw, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer gw.Close()
	return seedDefaults(c.Context, gw)
}

func seedDefaults(ctx context.Context, gw *storage.Gateway) error {
	data, err := seed.Defaults()
	if err != nil {
		return err
	}
	return seed.NewSeeder(gw, data).Run(ctx)
}

func runServe(c *cli.Context) error {
	cfg, gw, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer gw.Close()

	if c.Bool("seed") {
		if err := seedDefaults(c.Context, gw); err != nil {
			return err
		}
	}

	var publisher service.ReviewPublisher
	if cfg.Kafka.Broker != "" {
		writer := config.NewKafkaWriter(cfg.Kafka)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	}

	handler := httpapi.NewHandler(
		service.NewDishService(gw, publisher, cfg.App.SearchBatchSize),
		service.NewUserService(gw),
		service.NewOrderService(gw, service.DefaultQRGenerator{BaseURL: cfg.App.PublicURL}),
	)
	srv := httpapi.NewServer(":"+cfg.App.Port, httpapi.NewRouter(handler))

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("Server stopped")
	return nil
}

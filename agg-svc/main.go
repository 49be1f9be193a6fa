package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "overcooked-restaurant/agg-svc/internal/api/http"
	"overcooked-restaurant/agg-svc/internal/service"
	"overcooked-restaurant/agg-svc/internal/storage"
	"overcooked-restaurant/config"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("agg-svc failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "agg-svc",
		Usage: "aggregate review events into dish ratings",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "optional dotenv file read before the environment",
			},
			&cli.StringFlag{
				Name:  "port",
				Usage: "port of the rating read API, overrides AGG_PORT",
			},
		},
		Action: run,
	}
}

// loadConfig reads .env and the environment, then applies flags given on the
// command line.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("port") {
		cfg.Agg.Port = c.String("port")
	}
	return cfg, nil
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	config.InitLogger(cfg, "agg-svc")

	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg.Kafka)
	defer reader.Close()

	store := storage.NewStore(rdb, cfg.Redis.EventTTL)
	consumer := service.NewConsumer(reader, store)
	srv := httpapi.NewServer(":"+cfg.Agg.Port, httpapi.NewRouter(httpapi.NewHandler(store)))

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.Start(gctx)
	})
	g.Go(func() error {
		log.Info().Str("port", cfg.Agg.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

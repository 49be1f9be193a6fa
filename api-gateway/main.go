package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"overcooked-restaurant/api-gateway/internal/gateway"
	"overcooked-restaurant/config"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("api-gateway failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "api-gateway",
		Usage: "single entry point in front of dish-svc and agg-svc",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "optional dotenv file read before the environment"},
			&cli.StringFlag{Name: "port", Usage: "listen port, overrides GATEWAY_PORT"},
			&cli.StringFlag{Name: "dish-svc-url", Usage: "dish-svc base URL, overrides DISH_SVC_URL"},
			&cli.StringFlag{Name: "agg-svc-url", Usage: "agg-svc base URL, overrides AGG_SVC_URL"},
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
		cfg.Gateway.Port = c.String("port")
	}
	if c.IsSet("dish-svc-url") {
		cfg.Gateway.DishSvcURL = c.String("dish-svc-url")
	}
	if c.IsSet("agg-svc-url") {
		cfg.Gateway.AggSvcURL = c.String("agg-svc-url")
	}
	return cfg, nil
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	config.InitLogger(cfg, "api-gateway")

	gw := gateway.NewGateway(gateway.Config{
		DishSvcURL: cfg.Gateway.DishSvcURL,
		AggSvcURL:  cfg.Gateway.AggSvcURL,
	}, &http.Client{Timeout: 15 * time.Second})

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}).Handler(gw.SetupRoutes())

	srv := &http.Server{
		Addr:              ":" + cfg.Gateway.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Gateway.Port).Msg("API gateway starting")
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

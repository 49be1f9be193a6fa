package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Gateway GatewayConfig
	Agg     AggConfig
}

// Field names map to variables by prefix and split words, so DB.MaxOpenConns
// is read from DB_MAX_OPEN_CONNS.
type AppConfig struct {
	Env      string `split_words:"true" default:"development"`
	Port     string `split_words:"true" default:"8080"`
	LogLevel string `split_words:"true" default:"info"`
	// PublicURL is the base the order QR codes point at.
	PublicURL       string `split_words:"true" default:"http://localhost:8080"`
	SearchBatchSize int    `split_words:"true" default:"500"`
}

type DBConfig struct {
	Driver          string        `split_words:"true" default:"postgres"`
	Host            string        `split_words:"true" default:"localhost"`
	Port            string        `split_words:"true" default:"5432"`
	User            string        `split_words:"true" default:"postgres"`
	Password        string        `split_words:"true"`
	Name            string        `split_words:"true" default:"overcooked"`
	SSLMode         string        `split_words:"true" default:"disable"`
	Path            string        `split_words:"true" default:"overcooked.db"`
	MaxOpenConns    int           `split_words:"true" default:"25"`
	MaxIdleConns    int           `split_words:"true" default:"5"`
	ConnMaxLifetime time.Duration `split_words:"true" default:"1h"`
}

type RedisConfig struct {
	Host string `split_words:"true" default:"localhost"`
	Port string `split_words:"true" default:"6379"`
	// EventTTL bounds how long processed review event ids are remembered.
	EventTTL time.Duration `split_words:"true" default:"168h"`
}

type KafkaConfig struct {
	Broker  string `split_words:"true" default:"localhost:9092"`
	Topic   string `split_words:"true" default:"reviews"`
	GroupID string `split_words:"true" default:"agg-svc"`
}

// GatewayConfig is read from GATEWAY_*. The upstream URLs also accept the
// bare DISH_SVC_URL and AGG_SVC_URL.
type GatewayConfig struct {
	Port       string `split_words:"true" default:"8000"`
	DishSvcURL string `envconfig:"DISH_SVC_URL" default:"http://localhost:8080"`
	AggSvcURL  string `envconfig:"AGG_SVC_URL" default:"http://localhost:8081"`
}

type AggConfig struct {
	Port string `split_words:"true" default:"8081"`
}

// Load reads an optional .env file at path and then the process environment.
// Variables already set in the environment win over the file.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.App.Env, "development")
}

// DSN builds the connection string for the configured driver.
func (c DBConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.Path
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// InitLogger configures the global zerolog logger for one binary.
func InitLogger(cfg *Config, service string) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.App.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	log.Logger = log.With().Str("service", service).Logger()
}

func MustInitRedis(cfg RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Host + ":" + cfg.Port,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	return client
}

func NewKafkaReader(cfg KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Broker},
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})
}

func NewKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.Broker),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
}

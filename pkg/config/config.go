package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP     HTTP
	Logger   Logger
	Postgres Postgres
	Kafka    Kafka
	Auth     Auth
}

type HTTP struct {
	Port int `env:"HTTP_PORT" envDefault:"8080"`
}

type Logger struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

type Postgres struct {
	DSN     string `env:"POSTGRES_DSN"`
	MaxConn int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
}

type Kafka struct {
	Brokers       []string `env:"KAFKA_BROKERS"`
	EventsTopic   string   `env:"KAFKA_AUDIT_EVENTS_TOPIC" envDefault:"audit.events"`
	CrawlerTopic  string   `env:"KAFKA_CRAWLER_EVENTS_TOPIC" envDefault:"audit.crawler.events"`
	ConsumerGroup string   `env:"KAFKA_CONSUMER_GROUP" envDefault:"audit-service"`
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET"`
}

func New(envPath string) (Config, error) {
	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	c, err := env.ParseAsWithOptions[Config](env.Options{
		RequiredIfNoDef: true,
	})
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

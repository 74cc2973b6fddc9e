package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Postgres Postgres
	Redis    Redis
	Bot      Bot
	HTTP     HTTP
	Analyzer Analyzer
	Hunting  Hunting
}

type Hunting struct {
	CatalogPath string `env:"HUNTING_CONFIG" envDefault:"config.yaml"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}

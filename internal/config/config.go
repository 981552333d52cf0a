package config

import (
	"fmt"
	"os"
)

// Config is the whole application configuration.
type Config struct {
	Port string // server port (8080)

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string

	// Kafka broker for payment events. Empty disables publishing.
	KafkaBroker string

	GoEnv string // dev/prod
}

// Load reads environment variables and checks the required ones.
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     os.Getenv("POSTGRES_PORT"),

		KafkaBroker: os.Getenv("KAFKA_BROKER"),

		GoEnv: os.Getenv("GO_ENV"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.GoEnv == "" {
		cfg.GoEnv = "dev"
	}

	// DATABASE_URL replaces the individual postgres settings when set
	if os.Getenv("DATABASE_URL") == "" {
		if cfg.PostgresUser == "" {
			return Config{}, fmt.Errorf("POSTGRES_USER is required")
		}
		if cfg.PostgresPassword == "" {
			return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
		}
		if cfg.PostgresDB == "" {
			return Config{}, fmt.Errorf("POSTGRES_DB is required")
		}
		if cfg.PostgresHost == "" {
			return Config{}, fmt.Errorf("POSTGRES_HOST is required")
		}
		if cfg.PostgresPort == "" {
			cfg.PostgresPort = "5432"
		}
	}

	return cfg, nil
}

package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config centraliza a configuração do serviço e dos jobs de batch.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8000"`

	// DATABASE_URL tem precedência; sem ela o DSN é montado das peças
	// POSTGRES_* (formato herdado do ambiente de deploy).
	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresUser     string `env:"POSTGRES_USER"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresDB       string `env:"POSTGRES_DB"`

	ModelArtifact string  `env:"MODEL_ARTIFACT" envDefault:"./artifacts/modelo_prec80.json"`
	MinPrecision  float64 `env:"MIN_PRECISION" envDefault:"0.80"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret string `env:"JWT_SECRET"`
}

// LoadConfig carrega a configuração das variáveis de ambiente.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DSN devolve a string de conexão com o Postgres.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB)
}

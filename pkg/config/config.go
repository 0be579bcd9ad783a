package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env         string `env:"APP_ENV" env-default:"development"`
		Port        int    `env:"APP_PORT" env-default:"5000"`
		SentryUrl   string `env:"SENTRY_URL"`
		CorsOrigins string `env:"CORS_ORIGINS" env-default:"*"`
	}
	Mongo struct {
		URI      string `env:"MONGO_URL" env-default:"mongodb://localhost:27017"`
		Database string `env:"MONGO_DB" env-default:"feedline"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Redis struct {
		Enabled  bool          `env:"REDIS_ENABLED" env-default:"false"`
		Addr     string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
		Password string        `env:"REDIS_PASSWORD"`
		FeedTTL  time.Duration `env:"REDIS_FEED_TTL" env-default:"30s"`
	}
	Auth struct {
		JWTSecret string        `env:"JWT_SECRET"`
		TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"24h"`
	}
	Uploads struct {
		Dir            string `env:"UPLOADS_DIR" env-default:"./uploads"`
		MaxBytes       int64  `env:"UPLOADS_MAX_BYTES" env-default:"10485760"`
		JanitorEnabled bool   `env:"UPLOADS_JANITOR_ENABLED" env-default:"false"`
	}
	Posts struct {
		AllowEmpty bool `env:"POSTS_ALLOW_EMPTY" env-default:"false"`
	}
}

// GetDSN returns the postgres connection string for database/sql consumers.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode)
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

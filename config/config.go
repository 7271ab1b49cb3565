package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"futsala"`

	JWTSecret        string `envconfig:"JWT_SECRET" required:"true"`
	JWTRefreshSecret string `envconfig:"JWT_REFRESH_SECRET" required:"true"`
	AccessTTLMin     int    `envconfig:"ACCESS_TTL_MIN" default:"15"`
	RefreshTTLHr     int    `envconfig:"REFRESH_TTL_HR" default:"168"`

	// Optional collaborators: empty value disables the integration.
	RabbitURL string `envconfig:"RABBIT_URL" default:""`
	RedisAddr string `envconfig:"REDIS_ADDR" default:""`

	LoginRateLimit  int `envconfig:"LOGIN_RATE_LIMIT" default:"10"`
	LoginRateWindow int `envconfig:"LOGIN_RATE_WINDOW_SEC" default:"60"`
}

func Load() Config {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

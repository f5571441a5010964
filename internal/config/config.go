package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL   string `env:"DATABASE_URL,required,notEmpty"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	JWTSecret     string `env:"JWT_SECRET,required,notEmpty"`
	JWTIssuer     string `env:"JWT_ISSUER" envDefault:"network-match"`
	DBMaxConns    int32  `env:"DB_MAX_CONNS" envDefault:"10"`

	RecommendDefaultLimit  int           `env:"RECOMMEND_DEFAULT_LIMIT" envDefault:"10"`
	RecommendMaxLimit      int           `env:"RECOMMEND_MAX_LIMIT" envDefault:"50"`
	ActivityCacheTTL       time.Duration `env:"ACTIVITY_CACHE_TTL" envDefault:"5m"`
	SignalFetchConcurrency int           `env:"SIGNAL_FETCH_CONCURRENCY" envDefault:"8"`
	RateLimitWindow        time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	RateLimitMax           int           `env:"RATE_LIMIT_MAX" envDefault:"30"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

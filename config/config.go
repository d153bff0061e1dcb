package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	BackendURL     string        `env:"BACKEND_URL" env-default:"http://localhost:5000"`
	CachePath      string        `env:"CACHE_PATH" env-default:"patrol-cache.db"`
	CountryCode    string        `env:"COUNTRY_CODE" env-default:"+44"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"15s"`
	RefreshSpec    string        `env:"REFRESH_CRON" env-default:"@every 5m"`
	ExportPath     string        `env:"EXPORT_PATH"`
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		zap.S().Warnw("failed to read environment config",
			"error", err,
		)
	}
	return cfg
}

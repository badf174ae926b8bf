package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort       string `mapstructure:"SERVER_PORT"`
	PublicURL        string `mapstructure:"PUBLIC_URL"`
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	MapZoomLevel     int    `mapstructure:"MAP_ZOOM_LEVEL"`
	PanDurationSec   int    `mapstructure:"PAN_DURATION_SEC"`
	SessionTTLMin    int    `mapstructure:"SESSION_TTL_MIN"`
	StrictInvariants bool   `mapstructure:"STRICT_INVARIANTS"`
}

func Load() Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SERVER_PORT", ":8080")
	v.SetDefault("PUBLIC_URL", "http://localhost:8080")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("MAP_ZOOM_LEVEL", 13)
	v.SetDefault("PAN_DURATION_SEC", 1)
	v.SetDefault("SESSION_TTL_MIN", 120)
	v.SetDefault("STRICT_INVARIANTS", false)

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

func (c Config) PanDuration() time.Duration {
	return time.Duration(c.PanDurationSec) * time.Second
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMin) * time.Minute
}

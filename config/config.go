package config

import (
	"errors"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds the application's configuration values.
type Config struct {
	AppName string `mapstructure:"APPNAME"`
	AppEnv  string `mapstructure:"APPENV"`
	AppPort uint16 `mapstructure:"APPPORT"`
	GinMode string `mapstructure:"GINMODE"`

	// DBDriver is one of mysql, postgres or sqlite.
	DBDriver   string `mapstructure:"DBDRIVER"`
	DBHost     string `mapstructure:"DBHOST"`
	DBPort     uint16 `mapstructure:"DBPORT"`
	DBName     string `mapstructure:"DBNAME"`
	DBUser     string `mapstructure:"DBUSER"`
	DBPass     string `mapstructure:"DBPASS"`
	DBSSLMode  string `mapstructure:"DBSSLMODE"`
	SQLitePath string `mapstructure:"SQLITEPATH"`

	JWTSecret string        `mapstructure:"JWTSECRET"`
	TokenTTL  time.Duration `mapstructure:"TOKENTTL"`

	RedisEnabled bool   `mapstructure:"REDIS_ENABLED"`
	RedisAddr    string `mapstructure:"REDIS_ADDR"`
	RedisPass    string `mapstructure:"REDIS_PASS"`
	RedisDB      int    `mapstructure:"REDIS_DB"`

	GeoIPDBPath string        `mapstructure:"GEOIP_DB_PATH"`
	RateLimit   int           `mapstructure:"RATE_LIMIT"`
	RateWindow  time.Duration `mapstructure:"RATE_WINDOW"`
	LogLevel    string        `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]interface{}{
	"APPNAME":       "MedicalStaff",
	"APPENV":        "development",
	"APPPORT":       8080,
	"GINMODE":       "debug",
	"DBDRIVER":      "mysql",
	"DBHOST":        "localhost",
	"DBPORT":        3306,
	"DBNAME":        "medical_staff",
	"DBUSER":        "",
	"DBPASS":        "",
	"DBSSLMODE":     "disable",
	"SQLITEPATH":    "medical_staff.db",
	"JWTSECRET":     "",
	"TOKENTTL":      "1h",
	"REDIS_ENABLED": false,
	"REDIS_ADDR":    "localhost:6379",
	"REDIS_PASS":    "",
	"REDIS_DB":      0,
	"GEOIP_DB_PATH": "",
	"RATE_LIMIT":    5,
	"RATE_WINDOW":   "15m",
	"LOG_LEVEL":     "info",
}

var (
	config *Config
	once   sync.Once
)

// Load reads .env (when present) and the environment into a fresh Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		// Bind explicitly so Unmarshal sees environment values.
		_ = v.BindEnv(key)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	return cfg, nil
}

// LoadConfig returns the process-wide Config, loading it on first use.
func LoadConfig() *Config {
	once.Do(func() {
		cfg, err := Load()
		if err != nil {
			log.Fatal().Err(err).Msg("error loading configuration")
		}
		config = cfg
	})
	return config
}

// ResetConfigForTest drops the cached Config so the next LoadConfig re-reads the environment.
func ResetConfigForTest() {
	config = nil
	once = sync.Once{}
}

func (c *Config) IsTest() bool {
	return c.AppEnv == "test"
}

func (c *Config) IsDev() bool {
	return c.AppEnv == "development"
}

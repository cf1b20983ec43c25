package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env           string
	LogLevel      string
	Port          string
	DataDir       string
	IdeasDataFile string
	PostsDataFile string

	Store struct {
		Driver string
		DSN    string
	}

	Security struct {
		CORSAllowedOrigins []string
		RateLimitRPM       int
	}
}

// IdeasPath is the location of the ideas document for the file store.
func (c *Config) IdeasPath() string {
	return filepath.Join(c.DataDir, c.IdeasDataFile)
}

func (c *Config) PostsPath() string {
	return filepath.Join(c.DataDir, c.PostsDataFile)
}

func Load() (*Config, error) {
	// A missing .env is fine, real environment variables win either way.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{}
	cfg.Env = v.GetString("APP_ENV")
	cfg.LogLevel = strings.ToLower(v.GetString("LOG_LEVEL"))
	cfg.Port = v.GetString("PORT")
	cfg.DataDir = v.GetString("DATA_DIR")
	cfg.IdeasDataFile = v.GetString("IDEAS_DATA_FILE")
	cfg.PostsDataFile = v.GetString("POSTS_DATA_FILE")

	cfg.Store.Driver = strings.ToLower(v.GetString("STORE_DRIVER"))
	cfg.Store.DSN = v.GetString("DATABASE_DSN")

	cfg.Security.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.Security.RateLimitRPM = v.GetInt("RATE_LIMIT_RPM")

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("PORT", "8000")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("IDEAS_DATA_FILE", "ideas.json")
	v.SetDefault("POSTS_DATA_FILE", "posts.json")
	v.SetDefault("STORE_DRIVER", DriverFile)
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_RPM", 0)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validate(cfg *Config) error {
	switch cfg.Store.Driver {
	case DriverFile:
		if cfg.IdeasDataFile == "" || cfg.PostsDataFile == "" {
			return fmt.Errorf("IDEAS_DATA_FILE and POSTS_DATA_FILE are required")
		}
		if cfg.IdeasDataFile == cfg.PostsDataFile {
			return fmt.Errorf("IDEAS_DATA_FILE and POSTS_DATA_FILE must differ")
		}
	case DriverSQLite, DriverPostgres:
		if cfg.Store.DSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for store driver %q", cfg.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	if cfg.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if cfg.LogLevel != "" {
		if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
			return fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
		}
	}
	if cfg.Security.RateLimitRPM < 0 {
		return fmt.Errorf("RATE_LIMIT_RPM must not be negative")
	}
	return nil
}

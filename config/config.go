package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

/* Config is a support package: it loads settings, it has no business rules. */

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	Port string `mapstructure:"PORT"`

	DBDriver   string `mapstructure:"DB_DRIVER"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBName     string `mapstructure:"DB_NAME"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`

	DBCreateTable            bool `mapstructure:"DB_CREATE_TABLE"`
	DBMaxOpenConns           int  `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns           int  `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMinutes int  `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

// defaults point at the database the catalog was first deployed against
var defaults = map[string]any{
	"PORT":                         "8080",
	"DB_DRIVER":                    DriverMySQL,
	"DB_HOST":                      "localhost",
	"DB_PORT":                      "3306",
	"DB_NAME":                      "library_db",
	"DB_USER":                      "root",
	"DB_PASSWORD":                  "",
	"DB_SSLMODE":                   "disable",
	"SQLITE_PATH":                  "elibrary.db",
	"DB_CREATE_TABLE":              false,
	"DB_MAX_OPEN_CONNS":            1,
	"DB_MAX_IDLE_CONNS":            1,
	"DB_CONN_MAX_LIFETIME_MINUTES": 0,
	"LOG_LEVEL":                    "info",
	"LOG_FORMAT":                   "console",
}

// GetConfig reads .env (toml) from the working directory when present.
// Environment variables take precedence over the file.
func GetConfig() (*Config, error) {
	return load(".")
}

func load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("toml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	config.DBDriver = strings.ToLower(strings.TrimSpace(config.DBDriver))
	return &config, nil
}

// Validate checks that the selected driver has what it needs to connect
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres:
		if c.DBHost == "" {
			return fmt.Errorf("DB_HOST is required for driver %s", c.DBDriver)
		}
		if c.DBPort == "" {
			return fmt.Errorf("DB_PORT is required for driver %s", c.DBDriver)
		}
		if c.DBName == "" {
			return fmt.Errorf("DB_NAME is required for driver %s", c.DBDriver)
		}
		if c.DBUser == "" {
			return fmt.Errorf("DB_USER is required for driver %s", c.DBDriver)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for driver %s", c.DBDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want mysql, postgres, sqlite or memory)", c.DBDriver)
	}
	if c.DBMaxOpenConns < 0 || c.DBMaxIdleConns < 0 || c.DBConnMaxLifetimeMinutes < 0 {
		return fmt.Errorf("connection pool settings cannot be negative")
	}
	return nil
}

// PostgresConnectionString builds a lib/pq connection URL
func (c *Config) PostgresConnectionString() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   net.JoinHostPort(c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

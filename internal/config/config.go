package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	Path            string        `mapstructure:"path"` // sqlite only
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	QueryTimeout    time.Duration `mapstructure:"query_timeout"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type IdempotencyConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type RenewalConfig struct {
	// Timezone the renewal calendar is evaluated in, e.g. "Asia/Jakarta".
	Timezone string `mapstructure:"timezone"`
}

type Config struct {
	Debug       bool              `mapstructure:"debug"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Idempotency IdempotencyConfig `mapstructure:"idempotency"`
	Renewal     RenewalConfig     `mapstructure:"renewal"`
}

// Load reads configFile (config.yaml in the working or config/ directory when
// empty), overlays .env files from envPath and LEASEHUB_* variables.
func Load(configFile string, envPath string) (*Config, error) {
	v := configureViper(configFile, envPath)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("database.driver", DriverMySQL)
	v.SetDefault("database.host", "mysql")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.dbname", "leasehub")
	v.SetDefault("database.user", "leasehub")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "leasehub.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.query_timeout", "5s")
	v.SetDefault("redis.addr", "redis:6379")
	v.SetDefault("idempotency.enabled", true)
	v.SetDefault("idempotency.ttl", "5m")
	v.SetDefault("renewal.timezone", "UTC")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func configureViper(configFile string, envPath string) *viper.Viper {
	v := viper.New()
	loadEnv(envPath)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("LEASEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)
	return v
}

// AutomaticEnv only resolves keys viper already knows about; nested keys
// without a default must be bound explicitly or Unmarshal never sees them.
func bindEnvVars(v *viper.Viper) {
	for _, k := range []string{
		"debug",
		"server.port", "server.read_timeout", "server.write_timeout", "server.shutdown_timeout",
		"database.driver", "database.host", "database.port", "database.user", "database.password",
		"database.dbname", "database.sslmode", "database.path", "database.max_open_conns",
		"database.max_idle_conns", "database.conn_max_lifetime", "database.query_timeout",
		"redis.addr", "redis.password", "redis.db",
		"idempotency.enabled", "idempotency.ttl",
		"renewal.timezone",
	} {
		_ = v.BindEnv(k)
	}
}

func loadEnv(envPath string) {
	if envPath == "" {
		envPath = "config/"
	}
	for _, f := range []string{".env", ".env.local"} {
		// later files win
		_ = godotenv.Overload(filepath.Join(envPath, f))
	}
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if err := c.Database.validate(); err != nil {
		return err
	}
	if c.Idempotency.Enabled {
		if c.Redis.Addr == "" {
			return errors.New("redis.addr is required when idempotency is enabled")
		}
		if c.Idempotency.TTL <= 0 {
			return errors.New("idempotency.ttl must be positive")
		}
	}
	if _, err := c.Renewal.Location(); err != nil {
		return err
	}
	return nil
}

func (d DatabaseConfig) validate() error {
	switch d.Driver {
	case DriverSQLite:
		if d.Path == "" {
			return errors.New("database.path is required for sqlite")
		}
		return nil
	case DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database.driver %q", d.Driver)
	}
	if d.Host == "" || d.DBName == "" || d.User == "" {
		return errors.New("missing database config (host/dbname/user)")
	}
	if _, err := net.LookupPort("tcp", strconv.Itoa(d.Port)); err != nil || d.Port <= 0 {
		return fmt.Errorf("invalid database.port %d", d.Port)
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	switch d.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
	case DriverSQLite:
		return d.Path + "?_foreign_keys=on&_busy_timeout=5000"
	default:
		// parseTime is needed for DATETIME; loc keeps instants in UTC
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4",
			d.User, d.Password, net.JoinHostPort(d.Host, strconv.Itoa(d.Port)), d.DBName)
	}
}

func (r RenewalConfig) Location() (*time.Location, error) {
	if r.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid renewal.timezone %q: %w", r.Timezone, err)
	}
	return loc, nil
}

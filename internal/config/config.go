package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Order    OrderConfig
	Auth     AuthConfig
	Cart     CartConfig
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type LogConfig struct {
	Level   string
	Format  string
	Service string
}

type OrderConfig struct {
	TxTimeout time.Duration
}

type AuthConfig struct {
	BcryptCost int
	TokenBytes int
}

type CartConfig struct {
	MaxQuantity int
}

// Load reads configuration from the optional YAML file at path and from the
// environment. Environment variables use the upper-cased key with dots
// replaced by underscores (server.port -> SERVER_PORT) and win over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("server.port"),
			ReadTimeout:     v.GetDuration("server.readTimeout"),
			WriteTimeout:    v.GetDuration("server.writeTimeout"),
			IdleTimeout:     v.GetDuration("server.idleTimeout"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("db.host"),
			Port:            v.GetInt("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			Name:            v.GetString("db.name"),
			MaxOpenConns:    v.GetInt("db.maxOpenConns"),
			MaxIdleConns:    v.GetInt("db.maxIdleConns"),
			ConnMaxLifetime: v.GetDuration("db.connMaxLifetime"),
			AutoMigrate:     v.GetBool("db.autoMigrate"),
		},
		Log: LogConfig{
			Level:   v.GetString("log.level"),
			Format:  v.GetString("log.format"),
			Service: v.GetString("log.service"),
		},
		Order: OrderConfig{
			TxTimeout: v.GetDuration("order.txTimeout"),
		},
		Auth: AuthConfig{
			BcryptCost: v.GetInt("auth.bcryptCost"),
			TokenBytes: v.GetInt("auth.tokenBytes"),
		},
		Cart: CartConfig{
			MaxQuantity: v.GetInt("cart.maxQuantity"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "30s")
	v.SetDefault("server.shutdownTimeout", "10s")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "littlelemon")
	v.SetDefault("db.password", "secret")
	v.SetDefault("db.name", "littlelemon")
	v.SetDefault("db.maxOpenConns", 25)
	v.SetDefault("db.maxIdleConns", 5)
	v.SetDefault("db.connMaxLifetime", "5m")
	v.SetDefault("db.autoMigrate", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.service", "littlelemon")
	v.SetDefault("order.txTimeout", "5s")
	v.SetDefault("auth.bcryptCost", 10)
	v.SetDefault("auth.tokenBytes", 32)
	v.SetDefault("cart.maxQuantity", 10000)
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	if c.Order.TxTimeout <= 0 {
		return fmt.Errorf("order.txTimeout must be positive")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcryptCost must be between 4 and 31")
	}
	if c.Auth.TokenBytes < 16 {
		return fmt.Errorf("auth.tokenBytes must be at least 16")
	}
	if c.Cart.MaxQuantity <= 0 {
		return fmt.Errorf("cart.maxQuantity must be positive")
	}
	return nil
}

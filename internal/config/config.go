package config

import (
	"strings"

	"github.com/faeflux/faeflux-one/params"
	"github.com/spf13/viper"
)

const (
	DefaultListenAddr  = ":8000"
	DefaultEnvironment = "production"
)

type MySQLConfig struct {
	Dsn             string `mapstructure:"dsn"`
	ReplicaDsn      string `mapstructure:"replicaDsn"`
	TablePrefix     string `mapstructure:"tablePrefix"`
	MaxIdleConns    int    `mapstructure:"maxIdleConns"`
	MaxOpenConns    int    `mapstructure:"maxOpenConns"`
	ConnMaxIdleTime int    `mapstructure:"connMaxIdleTime"`
	ConnMaxLifetime int    `mapstructure:"connMaxLifetime"`
}

type JWTConfig struct {
	PrivateKeyFile        string `mapstructure:"privateKeyFile"`
	PublicKeyFile         string `mapstructure:"publicKeyFile"`
	AccessTokenTTLMinutes int    `mapstructure:"accessTokenTTLMinutes"`
	RefreshTokenTTLDays   int    `mapstructure:"refreshTokenTTLDays"`
}

type RateLimitConfig struct {
	PerMinute          int    `mapstructure:"perMinute"`
	HeartbeatPerMinute int    `mapstructure:"heartbeatPerMinute"`
	InventoryPerMinute int    `mapstructure:"inventoryPerMinute"`
	RedisURL           string `mapstructure:"redisURL"` // optional; in-memory counters when empty
}

type Config struct {
	Debug        bool            `mapstructure:"debug"`
	Environment  string          `mapstructure:"environment"`
	ListenAddr   string          `mapstructure:"listenAddr"`
	AllowOrigins []string        `mapstructure:"allowOrigins"`
	AllowedHosts []string        `mapstructure:"allowedHosts"`
	MySQL        MySQLConfig     `mapstructure:"mysql"`
	JWT          JWTConfig       `mapstructure:"jwt"`
	RateLimit    RateLimitConfig `mapstructure:"rateLimit"`
}

func (c *Config) Sanitize() error {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.Environment == "" {
		c.Environment = DefaultEnvironment
	}
	if c.JWT.AccessTokenTTLMinutes == 0 {
		c.JWT.AccessTokenTTLMinutes = int(params.DefaultAccessTokenTTL.Minutes())
	}
	if c.JWT.RefreshTokenTTLDays == 0 {
		c.JWT.RefreshTokenTTLDays = int(params.DefaultRefreshTokenTTL.Hours() / 24)
	}
	if c.RateLimit.PerMinute == 0 {
		c.RateLimit.PerMinute = params.DefaultRateLimitPerMinute
	}
	if c.RateLimit.HeartbeatPerMinute == 0 {
		c.RateLimit.HeartbeatPerMinute = params.HeartbeatRateLimit
	}
	if c.RateLimit.InventoryPerMinute == 0 {
		c.RateLimit.InventoryPerMinute = params.InventoryRateLimit
	}
	return nil
}

func LoadConfig(filename string) (*Config, error) {
	viper.SetConfigFile(filename)
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Sanitize(); err != nil {
		return nil, err
	}
	return &config, nil
}

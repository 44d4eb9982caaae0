package main

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`

	SessionSecret string        `mapstructure:"SESSION_SECRET"`
	SessionExpiry time.Duration `mapstructure:"SESSION_EXPIRY"`

	DB   DBConfig   `mapstructure:",squash"`
	Mail MailConfig `mapstructure:",squash"`
}

type DBConfig struct {
	LocalURL  string `mapstructure:"DATABASE_LOCAL_URL"`
	RemoteURL string `mapstructure:"DATABASE_URL"`
}

type MailConfig struct {
	Host     string `mapstructure:"MAIL_HOST"`
	Port     int    `mapstructure:"MAIL_PORT"`
	User     string `mapstructure:"MAIL_USER"`
	Password string `mapstructure:"MAIL_PASSWORD"`
	Sender   string `mapstructure:"MAIL_SENDER"`
}

func loadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.SetDefault("PORT", "5000")
	viper.SetDefault("ENVIRONMENT", "local")
	viper.SetDefault("SESSION_EXPIRY", "1h")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DSN returns the database connection string for the configured mode.
func (c *Config) DSN() string {
	if c.Environment == "local" {
		return c.DB.LocalURL
	}
	return c.DB.RemoteURL
}

// Package config loads and holds the application configuration.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Conf is the global configuration, populated by Init.
var Conf Config

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
	Search   SearchConfig   `mapstructure:"search"`
	Outbox   OutboxConfig   `mapstructure:"outbox"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret                 string `mapstructure:"secret"`
	AccessTokenExpireHours int    `mapstructure:"access_token_expire_hours"`
	RefreshTokenExpireDays int    `mapstructure:"refresh_token_expire_days"`
}

// AuthConfig seeds the first admin account on an empty install. Leave both
// fields empty to skip seeding.
type AuthConfig struct {
	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`
}

// WebhookConfig covers both the outbound BLKOUTHUB notification target and
// the shared secret used to verify inbound n8n submissions.
type WebhookConfig struct {
	BlkouthubURL   string `mapstructure:"blkouthub_url"`
	N8NSecret      string `mapstructure:"n8n_secret"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type SearchConfig struct {
	Enabled       bool     `mapstructure:"enabled"`
	Addresses     []string `mapstructure:"addresses"`
	ResourceIndex string   `mapstructure:"resource_index"`
}

type OutboxConfig struct {
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds"`
	BatchSize           int `mapstructure:"batch_size"`
	MaxAttempts         int `mapstructure:"max_attempts"`
}

// Init reads the YAML config file at configPath into Conf.
func Init(configPath string) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("fatal error unmarshalling config: %w", err))
	}
}

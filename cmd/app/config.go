package main

import (
	"fmt"
	"strings"
	"time"

	"socrates-bot/internal/repository"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Database repository.Config `yaml:"database"`
	Server   ServerConfig      `yaml:"server"`
	Telegram TelegramConfig    `yaml:"telegram"`
	Session  SessionConfig     `yaml:"session"`

	LogLevel string `yaml:"logLevel"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type TelegramConfig struct {
	BotToken      string `yaml:"botToken"`
	BotUsername   string `yaml:"botUsername"`
	OwnerID       int64  `yaml:"ownerId"`
	GroupLink     string `yaml:"groupLink"`
	ChannelLink   string `yaml:"channelLink"`
	UseWebhook    bool   `yaml:"useWebhook"`
	WebhookSecret string `yaml:"webhookSecret"`
}

type SessionConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.SetDefault("session.ttl", "24h")
	viper.SetDefault("logLevel", "info")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Telegram.BotToken == "" {
		return nil, fmt.Errorf("telegram.botToken is required")
	}

	return &cfg, nil
}

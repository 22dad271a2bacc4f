package config

import "time"

// Chat definition chat_service YAML structure
type Chat struct {
	Port         string        `mapstructure:"port"`
	AllowOrigins string        `mapstructure:"allow_origins"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`

	History  HistoryConfig  `mapstructure:"history"`
	Accounts AccountsConfig `mapstructure:"accounts"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// HistoryConfig selects the room history backend.
// "memory" keeps history in process, "mongo" persists it.
type HistoryConfig struct {
	Backend string         `mapstructure:"backend"`
	Mongo   DatabaseConfig `mapstructure:"mongo"`
}

// AccountsConfig selects the account store backend.
// "memory" keeps accounts in process, "postgres" persists them.
type AccountsConfig struct {
	Backend    string         `mapstructure:"backend"`
	PostgreSQL DatabaseConfig `mapstructure:"pg"`
}

// RedisConfig definition redis setting for the login-session store
type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	RedisDB int    `mapstructure:"redis_db"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Database      string `mapstructure:"database"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

package config

import (
	"fmt"
	"time"
)

// DatabaseConfig holds PostgreSQL connection parameters for match history.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`

	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultDatabase returns a local, disabled database config.
func DefaultDatabase() DatabaseConfig {
	return DatabaseConfig{
		Enabled:        false,
		Host:           "127.0.0.1",
		Port:           5432,
		User:           "archerduel",
		Password:       "archerduel",
		DBName:         "archerduel",
		SSLMode:        "disable",
		ConnectTimeout: 5 * time.Second,
	}
}

package config

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DBConfig is the single place connection settings live. The values come
// from the environment once at startup; every handler receives the resulting
// *gorm.DB and never touches connection details again.
type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	TLSMode     string
	DialTimeout time.Duration
}

func LoadDBConfig() DBConfig {
	cfg := DBConfig{
		Host:        getEnv("DB_HOST", "127.0.0.1"),
		Port:        getEnv("DB_PORT", "3306"),
		User:        getEnv("DB_USER", "root"),
		Password:    os.Getenv("DB_PASSWORD"),
		Name:        getEnv("DB_NAME", "reservation_app"),
		TLSMode:     getEnv("DB_TLS_MODE", "false"),
		DialTimeout: 10 * time.Second,
	}

	if v := os.Getenv("DB_DIAL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.DialTimeout = d
		}
	}

	return cfg
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%s&tls=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.DialTimeout, c.TLSMode)
}

// InitDB opens the MySQL connection described by the environment.
func InitDB() (*gorm.DB, error) {
	cfg := LoadDBConfig()

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to %s:%s/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}

	return db, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

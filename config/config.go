package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config carries everything read from the environment at process start.
type Config struct {
	DBDriver string // "mysql" or "sqlite"
	DBDSN    string
	Port     string
	GinMode  string
}

func Load() Config {
	cfg := Config{
		DBDriver: os.Getenv("DB_DRIVER"),
		DBDSN:    os.Getenv("DB_DSN"),
		Port:     os.Getenv("PORT"),
		GinMode:  os.Getenv("GIN_MODE"),
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = "mysql"
	}
	if cfg.DBDSN == "" && cfg.DBDriver == "mysql" {
		cfg.DBDSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("DB_USER"), os.Getenv("DB_PASS"),
			envOr("DB_HOST", "127.0.0.1"), envOr("DB_PORT", "3306"),
			envOr("DB_NAME", "restaurant_ops"))
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the database once at process start; the handle is passed
// down to the store, never held as package state. TranslateError is on so
// duplicate-key violations surface as gorm.ErrDuplicatedKey on both
// drivers.
func InitDB(cfg Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}

	switch cfg.DBDriver {
	case "mysql":
		return gorm.Open(mysql.Open(cfg.DBDSN), gormCfg)
	case "sqlite":
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = "restaurant_ops.db"
		}
		return gorm.Open(sqlite.Open(dsn), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

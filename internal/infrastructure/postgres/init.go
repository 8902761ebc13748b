package postgres

import (
	"fmt"
	"log"

	"github.com/drovo/drovo-service/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func InitDB(cfg *config.DrovoConfig) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.Env == "local" {
		logLevel = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(cfg.DB.Dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

func MustInitDB(cfg *config.DrovoConfig) *gorm.DB {
	db, err := InitDB(cfg)
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err)
	}
	return db
}

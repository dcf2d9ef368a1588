package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
)

// DSN builds the postgres URL from config. statement_timeout matches the
// request deadline so a slow query cannot outlive its request.
func DSN(cfg configs.AppConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=schoolku&options=-c%%20statement_timeout=5000",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBSSLMode,
	)
}

func ConnectDB(cfg configs.AppConfig, log *zap.Logger) (*gorm.DB, error) {
	log.Info("connecting to PostgreSQL", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  DSN(cfg),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(log),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}
	log.Info("database connected")
	return db, nil
}

func TunePool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

// WarmUp pings once so the pool has a live connection before traffic arrives.
func WarmUp(db *gorm.DB, log *zap.Logger) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		sqlDB, err := db.DB()
		if err != nil {
			log.Warn("warm-up: no sql.DB", zap.Error(err))
			return
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			log.Warn("warm-up ping failed", zap.Error(err))
		}
	}()
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

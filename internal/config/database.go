package config

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/intuitive-care/operadoras-api/internal/logging"
	"github.com/intuitive-care/operadoras-api/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	// DB is the PostgreSQL connection pool
	DB *gorm.DB
	// Redis client
	Redis *redisclient.Client
)

// OpenPostgres opens a GORM pool on databaseURL, tunes it from cfg and
// verifies it with a ping.
func OpenPostgres(ctx context.Context, cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         logging.NewGormLogger(cfg.DBSlowQuery, cfg.Environment == "debug"),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// InitPostgres initializes the global PostgreSQL connection
func InitPostgres() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := OpenPostgres(ctx, AppConfig)
	if err != nil {
		return err
	}
	DB = db

	logging.Logger.Info("connected to PostgreSQL",
		zap.String("url", MaskDatabaseURL(AppConfig.DatabaseURL)),
		zap.Int("max_open_conns", AppConfig.DBMaxOpenConns),
	)
	return nil
}

// InitRedis initializes the Redis connection. A failed ping is logged and
// leaves Redis nil so callers fall back to local state.
func InitRedis() {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         AppConfig.RedisURI,
		Password:     AppConfig.RedisPassword,
		DB:           AppConfig.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	client := redisclient.NewClient(redisClient)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Logger.Warn("failed to connect to Redis, continuing without it",
			zap.String("uri", AppConfig.RedisURI),
			zap.Error(err))
		_ = client.Close()
		return
	}

	Redis = client
	logging.Logger.Info("connected to Redis",
		zap.String("uri", AppConfig.RedisURI))
}

// CloseConnections releases the global connection pools.
func CloseConnections() {
	if DB != nil {
		if sqlDB, err := DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logging.Logger.Error("failed to close PostgreSQL pool", zap.Error(err))
			}
		}
	}
	if Redis != nil {
		if err := Redis.Close(); err != nil {
			logging.Logger.Error("failed to close Redis client", zap.Error(err))
		}
	}
}

// MaskDatabaseURL hides the password component of a connection URL.
func MaskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "xxxxx"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "xxxxx")
		}
	}
	return u.String()
}

package logging

import (
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// NewGormLogger routes GORM's query log through the global zap logger.
// Queries slower than slowThreshold are logged at warn level.
func NewGormLogger(slowThreshold time.Duration, debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}

	std := zap.NewStdLog(Logger.Zap().Named("gorm"))
	return gormlogger.New(std, gormlogger.Config{
		SlowThreshold:             slowThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

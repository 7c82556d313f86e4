package logger

import (
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

// gormWriter satisfies gormlogger.Writer by forwarding to zerolog.
type gormWriter struct {
	log   zerolog.Logger
	level zerolog.Level
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.WithLevel(w.level).Msgf(format, args...)
}

// NewGormLogger routes ORM logs through zerolog.
//
// Record-not-found is never logged; repositories turn it into a 404.
// Queries slower than slowThreshold are reported at warn level, and every
// statement is logged only when the app runs at debug.
func NewGormLogger(logger zerolog.Logger, slowThreshold time.Duration) gormlogger.Interface {
	level, writeAt := gormlogger.Warn, zerolog.WarnLevel
	if logger.GetLevel() <= zerolog.DebugLevel {
		level, writeAt = gormlogger.Info, zerolog.DebugLevel
	}

	return gormlogger.New(
		gormWriter{log: logger.With().Str("component", "orm").Logger(), level: writeAt},
		gormlogger.Config{
			SlowThreshold:             slowThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)
}

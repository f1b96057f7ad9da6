package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slowQueryThreshold marks queries logged at Warn.
const slowQueryThreshold = 200 * time.Millisecond

// slogLogger sends gorm's logs through slog. Record-not-found is an expected
// outcome for lookups and is never logged.
type slogLogger struct {
	log   *slog.Logger
	level logger.LogLevel
	slow  time.Duration
}

var _ logger.Interface = (*slogLogger)(nil)

// NewSlogLogger returns a gorm logger writing to l, or to slog.Default() when
// l is nil. Failed queries log at Error, slow ones at Warn.
func NewSlogLogger(l *slog.Logger) logger.Interface {
	return &slogLogger{log: l, level: logger.Warn, slow: slowQueryThreshold}
}

func (s *slogLogger) out() *slog.Logger {
	if s.log != nil {
		return s.log
	}
	return slog.Default()
}

func (s *slogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cp := *s
	cp.level = level
	return &cp
}

func (s *slogLogger) Info(ctx context.Context, msg string, args ...any) {
	if s.level >= logger.Info {
		s.out().InfoContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (s *slogLogger) Warn(ctx context.Context, msg string, args ...any) {
	if s.level >= logger.Warn {
		s.out().WarnContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (s *slogLogger) Error(ctx context.Context, msg string, args ...any) {
	if s.level >= logger.Error {
		s.out().ErrorContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (s *slogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if s.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && s.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		s.out().ErrorContext(ctx, "query failed", "error", err, "sql", sql, "rows", rows, "elapsed", elapsed)
	case s.slow > 0 && elapsed > s.slow && s.level >= logger.Warn:
		sql, rows := fc()
		s.out().WarnContext(ctx, "slow query", "sql", sql, "rows", rows, "elapsed", elapsed)
	case s.level >= logger.Info:
		sql, rows := fc()
		s.out().DebugContext(ctx, "query", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}

package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"evently/config"
	"evently/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowStatementThreshold = 200 * time.Millisecond

// statementLogger writes GORM output to slog. Statements are logged with their
// placeholders only: bind values carry emails and password hashes.
type statementLogger struct {
	logger        *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

var (
	_ logger.Interface  = (*statementLogger)(nil)
	_ gorm.ParamsFilter = (*statementLogger)(nil)
)

func newGormSlogLogger(baseLogger *slog.Logger, cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = logger.Info
	}

	return &statementLogger{
		logger:        baseLogger.With(slog.String("component", "store")),
		level:         level,
		slowThreshold: slowStatementThreshold,
	}
}

func (l *statementLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

// ParamsFilter drops bind values before GORM renders a statement for logging.
func (l *statementLogger) ParamsFilter(_ context.Context, sql string, _ ...any) (string, []any) {
	return sql, nil
}

func (l *statementLogger) Info(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Info, slog.LevelInfo, msg, args...)
}

func (l *statementLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Warn, slog.LevelWarn, msg, args...)
}

func (l *statementLogger) Error(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Error, slog.LevelError, msg, args...)
}

func (l *statementLogger) message(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.level < threshold {
		return
	}

	l.logger.LogAttrs(ctx, level, "Store message", slog.String("message", fmt.Sprintf(msg, args...)))
}

// Trace logs failed statements at error, slow ones at warn and, in debug mode, every statement at info.
// A missing user or event is an expected outcome and is not logged.
func (l *statementLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	var (
		level slog.Level
		msg   string
		extra []slog.Attr
	)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		level, msg = slog.LevelError, "Store statement failed"
		extra = append(extra, slog.String("error", err.Error()))
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		level, msg = slog.LevelWarn, "Slow store statement"
		extra = append(extra, slog.Duration("slowThreshold", l.slowThreshold))
	case l.level >= logger.Info:
		level, msg = slog.LevelInfo, "Store statement"
	default:
		return
	}

	sql, rows := sqlAndRowsFn()
	attrs := append([]slog.Attr{
		slog.String("statement", statementKind(sql)),
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}, extra...)

	l.logger.LogAttrs(ctx, level, msg, attrs...)
}

// statementKind returns the leading SQL keyword, e.g. INSERT or SELECT.
func statementKind(sql string) string {
	kind, _, _ := strings.Cut(strings.TrimSpace(sql), " ")

	return strings.ToUpper(kind)
}

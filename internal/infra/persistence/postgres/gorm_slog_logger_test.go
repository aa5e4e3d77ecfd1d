package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"evently/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const insertUserSQL = `INSERT INTO "users" ("email","password_hash","name") VALUES ($1,$2,$3)`

func newCapturingStatementLogger(debug bool) (*statementLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	l := newGormSlogLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), cfg)

	return l.(*statementLogger), &buf
}

// renderStatement mirrors how GORM builds the SQL passed to Trace.
func renderStatement(l *statementLogger, sql string, vars ...any) func() (string, int64) {
	return func() (string, int64) {
		filtered, filteredVars := l.ParamsFilter(context.Background(), sql, vars...)

		return gormpostgres.Dialector{}.Explain(filtered, filteredVars...), 1
	}
}

func TestStatementLogger_NeverLogsBindValues(t *testing.T) {
	l, buf := newCapturingStatementLogger(true)

	sqlFn := renderStatement(l, insertUserSQL, "alice@example.com", "$2a$10$secrethash", "Alice")
	l.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrDuplicatedKey)
	l.Trace(context.Background(), time.Now(), sqlFn, nil)

	out := buf.String()
	assert.Contains(t, out, "Store statement failed")
	assert.Contains(t, out, `"statement":"INSERT"`)
	assert.Contains(t, out, "$1")
	assert.NotContains(t, out, "alice@example.com")
	assert.NotContains(t, out, "secrethash")
}

func TestStatementLogger_Trace(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		begin   time.Time
		err     error
		wantMsg string
	}{
		{name: "failure", err: errors.New("connection reset"), begin: time.Now(), wantMsg: "Store statement failed"},
		{name: "missing row is expected", err: gorm.ErrRecordNotFound, begin: time.Now()},
		{name: "slow statement", begin: time.Now().Add(-time.Second), wantMsg: "Slow store statement"},
		{name: "fast statement without debug", begin: time.Now()},
		{name: "fast statement with debug", debug: true, begin: time.Now(), wantMsg: "Store statement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newCapturingStatementLogger(tt.debug)

			l.Trace(context.Background(), tt.begin, func() (string, int64) {
				return `SELECT * FROM "events"`, 0
			}, tt.err)

			if tt.wantMsg == "" {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), `"msg":"`+tt.wantMsg+`"`)
			assert.Contains(t, buf.String(), `"statement":"SELECT"`)
		})
	}
}

func TestStatementLogger_LogMode(t *testing.T) {
	l, buf := newCapturingStatementLogger(true)

	silent := l.LogMode(logger.Silent)
	silent.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, errors.New("boom"))
	silent.Error(context.Background(), "failed %s", "x")

	require.Empty(t, buf.String())

	l.Warn(context.Background(), "pool %d", 3)
	assert.Contains(t, buf.String(), "pool 3")
}

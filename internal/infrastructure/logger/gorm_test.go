package logger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGorm(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func TestNewGormLogger(t *testing.T) {
	gl, _ := newObservedGorm(gormlogger.Warn)
	assert.Equal(t, gormlogger.Warn, gl.logLevel)
	assert.Equal(t, 200*time.Millisecond, gl.slowThreshold)
	assert.True(t, gl.ignoreRecordNotFoundError)
	assert.False(t, gl.fullSQL)

	gl, _ = newObservedGorm(gormlogger.Info,
		WithSlowThreshold(time.Second),
		WithIgnoreRecordNotFoundError(false),
		WithFullSQL(true),
	)
	assert.Equal(t, time.Second, gl.slowThreshold)
	assert.False(t, gl.ignoreRecordNotFoundError)
	assert.True(t, gl.fullSQL)
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, _ := newObservedGorm(gormlogger.Warn)
	changed, ok := gl.LogMode(gormlogger.Info).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Info, changed.logLevel)
	assert.Equal(t, gormlogger.Warn, gl.logLevel, "original is unchanged")
}

func TestGormLogger_Trace(t *testing.T) {
	query := func(sql string) func() (string, int64) {
		return func() (string, int64) { return sql, 1 }
	}

	t.Run("error", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Warn)
		ctx := WithRequestID(context.Background(), "req-1")
		gl.Trace(ctx, time.Now(), query("SELECT 1"), errors.New("conn reset"))

		entries := recorded.FilterMessage("SQL Error").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	})

	t.Run("record not found ignored", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Warn)
		gl.Trace(context.Background(), time.Now(), query("SELECT 1"), gormlogger.ErrRecordNotFound)
		assert.Zero(t, recorded.Len())
	})

	t.Run("slow query", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Warn, WithSlowThreshold(time.Millisecond))
		gl.Trace(context.Background(), time.Now().Add(-time.Second), query("SELECT 1"), nil)
		assert.Equal(t, 1, recorded.FilterMessage("SLOW SQL >= 1ms").Len())
	})

	t.Run("info logs queries at debug", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Info)
		gl.Trace(context.Background(), time.Now(), query("SELECT 1"), nil)
		entries := recorded.FilterMessage("SQL Query").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Silent)
		gl.Trace(context.Background(), time.Now(), query("SELECT 1"), errors.New("x"))
		assert.Zero(t, recorded.Len())
	})

	t.Run("long statements truncated unless full sql", func(t *testing.T) {
		long := "SELECT " + strings.Repeat("a", 500)

		gl, recorded := newObservedGorm(gormlogger.Info)
		gl.Trace(context.Background(), time.Now(), query(long), nil)
		sql := recorded.All()[0].ContextMap()["sql"].(string)
		assert.Len(t, sql, maxLoggedSQL+3)

		gl, recorded = newObservedGorm(gormlogger.Info, WithFullSQL(true))
		gl.Trace(context.Background(), time.Now(), query(long), nil)
		assert.Equal(t, long, recorded.All()[0].ContextMap()["sql"])
	})
}

func TestGormLogger_Messages(t *testing.T) {
	gl, recorded := newObservedGorm(gormlogger.Warn)
	gl.Info(context.Background(), "info %d", 1)
	gl.Warn(context.Background(), "warn %d", 2)
	gl.Error(context.Background(), "error %d", 3)

	assert.Zero(t, recorded.FilterMessage("info 1").Len())
	assert.Equal(t, 1, recorded.FilterMessage("warn 2").Len())
	assert.Equal(t, 1, recorded.FilterMessage("error 3").Len())
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel(""))
}

package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/audiozoom/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRegisterDBTracing_Disabled(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, RegisterDBTracing(db, config.TelemetryConfig{}, "sqlite", zap.NewNop()))
	assert.Nil(t, db.Callback().Query().Get("az_trace:after_query"))
}

func TestRegisterDBTracing_Spans(t *testing.T) {
	restoreGlobalTracer(t)
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, RegisterDBTracing(db, config.TelemetryConfig{
		DBTraceEnabled:    true,
		DBSlowQueryThresh: time.Second,
	}, "sqlite", zap.NewNop()))
	assert.NotNil(t, db.Callback().Query().Get("az_trace:after_query"))

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Exec("CREATE TABLE messages (id TEXT)").Error)
	require.Error(t, db.WithContext(ctx).Exec("SELECT * FROM missing_table").Error)

	spans := recorder.Ended()
	require.GreaterOrEqual(t, len(spans), 2)
	assert.Equal(t, codes.Error, spans[len(spans)-1].Status().Code)
}

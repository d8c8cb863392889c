package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	defer slog.SetDefault(slog.Default())

	InitLoggerWithWriter(NewConfig("info", "json", "test-service", "1.0.0", "test", false), &buf)
	Info("test message", "key", "value", "number", 42)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "test-service", entry["service"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, float64(42), entry["number"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	defer slog.SetDefault(slog.Default())

	InitLoggerWithWriter(NewConfig("warn", "text", "svc", "dev", "test", false), &buf)
	Info("dropped")
	Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestRequestIDContext(t *testing.T) {
	var buf bytes.Buffer
	defer slog.SetDefault(slog.Default())
	InitLoggerWithWriter(NewConfig("info", "json", "svc", "dev", "test", false), &buf)

	ctx := WithRequestID(context.Background(), "test-req-123")
	assert.Equal(t, "test-req-123", GetRequestID(ctx))

	FromContext(ctx).Info("with id")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-req-123", entry[AttrKeyRequestID])
}

func TestRequestIDMissing(t *testing.T) {
	_, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)
	assert.Empty(t, GetRequestID(context.Background()))
	assert.NotNil(t, FromContext(context.Background()))
}

func TestGenerateRequestID(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	defer slog.SetDefault(slog.Default())
	InitLoggerWithWriter(NewConfig("info", "json", "svc", "dev", "test", false), &buf)

	ctx := WithRequestID(context.Background(), "req-9")
	ctx = WithAttrs(ctx, "product_id", "p-1")
	ctx = WithAttrs(ctx, "units", 4)
	assert.Equal(t, ctx, WithAttrs(ctx))

	FromContext(ctx).Info("run")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-9", entry[AttrKeyRequestID])
	assert.Equal(t, "p-1", entry["product_id"])
	assert.Equal(t, float64(4), entry["units"])
}

func TestIsDevelopment(t *testing.T) {
	assert.True(t, IsDevelopment("dev"))
	assert.True(t, IsDevelopment(" Development "))
	assert.True(t, IsDevelopment("local"))
	assert.False(t, IsDevelopment("prod"))
	assert.False(t, IsDevelopment(""))
}

func TestBaseAttributesSkipsEmpty(t *testing.T) {
	attrs := NewConfig("info", "text", "svc", "", "", false).BaseAttributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, AttrKeyService, attrs[0].Key)
}

func TestLogLevelParsing(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, Config{Level: in}.LogLevel(), in)
	}
}

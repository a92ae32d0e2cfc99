package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_LevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))
	ctx := context.Background()

	l.Debug(ctx, "dbg", "a", 1)
	l.Info(ctx, "inf", "b", 2)
	l.Warn(ctx, "wrn", "c", 3)
	l.Error(ctx, "err", "d", 4)

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	wantLevels := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	wantMsgs := []string{"dbg", "inf", "wrn", "err"}
	for i, e := range entries {
		assert.Equal(t, wantLevels[i], e.Level)
		assert.Equal(t, wantMsgs[i], e.Message)
		assert.Len(t, e.Context, 1)
	}
	assert.Equal(t, int64(2), entries[1].ContextMap()["b"])
}

func TestZapLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewZapLogger(zap.New(core)).With("module", "grpc_server")

	l.Info(context.Background(), "hello", "k", "v")

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "grpc_server", fields["module"])
	assert.Equal(t, "v", fields["k"])
}

func TestNew_Backends(t *testing.T) {
	var buf bytes.Buffer

	l, err := New("", &buf)
	require.NoError(t, err)
	assert.IsType(t, &SlogLogger{}, l)
	l.Info(context.Background(), "json line")
	assert.Contains(t, buf.String(), `"msg":"json line"`)

	l, err = New(BackendZap, &buf)
	require.NoError(t, err)
	assert.IsType(t, &ZapLogger{}, l)

	_, err = New("logrus", &buf)
	assert.Error(t, err)
}

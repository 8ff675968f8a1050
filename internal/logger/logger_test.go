package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeLines splits buffered JSON log output into one map per entry.
func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var entry map[string]any
		require.NoError(t, dec.Decode(&entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLogger_EntryFields(t *testing.T) {
	tests := []struct {
		name string
		role string
	}{
		{name: "server", role: "community-server"},
		{name: "migrations", role: "community-migrate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogger(tt.role)
			l.Logger = l.Output(&buf)

			l.Info().Msg("server is listening")

			entries := decodeLines(t, &buf)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.role, entries[0]["role"])
			assert.Contains(t, entries[0], "time")
			assert.Equal(t, "server is listening", entries[0]["message"])
		})
	}
}

func TestNewLogger_GlobalSettings(t *testing.T) {
	NewLogger("community-server")

	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetLevel(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantLevel zerolog.Level
		wantErr   bool
	}{
		{name: "warn", level: "warn", wantLevel: zerolog.WarnLevel},
		{name: "error", level: "error", wantLevel: zerolog.ErrorLevel},
		{name: "empty keeps debug", level: "", wantLevel: zerolog.DebugLevel},
		{name: "unknown", level: "loud", wantLevel: zerolog.DebugLevel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLogger("community-server")
			t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

			err := l.SetLevel(tt.level)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.level)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	require.NotNil(t, l)
	l.Logger = l.Output(&buf)

	l.Info().Str("trace_id", "0192").Msg("dropped")

	assert.Empty(t, buf.String())
}

// trace_id added to a child must not leak into the parent.
func TestGetChildLogger_TraceIDStaysOnChild(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("community-server")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", "01920000-0000-7000-8000-000000000001")
	})

	child.Info().Msg("request handled")
	parent.Info().Msg("shutting down")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "community-server", entries[0]["role"])
	assert.Equal(t, "01920000-0000-7000-8000-000000000001", entries[0]["trace_id"])
	assert.Equal(t, "community-server", entries[1]["role"])
	assert.NotContains(t, entries[1], "trace_id")
}

func TestFromContext(t *testing.T) {
	t.Run("without attached logger", func(t *testing.T) {
		l := FromContext(context.Background())
		require.NotNil(t, l)
	})

	t.Run("returns the request-scoped logger", func(t *testing.T) {
		var buf bytes.Buffer
		base := NewLogger("community-server")
		base.Logger = base.Output(&buf)

		scoped := base.GetChildLogger()
		scoped.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", "trace-from-header")
		})
		ctx := scoped.WithContext(context.Background())

		FromContext(ctx).Info().Msg("form checked")

		entries := decodeLines(t, &buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "trace-from-header", entries[0]["trace_id"])
		assert.Equal(t, "community-server", entries[0]["role"])
	})
}

func TestFromRequest(t *testing.T) {
	t.Run("without attached logger", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/version/", nil)
		require.NotNil(t, FromRequest(req))
	})

	t.Run("returns the request-scoped logger", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).With().Str("trace_id", "abc-123").Logger()

		req := httptest.NewRequest(http.MethodPost, "/api/user/login", nil)
		req = req.WithContext(zl.WithContext(req.Context()))

		FromRequest(req).Warn().Msg("wrong credentials")

		entries := decodeLines(t, &buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "abc-123", entries[0]["trace_id"])
		assert.Equal(t, "warn", entries[0]["level"])
	})
}

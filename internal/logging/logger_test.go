package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf, Fields: map[string]string{"service": "ssrgoods"}})

	log.Info().Str("addr", ":3000").Msg("listening")
	log.Debug().Msg("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var event map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &event))
	assert.Equal(t, "info", event["level"])
	assert.Equal(t, "listening", event["message"])
	assert.Equal(t, ":3000", event["addr"])
	assert.Equal(t, "ssrgoods", event["service"])
	assert.Contains(t, event, "time")
}

func TestNew_ConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Format: "console", Output: &buf, NoColor: true})

	log.Info().Msg("quiet")
	log.Warn().Msg("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
	assert.Contains(t, out, "WRN")
}

func TestNew_AutoFormatOnBufferIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: "auto", Output: &buf})
	log.Info().Msg("x")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))

	assert.True(t, ValidLevel("warn"))
	assert.False(t, ValidLevel("loud"))
	assert.False(t, ValidLevel(""))
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: "json", Output: &buf})

	ctx := WithLogger(context.Background(), &log)
	FromContext(ctx).Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")

	// No logger stored: events are dropped, not panicking.
	FromContext(context.Background()).Info().Msg("dropped")
	assert.NotContains(t, buf.String(), "dropped")
}

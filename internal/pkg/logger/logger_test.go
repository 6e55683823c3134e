package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
}

func TestConfigure_JSONOutputAndLevel(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true, Output: os.Stdout}) })

	Configure(Config{Level: WarnLevel, Output: &buf})

	Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	cl := Component("placement")
	cl.Warn().Str("year", "2024-2025").Msg("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "placement", entry["component"])
	assert.Equal(t, "2024-2025", entry["year"])
	assert.Equal(t, "kept", entry["message"])
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true, Output: os.Stdout}) })
	Configure(Config{Level: InfoLevel, Output: &buf})

	l := WithFields(map[string]interface{}{"role": "faculty"})
	l.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"role":"faculty"`)
}

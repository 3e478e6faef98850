package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitDisabledDiscards(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Enabled: false, Writer: &buf})
	Warn("should not appear")
	require.Zero(t, buf.Len())
}

func TestInitText(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Enabled: true, Writer: &buf, Level: slog.LevelWarn})
	t.Cleanup(func() { Init(Options{}) })

	Info("hidden")
	Warn("no match", "asset", "jump.brwav")
	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "no match")
	require.Contains(t, out, "asset=jump.brwav")
}

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Enabled: true, Writer: &buf, Level: slog.LevelDebug, JSON: true})
	t.Cleanup(func() { Init(Options{}) })

	Debug("found match", "offset", 42)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "found match", rec["msg"])
	require.InDelta(t, 42, rec["offset"], 0)
}

package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	cases := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{level: "debug", wantDebug: true, wantInfo: true},
		{level: "info", wantInfo: true},
		{level: "warn"},
		{level: "nonsense", wantInfo: true},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			t.Parallel()
			buf := &bytes.Buffer{}
			logger := newLogger(tc.level, "text", buf)

			logger.Debug("debug line")
			logger.Info("info line")

			assert.Equal(t, tc.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")))
			assert.Equal(t, tc.wantInfo, bytes.Contains(buf.Bytes(), []byte("info line")))
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}

	newLogger("info", "json", buf).Info("📦 Environment ready.", "env_id", "abc")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "📦 Environment ready.", line["msg"])
	assert.Equal(t, "abc", line["env_id"])
}

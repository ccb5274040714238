package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("JSON output carries the service field", func(t *testing.T) {
		var buf bytes.Buffer
		log := New("debug", "json", &buf)

		log.Debug().Str("user_id", "u1").Msg("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "hello", entry["message"])
		assert.Equal(t, "ecotrack-api", entry["service"])
		assert.Equal(t, "u1", entry["user_id"])
	})

	t.Run("Unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		log := New("shouting", "json", &buf)

		log.Debug().Msg("hidden")
		assert.Zero(t, buf.Len())

		log.Info().Msg("visible")
		assert.NotZero(t, buf.Len())
	})
}

package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, parseLevel(c.in), "nivel %q", c.in)
	}
}

func TestComponentStampsField(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{zl: zerolog.New(&buf)}

	l.Component("ventas").Info().Msg("venta creada")

	assert.Contains(t, buf.String(), `"component":"ventas"`)
	assert.Contains(t, buf.String(), "venta creada")
}

func TestNewHonorsConfiguredLevel(t *testing.T) {
	l := New(Config{Env: "production", Level: "warn", Service: "pos-ventas-api"})
	assert.Equal(t, zerolog.WarnLevel, l.zl.GetLevel())
}

package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"trace":   zerolog.TraceLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Info().Msg("quiet")
	log.Warn().Str("model", "taxi").Msg("using fallback model")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "using fallback model")
	assert.Contains(t, out, "model=taxi")
	assert.Contains(t, out, "WRN")
}

func TestNew_NilWriterDiscards(t *testing.T) {
	log := New(nil, "debug")
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}

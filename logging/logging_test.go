package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLevelRoundTrip(t *testing.T) {
	for level := TraceLevel; level <= FatalLevel; level++ {
		require.Equal(t, level, ParseLogLevel(LogLevelToString(level)))
	}
	require.Equal(t, InfoLevel, ParseLogLevel("nonsense"))
	require.Equal(t, WarnLevel, ParseLogLevel(" warning "))
	require.Equal(t, zerolog.ErrorLevel, ToZerologLevel(ErrorLevel))
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, WarnLevel, false)
	logger.Info().Msg("hidden")
	require.Equal(t, 0, buf.Len())
	logger.Warn().Str(FieldStep, "0").Msg("shown")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), `"step":"0"`)
}

package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_LevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, zerolog.DebugLevel, New().GetLevel())

	t.Setenv("LOG_LEVEL", "nonsense")
	assert.Equal(t, zerolog.InfoLevel, New().GetLevel())
}

func TestJSON(t *testing.T) {
	var out bytes.Buffer
	log := JSON(&out, zerolog.WarnLevel)

	log.Info().Msg("dropped")
	assert.Empty(t, out.String())

	log.Warn().Int("course_id", 17772).Msg("kept")
	assert.Contains(t, out.String(), `"service":"golfstats"`)
	assert.Contains(t, out.String(), `"course_id":17772`)
}

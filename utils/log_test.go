package utils_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dojoengine/worldscan/utils"
)

func TestLogLevelString(t *testing.T) {
	for level, str := range map[utils.LogLevel]string{
		utils.DEBUG: "debug",
		utils.INFO:  "info",
		utils.WARN:  "warn",
		utils.ERROR: "error",
	} {
		t.Run(str, func(t *testing.T) {
			assert.Equal(t, str, level.String())
		})
	}
}

func TestLogLevelSet(t *testing.T) {
	var level utils.LogLevel
	for _, s := range []string{"debug", "DEBUG", "info", "warn", "error"} {
		require.NoError(t, level.Set(s))
	}
	assert.ErrorIs(t, level.Set("fine"), utils.ErrUnknownLogLevel)
}

func TestLogLevelUnmarshalText(t *testing.T) {
	var level utils.LogLevel
	require.NoError(t, json.Unmarshal([]byte(`"warn"`), &level))
	assert.Equal(t, utils.WARN, level)
}

func TestNewZapLogger(t *testing.T) {
	for _, level := range []utils.LogLevel{utils.DEBUG, utils.INFO, utils.WARN, utils.ERROR} {
		_, err := utils.NewZapLogger(level, false)
		require.NoError(t, err)
	}
}

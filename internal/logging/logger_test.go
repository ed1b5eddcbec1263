package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewDevelopmentEnablesDebug(t *testing.T) {
	logger, err := New(Config{Development: true})
	require.NoError(t, err)
	require.NotNil(t, logger.Check(zap.DebugLevel, "emitted"))
}

func TestNewProductionDefaultsToInfo(t *testing.T) {
	logger, err := New(Config{})
	require.NoError(t, err)
	require.Nil(t, logger.Check(zap.DebugLevel, "suppressed"))
	require.NotNil(t, logger.Check(zap.InfoLevel, "emitted"))
}

func TestNewLevelOverride(t *testing.T) {
	logger, err := New(Config{Level: "warn"})
	require.NoError(t, err)
	require.Nil(t, logger.Check(zap.InfoLevel, "suppressed"))
	require.NotNil(t, logger.Check(zap.WarnLevel, "emitted"))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "chatty"})
	require.Error(t, err)
}

package logging_test

import (
	"testing"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAcceptsKnownLevels(t *testing.T) {
	t.Parallel()
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		l, err := logging.New(lvl)
		require.NoError(t, err, lvl)
		l.Debugf("level %s", lvl)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()
	_, err := logging.New("chatty")
	assert.Error(t, err)
}

func TestNopSatisfiesLogger(t *testing.T) {
	t.Parallel()
	var l logging.Logger = logging.Nop()
	l.Infof("ignored %d", 1)
	l.Warn("ignored")
}

package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whatssound/tipservice/internal/config"
	"github.com/whatssound/tipservice/internal/logger"
)

func TestNew(t *testing.T) {
	for _, env := range []string{"development", "production", ""} {
		t.Run("env "+env, func(t *testing.T) {
			cfg := &config.Config{App: config.App{Name: "tipservice", Env: env}}

			log, err := logger.New(cfg)
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

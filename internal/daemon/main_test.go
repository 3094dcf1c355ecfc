package daemon

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MediBoard/MediBoard/internal/config"
	"github.com/MediBoard/MediBoard/internal/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	require.ErrorIs(t, err, ErrConfigNil)

	cfg := &config.Config{
		Title: "MediBoard",
		Log:   logger.Log{LogLevel: "error", AppName: "mediboard", ServiceName: "api"},
		Auth:  config.Auth{AdminPassword: "s3cret"},
		DB: config.DB{
			GormEngine:   config.EngineSQLite,
			Name:         filepath.Join(t.TempDir(), "mediboard.db"),
			MaxOpenConns: 1,
		},
		Webserver: config.Webserver{Port: 8080, CheckAliveURI: "/checkalive"},
	}

	d, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, d.webService)
}

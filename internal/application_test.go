package application

import (
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/bingo-backend/internal/config"
	"github.com/stretchr/testify/require"
)

func TestRunApp_EmptyRedisHost(t *testing.T) {
	// Given: a config without a redis host
	conf := &config.Config{
		HTTPPort: "0",
		Redis:    config.Redis{Port: "6379"},
	}

	// When: the app is started
	err := RunApp(slog.New(slog.NewTextHandler(io.Discard, nil)), conf)

	// Then: it stops before connecting anywhere
	require.ErrorIs(t, err, ErrAddrNotFound)
}

package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/deppfellow/person-api/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresDependencies(t *testing.T) {
	logger := zerolog.Nop()

	_, err := New(nil, &logger, nil)
	assert.Error(t, err)

	_, err = New(config.Default(), nil, nil)
	assert.Error(t, err)
}

func TestStart_WithoutHTTPServer(t *testing.T) {
	logger := zerolog.Nop()
	s, err := New(config.Default(), &logger, nil)
	require.NoError(t, err)

	assert.EqualError(t, s.Start(), "HTTP server not initialized")
}

func TestSetupHTTPServer(t *testing.T) {
	logger := zerolog.Nop()
	cfg := config.Default()
	cfg.Server.Port = "9999"

	s, err := New(cfg, &logger, nil)
	require.NoError(t, err)

	s.SetupHTTPServer(http.NotFoundHandler())

	require.NotNil(t, s.httpServer)
	assert.Equal(t, ":9999", s.httpServer.Addr)
	assert.Equal(t, int64(30), int64(s.httpServer.ReadTimeout.Seconds()))
	assert.NoError(t, s.Shutdown(context.Background()))
}

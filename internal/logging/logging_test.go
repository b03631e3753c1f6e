package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")

	logger, closeFn, err := New(path, "debug")
	require.NoError(t, err)
	logger.WithField("page", "config").Debug("loaded mappings")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "loaded mappings")
	assert.Contains(t, string(data), "page=config")
}

func TestNew_EmptyPathDiscards(t *testing.T) {
	logger, closeFn, err := New("", "info")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.NoError(t, closeFn())
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New("", "chatty")
	assert.Error(t, err)
}

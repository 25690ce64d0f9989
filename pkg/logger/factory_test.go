package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

func TestNewJSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithService("authkit"),
	)

	log.Info("signed in", logger.UserID("u-1"), logger.Provider("google"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "signed in", record["msg"])
	assert.Equal(t, "authkit", record["service"])
	assert.Equal(t, "u-1", record["user_id"])
	assert.Equal(t, "google", record["provider"])
}

func TestNewTextOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatText),
	)

	log.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNewLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log = logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(slog.LevelDebug),
	)
	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestWithDevelopment(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithDevelopment(),
		logger.WithOutput(&buf),
	)

	log.Debug("dev record")
	out := buf.String()
	assert.Contains(t, out, "dev record")
	assert.False(t, strings.HasPrefix(out, "{"))
}

func TestErrorAttr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))

	attr := logger.Error(errors.New("boom"))
	assert.Equal(t, "error", attr.Key)
}

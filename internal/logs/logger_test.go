package logs

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Development(t *testing.T) {
	t.Setenv("GIN_MODE", "debug")

	var buf bytes.Buffer
	logger, err := New(WithOutput(&buf), WithLevel("error"))
	require.NoError(t, err)

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	logger.Debug("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestNew_Release(t *testing.T) {
	t.Setenv("GIN_MODE", "release")

	var buf bytes.Buffer
	logger, err := New(WithOutput(&buf), WithLevel("warning"), func(o *LoggerOptions) {
		o.InitialFields = map[string]any{"service": "tinyurl"}
	})
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	logger.Info("skipped")
	assert.Empty(t, buf.String())

	logger.WithField("code", "abc").Warn("stored")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "stored", entry["msg"])
	assert.Equal(t, "tinyurl", entry["service"])
	assert.Equal(t, "abc", entry["code"])
}

func TestNew_BadLevel(t *testing.T) {
	t.Setenv("GIN_MODE", "release")

	_, err := New(WithLevel("loud"))
	require.Error(t, err)
	assert.Panics(t, func() { MustNew(WithLevel("loud")) })
}

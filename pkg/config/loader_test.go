package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/config"
)

type serverTestConfig struct {
	Addr  string `env:"LOADER_TEST_ADDR" envDefault:":8080"`
	Debug bool   `env:"LOADER_TEST_DEBUG" envDefault:"false"`
}

type cachedTestConfig struct {
	Value string `env:"LOADER_TEST_CACHED" envDefault:"initial"`
}

type requiredTestConfig struct {
	Secret string `env:"LOADER_TEST_REQUIRED,required"`
}

func TestLoad(t *testing.T) {
	t.Setenv("LOADER_TEST_ADDR", ":9090")
	t.Setenv("LOADER_TEST_DEBUG", "true")

	var cfg serverTestConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":9090", cfg.Addr)
	assert.True(t, cfg.Debug)
}

func TestLoadCachesPerType(t *testing.T) {
	t.Setenv("LOADER_TEST_CACHED", "first")

	var first cachedTestConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("LOADER_TEST_CACHED", "second")

	var second cachedTestConfig
	require.NoError(t, config.Load(&second))

	assert.Equal(t, "first", second.Value)
}

func TestLoadMissingRequired(t *testing.T) {
	var cfg requiredTestConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoadNilPointer(t *testing.T) {
	var cfg *serverTestConfig
	err := config.Load(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

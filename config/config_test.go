package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, rest, err := Load([]string{"prog.scurry"})
	require.NoError(t, err)
	assert.Equal(t, &Config{LogLevel: "warn", LogFormat: "text", Prelude: false, Dump: DumpNone}, cfg)
	assert.Equal(t, []string{"prog.scurry"}, rest)
}

func TestLoadFlags(t *testing.T) {
	cfg, rest, err := Load([]string{"--log-level", "debug", "--prelude", "--dump=ast", "prog.scurry", "extra"})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Prelude)
	assert.Equal(t, DumpAST, cfg.Dump)
	assert.Equal(t, []string{"prog.scurry", "extra"}, rest)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SCURRY_LOG_FORMAT", "json")
	t.Setenv("SCURRY_INTERPRETER_PRELUDE", "true")

	cfg, _, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Prelude)

	// flags win over the environment
	cfg, _, err = Load([]string{"--log-format", "text"})
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scurry.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\ninterpreter:\n  prelude: true\ndump: tokens\n"), 0o644))

	cfg, _, err := Load([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Prelude)
	assert.Equal(t, DumpTokens, cfg.Dump)

	cfg, _, err = Load([]string{"--config", path, "--log-level", "error"})
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	for i, args := range [][]string{
		{"--no-such-flag"},
		{"--dump", "bytecode"},
		{"--config", filepath.Join(t.TempDir(), "missing.yaml")},
	} {
		if _, _, err := Load(args); err == nil {
			t.Errorf("%d) expected error for %v", i, args)
		}
	}
}

func TestLogger(t *testing.T) {
	var out bytes.Buffer
	cfg := &Config{LogLevel: "info", LogFormat: "json"}
	logger, err := cfg.Logger(&out)
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())

	logger.WithField("file", "x.scurry").Info("hello")
	logger.Debug("hidden")
	assert.Contains(t, out.String(), `"msg":"hello"`)
	assert.Contains(t, out.String(), `"file":"x.scurry"`)
	assert.NotContains(t, out.String(), "hidden")

	_, err = (&Config{LogLevel: "loud", LogFormat: "text"}).Logger(&out)
	assert.Error(t, err)
	_, err = (&Config{LogLevel: "info", LogFormat: "xml"}).Logger(&out)
	assert.Error(t, err)
}

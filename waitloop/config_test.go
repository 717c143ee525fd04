package waitloop

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DefaultConfig tests mutate the environment via t.Setenv and therefore must
// not call t.Parallel().

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()

	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestDefaultConfig_BuiltIns(t *testing.T) {
	clearEnv(t, envTimeout, envInterval)

	cfg := DefaultConfig()
	assert.Equal(t, defaultTimeout, cfg.Timeout)
	assert.Equal(t, defaultInterval, cfg.Interval)
}

func TestDefaultConfig_EnvOverrides(t *testing.T) {
	t.Setenv(envTimeout, "2s")
	t.Setenv(envInterval, "100ms")

	cfg := DefaultConfig()
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Interval)
}

func TestDefaultConfig_MalformedEnvFallsBack(t *testing.T) {
	t.Setenv(envTimeout, "not-a-duration")
	clearEnv(t, envInterval)

	cfg := DefaultConfig()
	assert.Equal(t, defaultTimeout, cfg.Timeout)
	assert.Equal(t, defaultInterval, cfg.Interval)
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "waitloop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "timeout: 10s\ninterval: 250ms\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
}

func TestLoadConfig_PartialFallsBackToBuiltIns(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "timeout: 30s\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, defaultInterval, cfg.Interval)
}

func TestLoadConfig_MalformedDuration(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "timeout: fast\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestLoadConfig_NegativeDuration(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "interval: -5s\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNegativeDuration)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "timeout: [nope\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
}

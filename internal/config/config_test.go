package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadTOMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "ecsdemo.toml", `
[logging]
level = "debug"

[runner]
tick_rate = "50ms"
ticks = 20

[scripting]
enabled = false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 50*time.Millisecond, cfg.Runner.TickRate)
	assert.Equal(t, 20, cfg.Runner.Ticks)
	assert.False(t, cfg.Scripting.Enabled)
	assert.Equal(t, "scripts", cfg.Scripting.Dir)
	assert.Equal(t, time.Second, cfg.Regen.Interval)
	assert.NotZero(t, cfg.App.StartTime)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "ecsdemo.yaml", `
app:
  name: yaml-demo
regen:
  amount: 5
  interval: 2s
spawn:
  file: ""
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "yaml-demo", cfg.App.Name)
	assert.Equal(t, 5, cfg.Regen.Amount)
	assert.Equal(t, 2*time.Second, cfg.Regen.Interval)
	assert.Empty(t, cfg.Spawn.File)
	assert.Equal(t, 200*time.Millisecond, cfg.Runner.TickRate)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "ecsdemo.ini", "x=1"))
	assert.ErrorContains(t, err, "unsupported format")

	_, err = Load(writeFile(t, "bad.toml", "[runner\n"))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeFile(t, "zero.toml", "[runner]\ntick_rate = \"0s\"\n"))
	assert.ErrorContains(t, err, "tick_rate")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.validate())
	assert.Equal(t, "ecsdemo", cfg.App.Name)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdmin = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv(EnvAdminIdentity, testAdmin)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	want := Defaults()
	want.Registry.AdminIdentity = testAdmin
	assert.Equal(t, want, cfg)
	assert.Equal(t, DefaultMaxBatchSize, cfg.Registry.MaxBatchSize)
	assert.Equal(t, DefaultNullIdentity, cfg.Registry.NullIdentity)
}

func TestLoadFromEnv_MissingAdmin(t *testing.T) {
	t.Setenv(EnvAdminIdentity, "")

	_, err := LoadFromEnv()
	require.ErrorContains(t, err, EnvAdminIdentity)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv(EnvAdminIdentity, testAdmin)
	t.Setenv(EnvServerPort, "9090")
	t.Setenv(EnvMaxBatchSize, "25")
	t.Setenv(EnvClock, ClockBlock)
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvLogFormat, LogFormatConsole)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 25, cfg.Registry.MaxBatchSize)
	assert.Equal(t, ClockBlock, cfg.Registry.Clock)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, LogFormatConsole, cfg.Log.Format)
}

func TestLoadFromEnv_MalformedNumberFallsBack(t *testing.T) {
	t.Setenv(EnvAdminIdentity, testAdmin)
	t.Setenv(EnvServerPort, "eighty")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
}

func TestValidate(t *testing.T) {
	base := Defaults()
	base.Registry.AdminIdentity = testAdmin
	require.NoError(t, base.Validate())

	cases := map[string]struct {
		mutate func(*Config)
		want   string
	}{
		"port out of range": {func(c *Config) { c.ServerPort = 70000 }, EnvServerPort},
		"zero read timeout": {func(c *Config) { c.ServerReadTimeoutSec = 0 }, EnvServerReadTimeoutSec},
		"tls without cert":  {func(c *Config) { c.TLS.Enabled = true }, EnvTLSCertFile},
		"admin is null": {func(c *Config) {
			c.Registry.AdminIdentity = DefaultNullIdentity
		}, EnvNullIdentity},
		"zero batch size": {func(c *Config) { c.Registry.MaxBatchSize = 0 }, EnvMaxBatchSize},
		"bad clock":       {func(c *Config) { c.Registry.Clock = "wall" }, EnvClock},
		"bad log level":   {func(c *Config) { c.Log.Level = "trace" }, EnvLogLevel},
		"bad log format":  {func(c *Config) { c.Log.Format = "xml" }, EnvLogFormat},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), tc.want)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "tracker.hcl", `
server {
  host = "127.0.0.1"
  port = 9191
}

registry {
  admin          = "`+testAdmin+`"
  max_batch_size = 10
  clock          = "block"
}

log {
  format = "console"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.ServerHost)
	assert.Equal(t, 9191, cfg.ServerPort)
	assert.Equal(t, 15, cfg.ServerReadTimeoutSec)
	assert.Equal(t, testAdmin, cfg.Registry.AdminIdentity)
	assert.Equal(t, 10, cfg.Registry.MaxBatchSize)
	assert.Equal(t, ClockBlock, cfg.Registry.Clock)
	assert.Equal(t, DefaultNullIdentity, cfg.Registry.NullIdentity)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, LogFormatConsole, cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "tracker.hcl", `
registry {
  admin          = "file-admin"
  max_batch_size = 10
}
`)
	t.Setenv(EnvAdminIdentity, testAdmin)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, testAdmin, cfg.Registry.AdminIdentity)
	assert.Equal(t, 10, cfg.Registry.MaxBatchSize)
}

func TestLoad_FileErrors(t *testing.T) {
	t.Setenv(EnvAdminIdentity, testAdmin)

	_, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.ErrorContains(t, err, "decoding config file")

	bad := writeFile(t, "bad.hcl", `registry { max_batch_size = "lots" }`)
	_, err = Load(bad)
	require.Error(t, err)

	unknown := writeFile(t, "unknown.hcl", `database { dsn = "x" }`)
	_, err = Load(unknown)
	require.Error(t, err)
}

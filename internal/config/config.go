package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	EnvServerHost            = "CTR_SERVER_HOST"
	EnvServerPort            = "CTR_SERVER_PORT"
	EnvServerReadTimeoutSec  = "CTR_SERVER_READ_TIMEOUT_SEC"
	EnvServerWriteTimeoutSec = "CTR_SERVER_WRITE_TIMEOUT_SEC"
	EnvServerIdleTimeoutSec  = "CTR_SERVER_IDLE_TIMEOUT_SEC"
	EnvTLSEnabled            = "CTR_TLS_ENABLED"
	EnvTLSCertFile           = "CTR_TLS_CERT_FILE"
	EnvTLSKeyFile            = "CTR_TLS_KEY_FILE"
	EnvAdminIdentity         = "CTR_ADMIN_IDENTITY"
	EnvNullIdentity          = "CTR_NULL_IDENTITY"
	EnvMaxBatchSize          = "CTR_MAX_BATCH_SIZE"
	EnvClock                 = "CTR_CLOCK"
	EnvLogLevel              = "CTR_LOG_LEVEL"
	EnvLogFormat             = "CTR_LOG_FORMAT"

	MinPortNumber = 1
	MaxPortNumber = 65535

	ClockUnix  = "unix"
	ClockBlock = "block"

	LogFormatJSON    = "json"
	LogFormatConsole = "console"

	DefaultNullIdentity = "SP000000000000000000002Q6VF78"
	DefaultMaxBatchSize = 100
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// TLSConfig holds TLS settings.
type TLSConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

// RegistryConfig holds the component registry settings.
type RegistryConfig struct {
	AdminIdentity string
	NullIdentity  string
	MaxBatchSize  int
	Clock         string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// Config holds backend runtime configuration.
type Config struct {
	ServerHost            string
	ServerPort            int
	ServerReadTimeoutSec  int
	ServerWriteTimeoutSec int
	ServerIdleTimeoutSec  int
	TLS                   TLSConfig
	Registry              RegistryConfig
	Log                   LogConfig
}

// Defaults returns the configuration used when nothing is overridden.
// AdminIdentity has no default and must be supplied.
func Defaults() Config {
	return Config{
		ServerHost:            "0.0.0.0",
		ServerPort:            8080,
		ServerReadTimeoutSec:  15,
		ServerWriteTimeoutSec: 15,
		ServerIdleTimeoutSec:  60,
		Registry: RegistryConfig{
			NullIdentity: DefaultNullIdentity,
			MaxBatchSize: DefaultMaxBatchSize,
			Clock:        ClockUnix,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatJSON,
		},
	}
}

// Load builds the configuration from defaults, then the optional HCL file at
// path, then environment variables, and validates the result.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromEnv loads and validates configuration from environment variables.
func LoadFromEnv() (Config, error) {
	return Load("")
}

func applyEnv(cfg *Config) {
	cfg.ServerHost = envOrDefault(EnvServerHost, cfg.ServerHost)
	cfg.ServerPort = intEnvOrDefault(EnvServerPort, cfg.ServerPort)
	cfg.ServerReadTimeoutSec = intEnvOrDefault(EnvServerReadTimeoutSec, cfg.ServerReadTimeoutSec)
	cfg.ServerWriteTimeoutSec = intEnvOrDefault(EnvServerWriteTimeoutSec, cfg.ServerWriteTimeoutSec)
	cfg.ServerIdleTimeoutSec = intEnvOrDefault(EnvServerIdleTimeoutSec, cfg.ServerIdleTimeoutSec)
	cfg.TLS.Enabled = boolEnvOrDefault(EnvTLSEnabled, cfg.TLS.Enabled)
	cfg.TLS.CertFile = envOrDefault(EnvTLSCertFile, cfg.TLS.CertFile)
	cfg.TLS.KeyFile = envOrDefault(EnvTLSKeyFile, cfg.TLS.KeyFile)
	cfg.Registry.AdminIdentity = envOrDefault(EnvAdminIdentity, cfg.Registry.AdminIdentity)
	cfg.Registry.NullIdentity = envOrDefault(EnvNullIdentity, cfg.Registry.NullIdentity)
	cfg.Registry.MaxBatchSize = intEnvOrDefault(EnvMaxBatchSize, cfg.Registry.MaxBatchSize)
	cfg.Registry.Clock = envOrDefault(EnvClock, cfg.Registry.Clock)
	cfg.Log.Level = strings.ToLower(envOrDefault(EnvLogLevel, cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(envOrDefault(EnvLogFormat, cfg.Log.Format))
}

// Validate checks that the configuration is coherent.
func (c Config) Validate() error {
	if c.ServerHost == "" {
		return errors.Errorf("invalid %s: must not be empty", EnvServerHost)
	}
	if c.ServerPort < MinPortNumber || c.ServerPort > MaxPortNumber {
		return errors.Errorf("invalid %s: must be in range %d..%d", EnvServerPort, MinPortNumber, MaxPortNumber)
	}
	if c.ServerReadTimeoutSec <= 0 {
		return errors.Errorf("invalid %s: must be > 0", EnvServerReadTimeoutSec)
	}
	if c.ServerWriteTimeoutSec <= 0 {
		return errors.Errorf("invalid %s: must be > 0", EnvServerWriteTimeoutSec)
	}
	if c.ServerIdleTimeoutSec <= 0 {
		return errors.Errorf("invalid %s: must be > 0", EnvServerIdleTimeoutSec)
	}
	if c.TLS.Enabled {
		if c.TLS.CertFile == "" {
			return errors.Errorf("invalid %s: required when TLS is enabled", EnvTLSCertFile)
		}
		if c.TLS.KeyFile == "" {
			return errors.Errorf("invalid %s: required when TLS is enabled", EnvTLSKeyFile)
		}
	}
	if c.Registry.AdminIdentity == "" {
		return errors.Errorf("invalid %s: must not be empty", EnvAdminIdentity)
	}
	if c.Registry.AdminIdentity == c.Registry.NullIdentity {
		return errors.Errorf("invalid config: %s must differ from %s", EnvAdminIdentity, EnvNullIdentity)
	}
	if c.Registry.MaxBatchSize <= 0 {
		return errors.Errorf("invalid %s: must be > 0", EnvMaxBatchSize)
	}
	if c.Registry.Clock != ClockUnix && c.Registry.Clock != ClockBlock {
		return errors.Errorf("invalid %s: must be %q or %q", EnvClock, ClockUnix, ClockBlock)
	}
	if !contains(validLogLevels, c.Log.Level) {
		return errors.Errorf("invalid %s: must be one of %s", EnvLogLevel, strings.Join(validLogLevels, ", "))
	}
	if c.Log.Format != LogFormatJSON && c.Log.Format != LogFormatConsole {
		return errors.Errorf("invalid %s: must be %q or %q", EnvLogFormat, LogFormatJSON, LogFormatConsole)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnvOrDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func boolEnvOrDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

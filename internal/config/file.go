package config

import (
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/pkg/errors"
)

// fileConfig mirrors the HCL layout:
//
//	server {
//	  host = "127.0.0.1"
//	  port = 9090
//	}
//	registry {
//	  admin          = "ST1PQ..."
//	  max_batch_size = 50
//	}
//	log {
//	  level = "debug"
//	}
//
// Every block and attribute is optional; unset values keep the defaults.
type fileConfig struct {
	Server   *serverBlock   `hcl:"server,block"`
	Registry *registryBlock `hcl:"registry,block"`
	Log      *logBlock      `hcl:"log,block"`
}

type serverBlock struct {
	Host            *string   `hcl:"host,optional"`
	Port            *int      `hcl:"port,optional"`
	ReadTimeoutSec  *int      `hcl:"read_timeout_sec,optional"`
	WriteTimeoutSec *int      `hcl:"write_timeout_sec,optional"`
	IdleTimeoutSec  *int      `hcl:"idle_timeout_sec,optional"`
	TLS             *tlsBlock `hcl:"tls,block"`
}

type tlsBlock struct {
	Enabled  *bool   `hcl:"enabled,optional"`
	CertFile *string `hcl:"cert_file,optional"`
	KeyFile  *string `hcl:"key_file,optional"`
}

type registryBlock struct {
	Admin        *string `hcl:"admin,optional"`
	NullIdentity *string `hcl:"null_identity,optional"`
	MaxBatchSize *int    `hcl:"max_batch_size,optional"`
	Clock        *string `hcl:"clock,optional"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// applyFile decodes the HCL (or HCL-JSON) file at path over cfg.
func applyFile(cfg *Config, path string) error {
	var fc fileConfig
	if err := hclsimple.DecodeFile(path, nil, &fc); err != nil {
		return errors.Wrapf(err, "decoding config file %q", path)
	}

	if s := fc.Server; s != nil {
		setString(&cfg.ServerHost, s.Host)
		setInt(&cfg.ServerPort, s.Port)
		setInt(&cfg.ServerReadTimeoutSec, s.ReadTimeoutSec)
		setInt(&cfg.ServerWriteTimeoutSec, s.WriteTimeoutSec)
		setInt(&cfg.ServerIdleTimeoutSec, s.IdleTimeoutSec)
		if t := s.TLS; t != nil {
			if t.Enabled != nil {
				cfg.TLS.Enabled = *t.Enabled
			}
			setString(&cfg.TLS.CertFile, t.CertFile)
			setString(&cfg.TLS.KeyFile, t.KeyFile)
		}
	}
	if r := fc.Registry; r != nil {
		setString(&cfg.Registry.AdminIdentity, r.Admin)
		setString(&cfg.Registry.NullIdentity, r.NullIdentity)
		setInt(&cfg.Registry.MaxBatchSize, r.MaxBatchSize)
		setString(&cfg.Registry.Clock, r.Clock)
	}
	if l := fc.Log; l != nil {
		setString(&cfg.Log.Level, l.Level)
		setString(&cfg.Log.Format, l.Format)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

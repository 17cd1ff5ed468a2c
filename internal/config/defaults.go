package config

import "github.com/ksyq12/vhostfrag/internal/location"

// Built-in rendering defaults.
const (
	DefaultProxyReadTimeout = "90s"
)

// DefaultProxySetHeaders are sent to upstreams unless a location overrides them.
var DefaultProxySetHeaders = []string{
	"Host $host",
	"X-Real-IP $remote_addr",
	"X-Forwarded-For $proxy_add_x_forwarded_for",
	"X-Forwarded-Proto $scheme",
}

// DefaultIndexFiles are served for directory and alias locations.
var DefaultIndexFiles = []string{"index.html", "index.htm", "index.php"}

// Defaults is the manifest "defaults" section.
type Defaults struct {
	ProxyReadTimeout string   `yaml:"proxy_read_timeout,omitempty" validate:"omitempty,nginx_time"`
	ProxySetHeaders  []string `yaml:"proxy_set_header,omitempty" validate:"dive,required"`
	IndexFiles       []string `yaml:"index_files,omitempty" validate:"dive,required"`
	ProxyBuffering   string   `yaml:"proxy_buffering,omitempty" validate:"omitempty,oneof=on off"`
}

// NewDefaults returns the built-in defaults.
func NewDefaults() Defaults {
	return Defaults{
		ProxyReadTimeout: DefaultProxyReadTimeout,
		ProxySetHeaders:  append([]string(nil), DefaultProxySetHeaders...),
		IndexFiles:       append([]string(nil), DefaultIndexFiles...),
	}
}

// merge fills fields left empty in d from the built-in defaults.
func (d Defaults) merge() Defaults {
	builtin := NewDefaults()
	if d.ProxyReadTimeout == "" {
		d.ProxyReadTimeout = builtin.ProxyReadTimeout
	}
	if len(d.ProxySetHeaders) == 0 {
		d.ProxySetHeaders = builtin.ProxySetHeaders
	}
	if len(d.IndexFiles) == 0 {
		d.IndexFiles = builtin.IndexFiles
	}
	return d
}

// Location converts d for the compiler.
func (d Defaults) Location() location.Defaults {
	return location.Defaults{
		ProxyReadTimeout: d.ProxyReadTimeout,
		ProxySetHeaders:  d.ProxySetHeaders,
		IndexFiles:       d.IndexFiles,
		ProxyBuffering:   d.ProxyBuffering,
	}
}

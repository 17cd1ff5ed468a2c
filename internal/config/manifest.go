package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ksyq12/vhostfrag/internal/errors"
	"github.com/ksyq12/vhostfrag/internal/location"
)

// Ensure values for a location entry.
const (
	EnsurePresent = "present"
	EnsureAbsent  = "absent"
)

// Manifest is a YAML document describing the locations of one or more vhosts.
type Manifest struct {
	StagingDir string          `yaml:"staging_dir,omitempty" validate:"omitempty,startswith=/"`
	Defaults   Defaults        `yaml:"defaults,omitempty"`
	Locations  []LocationEntry `yaml:"locations" validate:"dive"`
}

// LocationEntry is one location as written in the manifest.
type LocationEntry struct {
	VHost  string `yaml:"vhost" validate:"omitempty,fragment_name,fragment_vhost"`
	Name   string `yaml:"name" validate:"required,fragment_name"`
	Ensure string `yaml:"ensure,omitempty" validate:"omitempty,oneof=present absent"`

	Proxy         string `yaml:"proxy,omitempty"`
	AliasRoot     string `yaml:"alias_root,omitempty" validate:"omitempty,startswith=/"`
	WwwRoot       string `yaml:"www_root,omitempty" validate:"omitempty,startswith=/"`
	LocationAlias string `yaml:"location_alias,omitempty" validate:"omitempty,startswith=/"`
	StubStatus    bool   `yaml:"stub_status,omitempty"`

	SSL     bool `yaml:"ssl,omitempty"`
	SSLOnly bool `yaml:"ssl_only,omitempty"`

	Location         string            `yaml:"location,omitempty"`
	IndexFiles       []string          `yaml:"index_files,omitempty" validate:"dive,required"`
	ProxyReadTimeout string            `yaml:"proxy_read_timeout,omitempty" validate:"omitempty,nginx_time"`
	ProxySetHeaders  []string          `yaml:"proxy_set_header,omitempty" validate:"dive,required"`
	ProxyBuffering   string            `yaml:"proxy_buffering,omitempty" validate:"omitempty,oneof=on off"`
	TryFiles         []string          `yaml:"try_files,omitempty" validate:"dive,required"`
	WebsocketUpgrade bool              `yaml:"websocket_upgrade,omitempty"`
	CfgPrepend       map[string]string `yaml:"location_cfg_prepend,omitempty" validate:"dive,keys,required,endkeys,required"`
	CfgAppend        map[string]string `yaml:"location_cfg_append,omitempty" validate:"dive,keys,required,endkeys,required"`
}

// Key identifies the entry in messages as "vhost/name".
func (e LocationEntry) Key() string {
	return e.VHost + "/" + e.Name
}

// Spec converts the entry into a compiler spec.
func (e LocationEntry) Spec() location.Spec {
	return location.Spec{
		Name:          e.Name,
		VHost:         e.VHost,
		Enabled:       e.Ensure != EnsureAbsent,
		Proxy:         e.Proxy,
		AliasRoot:     e.AliasRoot,
		WwwRoot:       e.WwwRoot,
		LocationAlias: e.LocationAlias,
		StubStatus:    e.StubStatus,
		SSL:           e.SSL,
		SSLOnly:       e.SSLOnly,
		Params: location.Params{
			Location:         e.Location,
			IndexFiles:       e.IndexFiles,
			ProxyReadTimeout: e.ProxyReadTimeout,
			ProxySetHeaders:  e.ProxySetHeaders,
			ProxyBuffering:   e.ProxyBuffering,
			TryFiles:         e.TryFiles,
			WebsocketUpgrade: e.WebsocketUpgrade,
			Prepend:          e.CfgPrepend,
			Append:           e.CfgAppend,
		},
	}
}

// Specs converts every entry, in manifest order.
func (m *Manifest) Specs() []location.Spec {
	specs := make([]location.Spec, 0, len(m.Locations))
	for _, e := range m.Locations {
		specs = append(specs, e.Spec())
	}
	return specs
}

// LoadManifest reads a manifest from path, or from stdin when path is "-".
func LoadManifest(path string) (*Manifest, error) {
	if path == "-" {
		return ParseManifest(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeManifest, "failed to read manifest", err)
	}
	defer f.Close()

	return ParseManifest(f)
}

// ParseManifest decodes, completes and validates a manifest. Unknown keys
// are rejected so typos do not silently drop options.
func ParseManifest(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeManifest, "failed to read manifest", err)
	}

	m := &Manifest{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeManifest, "failed to parse manifest", err)
	}

	m.Defaults = m.Defaults.merge()

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks field formats and rejects duplicate locations, including
// distinct locations that would stage the same fragment file. Whether a
// location has a vhost and a content source is left to the compiler.
func (m *Manifest) Validate() error {
	if err := validateStruct(m); err != nil {
		return err
	}

	seen := make(map[string]int, len(m.Locations))
	ids := make(map[string]int, len(m.Locations)*2)
	for i, e := range m.Locations {
		if e.VHost == "" {
			continue
		}
		if first, ok := seen[e.Key()]; ok {
			return errors.Manifest(fmt.Sprintf("locations[%d]: duplicate location %s (first at locations[%d])", i, e.Key(), first))
		}
		seen[e.Key()] = i

		// Absent locations count too: they would remove the other's file.
		for _, id := range location.FragmentIDs(e.Spec()) {
			key := id.String()
			if first, ok := ids[key]; ok {
				return errors.Manifest(fmt.Sprintf("locations[%d]: %s would stage fragment %s, already staged by %s (locations[%d])",
					i, e.Key(), key, m.Locations[first].Key(), first))
			}
			ids[key] = i
		}
	}
	return nil
}

// Save writes the manifest as YAML.
func (m *Manifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

package location

// Spec describes one location of a virtual host. A Spec is built once from
// caller-supplied values and is treated as immutable afterwards.
type Spec struct {
	Name    string // unique within the vhost
	VHost   string // owning virtual host, required
	Enabled bool   // fragments should exist (ensure => present)

	// Primary content sources. Exactly one must be set.
	Proxy     string // upstream address or group
	AliasRoot string // filesystem path, request prefix stripped
	WwwRoot   string // filesystem path, request prefix kept

	// Legacy sources, outside the exclusivity check.
	LocationAlias string
	StubStatus    bool

	SSL     bool // also emit the secure-transport fragment
	SSLOnly bool // suppress the plaintext fragment

	Params Params
}

// Params are rendering parameters. The compiler passes them to the
// Renderer untouched apart from filling unset values from Defaults.
type Params struct {
	Location         string // request path, defaults to Name
	IndexFiles       []string
	ProxyReadTimeout string
	ProxySetHeaders  []string
	ProxyBuffering   string // "on", "off" or empty
	TryFiles         []string
	WebsocketUpgrade bool
	Prepend          map[string]string // raw directives before the content directives
	Append           map[string]string // raw directives after them
}

// Defaults supply rendering parameters a Spec leaves unset.
type Defaults struct {
	ProxyReadTimeout string
	ProxySetHeaders  []string
	IndexFiles       []string
	ProxyBuffering   string
}

// withDefaults returns a copy of p with unset values taken from d.
func (p Params) withDefaults(d Defaults, name string) Params {
	out := p
	if out.Location == "" {
		out.Location = name
	}
	if out.ProxyReadTimeout == "" {
		out.ProxyReadTimeout = d.ProxyReadTimeout
	}
	if len(out.ProxySetHeaders) == 0 {
		out.ProxySetHeaders = append([]string(nil), d.ProxySetHeaders...)
	}
	if len(out.IndexFiles) == 0 {
		out.IndexFiles = append([]string(nil), d.IndexFiles...)
	}
	if out.ProxyBuffering == "" {
		out.ProxyBuffering = d.ProxyBuffering
	}
	return out
}

package template

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/ksyq12/vhostfrag/internal/location"
)

//go:embed nginx/*.tmpl
var nginxTemplates embed.FS

// Directive is one raw "key value;" line.
type Directive struct {
	Key   string
	Value string
}

// TemplateData contains data for rendering location templates
type TemplateData struct {
	VHost            string
	Name             string
	Location         string
	Source           string
	IndexFiles       []string
	TryFiles         []string
	ProxyReadTimeout string
	ProxySetHeaders  []string
	ProxyBuffering   string
	WebsocketUpgrade bool
	Prepend          []Directive
	Append           []Directive
}

// Renderer renders location fragments from the embedded nginx templates.
// It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	tmpl, err := template.New("nginx").Funcs(funcMap).ParseFS(nginxTemplates, "nginx/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render implements location.Renderer.
func (r *Renderer) Render(strategy location.Strategy, spec location.Spec) (string, error) {
	name := strategy.Kind.String() + ".tmpl"
	if r.tmpl.Lookup(name) == nil {
		return "", fmt.Errorf("template not found: %s", name)
	}

	data := TemplateData{
		VHost:            spec.VHost,
		Name:             spec.Name,
		Location:         spec.Params.Location,
		Source:           strategy.Source,
		IndexFiles:       spec.Params.IndexFiles,
		TryFiles:         spec.Params.TryFiles,
		ProxyReadTimeout: spec.Params.ProxyReadTimeout,
		ProxySetHeaders:  spec.Params.ProxySetHeaders,
		ProxyBuffering:   spec.Params.ProxyBuffering,
		WebsocketUpgrade: spec.Params.WebsocketUpgrade,
		Prepend:          directives(spec.Params.Prepend),
		Append:           directives(spec.Params.Append),
	}

	if strategy.Kind == location.StrategyProxy {
		data.Source = proxyURL(strategy.Source)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

// Available returns the strategy names that have a template.
func (r *Renderer) Available() []string {
	var names []string
	for _, t := range r.tmpl.Templates() {
		name := t.Name()
		if !strings.HasSuffix(name, ".tmpl") || name == "common.tmpl" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".tmpl"))
	}
	sort.Strings(names)
	return names
}

// directives sorts m by key so output is stable across runs.
func directives(m map[string]string) []Directive {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Directive, 0, len(keys))
	for _, k := range keys {
		out = append(out, Directive{Key: k, Value: m[k]})
	}
	return out
}

// proxyURL adds an http scheme to bare host:port or upstream names.
func proxyURL(target string) string {
	if strings.Contains(target, "://") {
		return target
	}
	return "http://" + target
}

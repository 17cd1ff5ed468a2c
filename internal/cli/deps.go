package cli

import (
	"github.com/ksyq12/vhostfrag/internal/config"
	"github.com/ksyq12/vhostfrag/internal/executor"
	"github.com/ksyq12/vhostfrag/internal/input"
	"github.com/ksyq12/vhostfrag/internal/location"
	"github.com/ksyq12/vhostfrag/internal/platform"
	"github.com/ksyq12/vhostfrag/internal/template"
	"github.com/ksyq12/vhostfrag/internal/writer"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ManifestLoader   ManifestLoader
	PlatformDetector PlatformDetector
	RendererFactory  RendererFactory
	WriterFactory    WriterFactory
	Executor         executor.CommandExecutor
	StdinReader      input.Reader
}

// ManifestLoader reads manifests
type ManifestLoader interface {
	Load(path string) (*config.Manifest, error)
}

// PlatformDetector finds the default staging directory
type PlatformDetector interface {
	DefaultStagingDir() (string, error)
}

// RendererFactory creates the fragment renderer
type RendererFactory interface {
	Create() (location.Renderer, error)
}

// WriterFactory creates a fragment writer for a staging directory
type WriterFactory interface {
	Create(dir string) writer.Writer
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ManifestLoader:   &realManifestLoader{},
	PlatformDetector: &realPlatformDetector{},
	RendererFactory:  &realRendererFactory{},
	WriterFactory:    &realWriterFactory{},
	Executor:         executor.NewSystemExecutor(),
	StdinReader:      input.NewStdinReader(),
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

type realManifestLoader struct{}

func (r *realManifestLoader) Load(path string) (*config.Manifest, error) {
	return config.LoadManifest(path)
}

type realPlatformDetector struct{}

func (r *realPlatformDetector) DefaultStagingDir() (string, error) {
	return platform.DefaultStagingDir()
}

type realRendererFactory struct{}

func (r *realRendererFactory) Create() (location.Renderer, error) {
	return template.NewRenderer()
}

type realWriterFactory struct{}

func (r *realWriterFactory) Create(dir string) writer.Writer {
	return writer.NewStaging(dir)
}

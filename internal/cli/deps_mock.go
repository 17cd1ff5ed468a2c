package cli

import (
	"bytes"

	"github.com/fatih/color"

	"github.com/ksyq12/vhostfrag/internal/config"
	"github.com/ksyq12/vhostfrag/internal/executor"
	"github.com/ksyq12/vhostfrag/internal/input"
	"github.com/ksyq12/vhostfrag/internal/location"
	"github.com/ksyq12/vhostfrag/internal/output"
	"github.com/ksyq12/vhostfrag/internal/template"
	"github.com/ksyq12/vhostfrag/internal/writer"
)

// MockManifestLoader is a test double for ManifestLoader
type MockManifestLoader struct {
	Manifest *config.Manifest
	Err      error
	Paths    []string
}

func (m *MockManifestLoader) Load(path string) (*config.Manifest, error) {
	m.Paths = append(m.Paths, path)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Manifest == nil {
		m.Manifest = &config.Manifest{Defaults: config.NewDefaults()}
	}
	return m.Manifest, nil
}

// MockPlatformDetector is a test double for PlatformDetector
type MockPlatformDetector struct {
	Dir string
	Err error
}

func (m *MockPlatformDetector) DefaultStagingDir() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Dir == "" {
		return "/etc/nginx/fragments.d", nil
	}
	return m.Dir, nil
}

// MockRendererFactory returns Renderer, or the embedded templates when nil
type MockRendererFactory struct {
	Renderer location.Renderer
	Err      error
}

func (m *MockRendererFactory) Create() (location.Renderer, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Renderer != nil {
		return m.Renderer, nil
	}
	return template.NewRenderer()
}

// MockWriterFactory hands out one MockWriter and records requested dirs
type MockWriterFactory struct {
	Writer *writer.MockWriter
	Dirs   []string
}

func (m *MockWriterFactory) Create(dir string) writer.Writer {
	m.Dirs = append(m.Dirs, dir)
	if m.Writer == nil {
		m.Writer = writer.NewMockWriter(dir)
	}
	return m.Writer
}

// TestHelper installs mock dependencies and captures output
type TestHelper struct {
	Loader   *MockManifestLoader
	Platform *MockPlatformDetector
	Writers  *MockWriterFactory
	Executor *executor.MockExecutor
	Out      *bytes.Buffer
}

// Answer queues replies for interactive prompts
func (h *TestHelper) Answer(replies ...string) {
	deps.StdinReader = input.NewStringReader(replies...)
}

// NewTestHelper swaps in mocks for m and restores everything on cleanup
func NewTestHelper(t interface {
	Helper()
	Cleanup(func())
}, m *config.Manifest) *TestHelper {
	t.Helper()

	h := &TestHelper{
		Loader:   &MockManifestLoader{Manifest: m},
		Platform: &MockPlatformDetector{},
		Writers:  &MockWriterFactory{},
		Executor: &executor.MockExecutor{},
		Out:      &bytes.Buffer{},
	}

	oldDeps := deps
	deps = &Dependencies{
		ManifestLoader:   h.Loader,
		PlatformDetector: h.Platform,
		RendererFactory:  &MockRendererFactory{},
		WriterFactory:    h.Writers,
		Executor:         h.Executor,
		StdinReader:      input.NewStringReader(),
	}

	oldNoColor := color.NoColor
	color.NoColor = true
	output.SetOutput(h.Out)
	resetFlags()

	t.Cleanup(func() {
		deps = oldDeps
		color.NoColor = oldNoColor
		output.SetOutput(nil)
		resetFlags()
	})
	return h
}

// resetFlags restores package flag variables to their defaults
func resetFlags() {
	jsonOutput = false
	manifestPath = "manifest.yaml"
	locationFilter = ""
	concurrency = 0
	stagingDir = ""
	dryRun = false
	assumeYes = false
	vhostFilter = ""
	forceInit = false
}

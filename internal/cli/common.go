package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostfrag/internal/config"
	"github.com/ksyq12/vhostfrag/internal/location"
	"github.com/ksyq12/vhostfrag/internal/logger"
	"github.com/ksyq12/vhostfrag/internal/output"
)

// loadManifest loads the manifest named by --file
func loadManifest(path string) (*config.Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("--file is required")
	}
	logger.Debug("Loading manifest %s", path)

	m, err := deps.ManifestLoader.Load(path)
	if err != nil {
		return nil, err
	}
	// Loaders other than the file loader may skip validation; staging
	// relies on fragment ids being unique.
	if err := m.Validate(); err != nil {
		return nil, err
	}
	logger.DebugFields("Manifest loaded", logger.Fields{
		"locations":   len(m.Locations),
		"staging_dir": m.StagingDir,
	})
	return m, nil
}

// newCompiler builds a compiler using the manifest defaults
func newCompiler(m *config.Manifest) (*location.Compiler, error) {
	renderer, err := deps.RendererFactory.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	return location.NewCompiler(renderer, m.Defaults.Location()), nil
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// compiledLocation keeps a spec next to its fragments
type compiledLocation struct {
	Spec      location.Spec
	Fragments []location.Fragment
}

// compileManifest compiles every location of m, keeping manifest order
func compileManifest(ctx context.Context, m *config.Manifest, concurrency int) ([]compiledLocation, error) {
	compiler, err := newCompiler(m)
	if err != nil {
		return nil, err
	}

	specs := m.Specs()
	results, err := compiler.CompileAll(ctx, specs, concurrency)
	if err != nil {
		return nil, err
	}

	compiled := make([]compiledLocation, len(specs))
	for i, spec := range specs {
		compiled[i] = compiledLocation{Spec: spec, Fragments: results[i]}
		if len(results[i]) == 0 {
			logger.WarnFields("Location yields no fragments", logger.Fields{
				"vhost":    spec.VHost,
				"location": spec.Name,
				"reason":   "ssl_only without ssl",
			})
		}
	}
	return compiled, nil
}

// resolveStagingDir picks the --staging-dir flag, then the manifest, then
// the platform default
func resolveStagingDir(flag string, m *config.Manifest) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if m != nil && m.StagingDir != "" {
		return m.StagingDir, nil
	}
	dir, err := deps.PlatformDetector.DefaultStagingDir()
	if err != nil {
		return "", fmt.Errorf("no staging directory configured: %w", err)
	}
	return dir, nil
}

// outputResult handles JSON or human-readable output
func outputResult(data any, successMsg string, args ...any) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}

// FragmentResult describes one fragment in command output
type FragmentResult struct {
	ID      string `json:"id"`
	VHost   string `json:"vhost"`
	Name    string `json:"name"`
	Secure  bool   `json:"secure"`
	Enabled bool   `json:"enabled"`
	Change  string `json:"change,omitempty"`
	Text    string `json:"text,omitempty"`
}

func newFragmentResult(spec location.Spec, f location.Fragment) FragmentResult {
	return FragmentResult{
		ID:      f.ID.String(),
		VHost:   f.ID.VHost,
		Name:    f.ID.Name,
		Secure:  f.ID.Secure,
		Enabled: spec.Enabled,
	}
}

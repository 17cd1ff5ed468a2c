package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostfrag/internal/config"
	"github.com/ksyq12/vhostfrag/internal/output"
)

var (
	locationFilter string
	concurrency    int
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Print the fragments a manifest compiles to",
	Long: `Compile a manifest and print each fragment id followed by its text.
Nothing is written to disk.

Examples:
  vhostfrag compile -f site.yaml
  vhostfrag compile -f site.yaml --location example.com/api
  vhostfrag compile -f site.yaml --json`,
	Args: cobra.NoArgs,
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&manifestPath, "file", "f", "", "Manifest file (- for stdin)")
	compileCmd.Flags().StringVarP(&locationFilter, "location", "l", "", "Only compile VHOST/NAME")
	compileCmd.Flags().IntVar(&concurrency, "concurrency", 0, "Locations compiled in parallel (0 = default)")

	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	m, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}

	if locationFilter != "" {
		if err := filterLocations(m, locationFilter); err != nil {
			return err
		}
	}

	compiled, err := compileManifest(commandContext(cmd), m, concurrency)
	if err != nil {
		return err
	}

	results := make([]FragmentResult, 0, len(compiled)*2)
	for _, c := range compiled {
		for _, f := range c.Fragments {
			r := newFragmentResult(c.Spec, f)
			r.Text = f.Text
			results = append(results, r)
		}
	}

	if jsonOutput {
		return output.JSON(results)
	}
	for _, r := range results {
		output.Fragment(r.ID, r.Text)
	}
	return nil
}

// filterLocations keeps only the entry matching "vhost/name"
func filterLocations(m *config.Manifest, key string) error {
	if !strings.Contains(key, "/") {
		return fmt.Errorf("--location must be VHOST/NAME, got %q", key)
	}
	for _, e := range m.Locations {
		if e.Key() == key {
			m.Locations = []config.LocationEntry{e}
			return nil
		}
	}
	return fmt.Errorf("location %s not found in manifest", key)
}

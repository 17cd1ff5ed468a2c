package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostfrag/internal/input"
	"github.com/ksyq12/vhostfrag/internal/logger"
	"github.com/ksyq12/vhostfrag/internal/output"
	"github.com/ksyq12/vhostfrag/internal/writer"
)

var (
	stagingDir string
	dryRun     bool
	assumeYes  bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Compile a manifest and stage its fragments",
	Long: `Compile every location of a manifest and write its fragments to the
staging directory. Locations with "ensure: absent" have their fragments
removed instead.

All locations are compiled before anything is written, so an invalid
location leaves the staging directory untouched. Removals are confirmed
interactively unless --yes is given.

Examples:
  vhostfrag apply -f site.yaml
  vhostfrag apply -f site.yaml --staging-dir /etc/nginx/fragments.d
  vhostfrag apply -f site.yaml --dry-run
  vhostfrag apply -f site.yaml --yes`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&manifestPath, "file", "f", "", "Manifest file (- for stdin)")
	applyCmd.Flags().StringVar(&stagingDir, "staging-dir", "", "Fragment staging directory")
	applyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be staged without writing")
	applyCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Remove fragments without asking")
	applyCmd.Flags().IntVar(&concurrency, "concurrency", 0, "Locations compiled in parallel (0 = default)")

	rootCmd.AddCommand(applyCmd)
}

// DryRunOperation describes one planned staging action
type DryRunOperation struct {
	Action string `json:"action"`
	Target string `json:"target"`
}

// DryRunResult lists the planned staging actions
type DryRunResult struct {
	StagingDir string            `json:"staging_dir"`
	Operations []DryRunOperation `json:"operations"`
}

// ApplyResult summarises an apply run
type ApplyResult struct {
	Success    bool             `json:"success"`
	StagingDir string           `json:"staging_dir"`
	Fragments  []FragmentResult `json:"fragments"`
}

func runApply(cmd *cobra.Command, args []string) error {
	m, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}

	dir, err := resolveStagingDir(stagingDir, m)
	if err != nil {
		return err
	}

	compiled, err := compileManifest(commandContext(cmd), m, concurrency)
	if err != nil {
		return err
	}

	if dryRun {
		return outputApplyDryRun(dir, compiled)
	}

	if n := countRemovals(compiled); n > 0 && !assumeYes {
		output.Print("Remove %d fragments from %s? [y/N]: ", n, dir)
		if !input.Confirm(deps.StdinReader) {
			output.Info("Apply cancelled")
			return nil
		}
	}

	w := deps.WriterFactory.Create(dir)
	result := ApplyResult{Success: true, StagingDir: w.Dir(), Fragments: []FragmentResult{}}

	for _, c := range compiled {
		for _, f := range c.Fragments {
			change, err := w.Stage(f, c.Spec.Enabled)
			if err != nil {
				return fmt.Errorf("failed to stage %s: %w", f.ID, err)
			}
			logger.InfoFields("Fragment staged", logger.Fields{
				"id":     f.ID.String(),
				"change": string(change),
			})

			r := newFragmentResult(c.Spec, f)
			r.Change = string(change)
			result.Fragments = append(result.Fragments, r)

			if !jsonOutput && change != writer.ChangeUnchanged && change != writer.ChangeAbsent {
				output.Info("%s %s", change, r.ID)
			}
		}
	}

	return outputResult(result, "Staged %d fragments in %s", len(result.Fragments), w.Dir())
}

// countRemovals counts fragments of locations marked absent
func countRemovals(compiled []compiledLocation) int {
	n := 0
	for _, c := range compiled {
		if !c.Spec.Enabled {
			n += len(c.Fragments)
		}
	}
	return n
}

// outputApplyDryRun prints what apply would do without touching the disk
func outputApplyDryRun(dir string, compiled []compiledLocation) error {
	result := DryRunResult{StagingDir: dir, Operations: []DryRunOperation{}}
	for _, c := range compiled {
		action := "write_file"
		if !c.Spec.Enabled {
			action = "remove_file"
		}
		for _, f := range c.Fragments {
			result.Operations = append(result.Operations, DryRunOperation{
				Action: action,
				Target: f.ID.String(),
			})
		}
	}

	if jsonOutput {
		return output.JSON(result)
	}

	output.Info("Dry run: no changes will be made to %s", dir)
	rows := make([][]string, 0, len(result.Operations))
	for _, op := range result.Operations {
		rows = append(rows, []string{op.Action, op.Target})
	}
	output.Table([]string{"ACTION", "FRAGMENT"}, rows)
	return nil
}

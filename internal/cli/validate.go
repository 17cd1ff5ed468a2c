package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostfrag/internal/errors"
	"github.com/ksyq12/vhostfrag/internal/location"
	"github.com/ksyq12/vhostfrag/internal/output"
)

var manifestPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate every location in a manifest",
	Long: `Validate every location in a manifest and report all failures.

A location must name its vhost and declare exactly one of proxy,
alias_root or www_root.

Examples:
  vhostfrag validate -f site.yaml
  vhostfrag validate -f - < site.yaml
  vhostfrag validate -f site.yaml --json`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&manifestPath, "file", "f", "", "Manifest file (- for stdin)")

	rootCmd.AddCommand(validateCmd)
}

// ValidationResult is the outcome for one location
type ValidationResult struct {
	VHost    string `json:"vhost"`
	Name     string `json:"name"`
	Valid    bool   `json:"valid"`
	Code     string `json:"code,omitempty"`
	Error    string `json:"error,omitempty"`
	Strategy string `json:"strategy,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	m, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}

	results := make([]ValidationResult, 0, len(m.Locations))
	failed := 0
	for _, spec := range m.Specs() {
		results = append(results, validateSpec(spec))
		if !results[len(results)-1].Valid {
			failed++
		}
	}

	if jsonOutput {
		if err := output.JSON(results); err != nil {
			return err
		}
	} else {
		rows := make([][]string, 0, len(results))
		for _, r := range results {
			status := "ok (" + r.Strategy + ")"
			if !r.Valid {
				status = r.Error
			}
			rows = append(rows, []string{r.VHost, r.Name, status})
		}
		output.Table([]string{"VHOST", "LOCATION", "STATUS"}, rows)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d locations invalid", failed, len(results))
	}
	if !jsonOutput {
		output.Success("%d locations valid", len(results))
	}
	return nil
}

func validateSpec(spec location.Spec) ValidationResult {
	r := ValidationResult{VHost: spec.VHost, Name: spec.Name, Valid: true}

	if err := location.Validate(spec); err != nil {
		r.Valid = false
		r.Error = err.Error()
		var fe *errors.FragError
		if errors.As(err, &fe) {
			r.Code = string(fe.Code)
			r.Error = fe.Message
		}
		return r
	}

	r.Strategy = location.Select(spec).Kind.String()
	return r
}

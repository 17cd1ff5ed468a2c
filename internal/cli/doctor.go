package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostfrag/internal/executor"
	"github.com/ksyq12/vhostfrag/internal/location"
	"github.com/ksyq12/vhostfrag/internal/output"
	"github.com/ksyq12/vhostfrag/internal/writer"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check templates, staging directory and nginx",
	Long: `Run diagnostic checks before staging fragments.

Checks:
  - Fragment templates load
  - Staging directory exists and is writable
  - nginx is installed (informational)
  - Manifest locations validate, when --file is given

Examples:
  vhostfrag doctor
  vhostfrag doctor -f site.yaml --staging-dir /etc/nginx/fragments.d
  vhostfrag doctor --json`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVarP(&manifestPath, "file", "f", "", "Manifest file to validate (optional)")
	doctorCmd.Flags().StringVar(&stagingDir, "staging-dir", "", "Fragment staging directory")

	rootCmd.AddCommand(doctorCmd)
}

// Check statuses
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DoctorReport contains all diagnostic results
type DoctorReport struct {
	System    []CheckResult `json:"system"`
	Staging   []CheckResult `json:"staging"`
	Locations []CheckResult `json:"locations"`
}

// failed reports whether any check is an error
func (r *DoctorReport) failed() bool {
	for _, group := range [][]CheckResult{r.System, r.Staging, r.Locations} {
		for _, c := range group {
			if c.Status == StatusError {
				return true
			}
		}
	}
	return false
}

type templateLister interface {
	Available() []string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	report := &DoctorReport{
		System:    checkSystem(cmd),
		Locations: []CheckResult{},
	}

	var dir string
	if manifestPath != "" {
		m, err := loadManifest(manifestPath)
		if err != nil {
			report.Locations = append(report.Locations, CheckResult{StatusError, err.Error()})
		} else {
			report.Locations = checkLocations(m.Specs())
			dir = m.StagingDir
		}
	}
	if stagingDir != "" {
		dir = stagingDir
	}
	report.Staging = checkStaging(dir)

	if jsonOutput {
		if err := output.JSON(report); err != nil {
			return err
		}
	} else {
		displayDoctorResults(report)
	}

	if report.failed() {
		return fmt.Errorf("doctor found problems")
	}
	return nil
}

func checkSystem(cmd *cobra.Command) []CheckResult {
	results := []CheckResult{}

	renderer, err := deps.RendererFactory.Create()
	switch {
	case err != nil:
		results = append(results, CheckResult{StatusError, fmt.Sprintf("Templates failed to load: %v", err)})
	default:
		msg := "Templates loaded"
		if l, ok := renderer.(templateLister); ok {
			msg = fmt.Sprintf("Templates loaded (%s)", strings.Join(l.Available(), ", "))
		}
		results = append(results, CheckResult{StatusSuccess, msg})
	}

	// Fragments can be staged on a host without nginx, so a missing binary
	// is only a warning.
	path, version, err := executor.NginxVersion(commandContext(cmd), deps.Executor)
	if err != nil {
		results = append(results, CheckResult{StatusWarning, err.Error()})
	} else {
		results = append(results, CheckResult{StatusSuccess, fmt.Sprintf("nginx %s (%s)", version, path)})
	}

	return results
}

func checkStaging(dir string) []CheckResult {
	if dir == "" {
		var err error
		dir, err = resolveStagingDir("", nil)
		if err != nil {
			return []CheckResult{{StatusError, err.Error()}}
		}
	}

	exists, err := writer.Writable(dir)
	switch {
	case err != nil:
		return []CheckResult{{StatusError, err.Error()}}
	case !exists:
		return []CheckResult{{StatusWarning, fmt.Sprintf("Staging directory %s does not exist yet", dir)}}
	}

	ids, err := deps.WriterFactory.Create(dir).List()
	if err != nil {
		return []CheckResult{{StatusError, err.Error()}}
	}
	return []CheckResult{{StatusSuccess, fmt.Sprintf("Staging directory %s writable (%d fragments)", dir, len(ids))}}
}

func checkLocations(specs []location.Spec) []CheckResult {
	results := make([]CheckResult, 0, len(specs))
	for _, spec := range specs {
		key := spec.VHost + "/" + spec.Name
		r := validateSpec(spec)
		switch {
		case !r.Valid:
			results = append(results, CheckResult{StatusError, fmt.Sprintf("%s: %s", key, r.Error)})
		case len(location.FragmentIDs(spec)) == 0:
			results = append(results, CheckResult{StatusWarning, fmt.Sprintf("%s: ssl_only without ssl yields no fragments", key)})
		default:
			results = append(results, CheckResult{StatusSuccess, fmt.Sprintf("%s: %s", key, r.Strategy)})
		}
	}
	return results
}

func displayDoctorResults(report *DoctorReport) {
	output.Print("Checking system...")
	for _, check := range report.System {
		displayCheck(check)
	}
	output.Print("")

	output.Print("Checking staging directory...")
	for _, check := range report.Staging {
		displayCheck(check)
	}

	if len(report.Locations) > 0 {
		output.Print("")
		output.Print("Checking locations...")
		for _, check := range report.Locations {
			displayCheck(check)
		}
	}
}

func displayCheck(check CheckResult) {
	switch check.Status {
	case StatusSuccess:
		output.Success("%s", check.Message)
	case StatusWarning:
		output.Warn("%s", check.Message)
	case StatusError:
		output.Error("%s", check.Message)
	}
}

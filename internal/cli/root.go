package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostfrag/internal/logger"
	"github.com/ksyq12/vhostfrag/internal/platform"
)

var (
	jsonOutput bool
	verbose    bool
	version    = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vhostfrag",
	Short: "Compile nginx location fragments from a manifest",
	Long: `vhostfrag compiles declarative nginx location descriptions into ordered
configuration fragments and stages them for a virtual host assembler.

Each location is validated, rendered with a proxy, alias, directory or
stub_status template, and staged as "{vhost}-500-{name}", plus
"{vhost}-500-{name}-secure" when an SSL variant is requested.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	cobra.OnInitialize(func() {
		logger.Init(verbose)
		logger.Debug("vhostfrag %s on %s", version, platform.Platform())
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
}

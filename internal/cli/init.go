package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostfrag/internal/config"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Write a starter manifest",
	Long: `Write a starter manifest with one directory location, one proxy
location and the built-in defaults.

Examples:
  vhostfrag init site.yaml
  vhostfrag init site.yaml --force`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := args[0]

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	m := starterManifest()
	if err := m.Validate(); err != nil {
		return err
	}
	if err := m.Save(path); err != nil {
		return err
	}

	return outputResult(
		map[string]any{
			"success":   true,
			"file":      path,
			"locations": len(m.Locations),
		},
		"Wrote %s with %d locations", path, len(m.Locations),
	)
}

func starterManifest() *config.Manifest {
	return &config.Manifest{
		Defaults: config.NewDefaults(),
		Locations: []config.LocationEntry{
			{
				VHost:    "example.com",
				Name:     "root",
				Location: "/",
				WwwRoot:  "/var/www/example.com",
				SSL:      true,
			},
			{
				VHost:            "example.com",
				Name:             "api",
				Location:         "/api/",
				Proxy:            "127.0.0.1:3000",
				WebsocketUpgrade: true,
				SSL:              true,
				SSLOnly:          true,
			},
		},
	}
}

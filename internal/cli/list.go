package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostfrag/internal/location"
	"github.com/ksyq12/vhostfrag/internal/output"
)

var vhostFilter string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List staged fragments in assembly order",
	Long: `List the fragments in the staging directory in the order the assembler
concatenates them.

Examples:
  vhostfrag list --staging-dir /etc/nginx/fragments.d
  vhostfrag list --vhost example.com
  vhostfrag ls --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&stagingDir, "staging-dir", "", "Fragment staging directory")
	listCmd.Flags().StringVar(&vhostFilter, "vhost", "", "Only list fragments of this vhost")

	rootCmd.AddCommand(listCmd)
}

type fragmentListItem struct {
	Order  int    `json:"order"`
	ID     string `json:"id"`
	Secure bool   `json:"secure"`
}

func runList(cmd *cobra.Command, args []string) error {
	dir, err := resolveStagingDir(stagingDir, nil)
	if err != nil {
		return err
	}

	ids, err := deps.WriterFactory.Create(dir).List()
	if err != nil {
		return err
	}

	items := make([]fragmentListItem, 0, len(ids))
	for _, id := range ids {
		if vhostFilter != "" {
			if vhost, _, ok := location.SplitFragmentID(id); !ok || vhost != vhostFilter {
				continue
			}
		}
		items = append(items, fragmentListItem{
			Order:  len(items) + 1,
			ID:     id,
			Secure: strings.HasSuffix(id, location.SecureSuffix),
		})
	}

	if jsonOutput {
		return output.JSON(items)
	}

	if len(items) == 0 {
		output.Info("No fragments staged in %s", dir)
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		secure := "no"
		if item.Secure {
			secure = "yes"
		}
		rows = append(rows, []string{strconv.Itoa(item.Order), item.ID, secure})
	}
	output.Table([]string{"ORDER", "FRAGMENT", "SECURE"}, rows)
	return nil
}

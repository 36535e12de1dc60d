package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/willfong/mfi-generator/internal/database"
	"github.com/willfong/mfi-generator/internal/ui"
)

// Build metadata, set with -ldflags "-X .../internal/cmd.Version=..."
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		u := ui.New()
		if noColor {
			u.SetNoColor(true)
		}

		tables := make([]string, len(database.Tables))
		for i, t := range database.Tables {
			tables[i] = t.Name
		}

		fmt.Println(u.Header("Kechita Dataset Generator"))
		fmt.Println()
		fmt.Println(u.KeyValue("Version", Version))
		fmt.Println(u.KeyValue("Commit", GitCommit))
		fmt.Println(u.KeyValue("Built", BuildDate))
		fmt.Println(u.KeyValue("Go", fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)))
		fmt.Println(u.KeyValue("Tables", fmt.Sprintf("%d (%s)", len(tables), strings.Join(tables, ", "))))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = Version
}

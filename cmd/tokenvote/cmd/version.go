package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/tokenvote/cmd/tokenvote/common"
	"boscoin.io/tokenvote/lib/report"
	"boscoin.io/tokenvote/lib/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(c *cobra.Command, args []string) {
		if encode, found := report.DefaultEncodes[flagFormat]; found {
			if err := encode(version.Current(), os.Stdout); err != nil {
				cmdcommon.PrintError(err)
			}
			return
		}

		fmt.Printf("%s\n", version.ToDetailVersion())
	},
}

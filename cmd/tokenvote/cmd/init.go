package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"boscoin.io/tokenvote/cmd/tokenvote/common"
)

var rootCmd = &cobra.Command{
	Use:   filepath.Base(os.Args[0]),
	Short: "deploy a governance token and a ballot, then mint, delegate, vote and read back the tallies",
	Run: func(c *cobra.Command, args []string) {
		if len(args) < 1 {
			c.Usage()
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addGlobalFlags(rootCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		common.PrintError(err)
	}
}

func SetArgs(s []string) {
	rootCmd.SetArgs(s)
}

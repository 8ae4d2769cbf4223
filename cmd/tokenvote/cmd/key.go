package cmd

import (
	"github.com/spf13/cobra"

	"boscoin.io/tokenvote/cmd/tokenvote/cmd/key"
)

var (
	keyCmd *cobra.Command
)

func init() {
	keyCmd = &cobra.Command{
		Use:   "key",
		Short: "Signing key management",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	keyCmd.AddCommand(key.GenerateCmd)
	keyCmd.AddCommand(key.DeriveCmd)
	rootCmd.AddCommand(keyCmd)
}

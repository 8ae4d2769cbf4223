package cmd

import (
	"github.com/spf13/cobra"

	"boscoin.io/tokenvote/lib/sequencer"
)

var proposalsCmd *cobra.Command

func init() {
	proposalsCmd = &cobra.Command{
		Use:   "proposals",
		Short: "Print the name and the vote count of every proposal",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			runSequence(c, sequencer.ProposalsPhases, sequencer.BindAttach)
		},
	}

	addPlanFlags(proposalsCmd)
	addAttachFlags(proposalsCmd)

	rootCmd.AddCommand(proposalsCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"boscoin.io/tokenvote/lib/sequencer"
)

var operateCmd *cobra.Command

func init() {
	operateCmd = &cobra.Command{
		Use:   "operate",
		Short: "Mint, delegate, vote, then read back the tallies and the voting power",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			runSequence(c, sequencer.OperatePhases, bindMode())
		},
	}

	addPlanFlags(operateCmd)
	addParticipantFlags(operateCmd)
	addAttachFlags(operateCmd)
	addDeployFlags(operateCmd)

	operateCmd.Flags().StringVar(&flagVotePower, "vote-power", flagVotePower, "tokens each participant votes with, default 5")
	operateCmd.Flags().IntVar(&flagVoteProposal, "vote-proposal", flagVoteProposal, "index of the proposal every participant votes for")
	operateCmd.Flags().Uint64Var(&flagPastBlock, "past-block", flagPastBlock, "block number the past voting power is read at")

	rootCmd.AddCommand(operateCmd)
}

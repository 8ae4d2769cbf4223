package cmd

import (
	"github.com/spf13/cobra"

	"boscoin.io/tokenvote/lib/sequencer"
)

var mintCmd *cobra.Command

func init() {
	mintCmd = &cobra.Command{
		Use:   "mint",
		Short: "Mint tokens to every participant",
		Long:  "Mint tokens to every participant. Minting again mints again; nothing is skipped.",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			runSequence(c, sequencer.MintPhases, bindMode())
		},
	}

	addPlanFlags(mintCmd)
	addParticipantFlags(mintCmd)
	addAttachFlags(mintCmd)
	addDeployFlags(mintCmd)

	rootCmd.AddCommand(mintCmd)
}

func addDeployFlags(c *cobra.Command) {
	c.Flags().BoolVar(&flagDeploy, "deploy", flagDeploy, "deploy new contracts instead of attaching")
	addArtifactFlags(c)
}

func bindMode() sequencer.BindMode {
	if flagDeploy {
		return sequencer.BindDeploy
	}

	return sequencer.BindAttach
}

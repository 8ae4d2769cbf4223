package cmd

import (
	"github.com/spf13/cobra"

	"boscoin.io/tokenvote/lib/sequencer"
)

var deployCmd *cobra.Command

func init() {
	deployCmd = &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the token and the ballot with the proposals",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			runSequence(c, sequencer.DeployPhases, sequencer.BindDeploy)
		},
	}

	addPlanFlags(deployCmd)
	addArtifactFlags(deployCmd)

	rootCmd.AddCommand(deployCmd)
}

package cmd

import (
	"context"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/oklog/run"
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/tokenvote/cmd/tokenvote/common"
	"boscoin.io/tokenvote/lib/contract"
	"boscoin.io/tokenvote/lib/errors"
	"boscoin.io/tokenvote/lib/identity"
	"boscoin.io/tokenvote/lib/metrics"
	"boscoin.io/tokenvote/lib/network"
	"boscoin.io/tokenvote/lib/report"
	"boscoin.io/tokenvote/lib/sequencer"
	"boscoin.io/tokenvote/lib/storage"
)

var (
	flagPlan           string
	flagProposals      cmdcommon.ListFlags
	flagMintAmount     string
	flagVotePower      string
	flagVoteProposal   int
	flagParticipants   int
	flagParticipantKey cmdcommon.ListFlags
	flagToken          string
	flagBallot         string
	flagPastBlock      uint64
	flagMinimumBalance string
	flagVerifyCode     bool
	flagDeploy         bool
	flagTokenArtifact  string = "artifacts/contracts/Token.sol/MyToken.json"
	flagBallotArtifact string = "artifacts/contracts/CustomBallot.sol/CustomBallot.json"
)

func addArtifactFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagTokenArtifact, "token-artifact", flagTokenArtifact, "compiled token artifact json")
	c.Flags().StringVar(&flagBallotArtifact, "ballot-artifact", flagBallotArtifact, "compiled ballot artifact json")
}

func addPlanFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagPlan, "plan", flagPlan, "plan yaml file")
	c.Flags().Var(&flagProposals, "proposal", "proposal name; repeat for each proposal")
	c.Flags().StringVar(&flagMinimumBalance, "min-balance", flagMinimumBalance, "minimum ether balance of the signing account, default 0.01")
}

func addParticipantFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagMintAmount, "mint-amount", flagMintAmount, "tokens minted to each participant, default 10")
	c.Flags().IntVar(&flagParticipants, "participants", defaultParticipants, "number of mnemonic accounts taking part")
	c.Flags().Var(&flagParticipantKey, "participant-key", "private key of a participant without mnemonic; repeat for each")
}

func addAttachFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagToken, "token", flagToken, "token address, default the last deployment on the network")
	c.Flags().StringVar(&flagBallot, "ballot", flagBallot, "ballot address, default the last deployment on the network")
	c.Flags().BoolVar(&flagVerifyCode, "verify-code", flagVerifyCode, "check there is contract code at the attached addresses")
}

func planOptionsFromFlags(c *cobra.Command) planOptions {
	o := planOptions{
		Proposals:      flagProposals,
		MintAmount:     flagMintAmount,
		VotePower:      flagVotePower,
		Proposal:       flagVoteProposal,
		Participants:   flagParticipants,
		ParticipantKey: flagParticipantKey,
		Token:          flagToken,
		Ballot:         flagBallot,
		MinimumBalance: flagMinimumBalance,
		VerifyCode:     flagVerifyCode,
	}
	if f := c.Flags().Lookup("past-block"); f != nil && f.Changed {
		block := flagPastBlock
		o.PastBlock = &block
	}

	return o
}

// runSequence is the body of the commands which talk to the contracts.
func runSequence(c *cobra.Command, phases sequencer.Phases, mode sequencer.BindMode) {
	parseFlagsCommon(c)

	reporter, err := newReporter(flagFormat)
	if err != nil {
		cmdcommon.PrintFlagsError(c, "--format", err)
	}

	rpcTimeout, err := time.ParseDuration(flagRPCTimeout)
	if err != nil {
		cmdcommon.PrintFlagsError(c, "--rpc-timeout", err)
	}

	var f *planFile
	if len(flagPlan) > 0 {
		if f, err = loadPlanFile(flagPlan); err != nil {
			cmdcommon.PrintFlagsError(c, "--plan", err)
		}
	}

	deployer, err := identity.Resolve(identity.Config{
		Mnemonic:       flagMnemonic,
		PrivateKey:     flagPrivateKey,
		DerivationPath: flagDerivationPath,
	})
	if err != nil {
		cmdcommon.PrintError(err)
	}

	plan, err := buildPlan(f, planOptionsFromFlags(c), flagMnemonic, deployer)
	if err != nil {
		cmdcommon.PrintError(err)
	}
	plan.Mode = mode

	if len(flagMetricsPush) > 0 {
		metrics.InitPrometheusMetrics()
		metrics.SetVersion()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	{
		g.Add(func() error {
			return sequence(ctx, phases, deployer, plan, rpcTimeout, reporter)
		}, func(error) {
			cancel()
		})
	}
	{
		done := make(chan struct{})
		g.Add(func() error {
			return cmdcommon.Interrupt(done)
		}, func(error) {
			close(done)
		})
	}

	err = g.Run()

	if len(flagMetricsPush) > 0 {
		if perr := metrics.Push(flagMetricsPush, "tokenvote"); perr != nil {
			log.Error("failed to push metrics", "url", flagMetricsPush, "error", perr)
		}
	}

	if err != nil {
		cmdcommon.PrintError(err)
	}
}

func sequence(
	ctx context.Context,
	phases sequencer.Phases,
	deployer *identity.Identity,
	plan *sequencer.Plan,
	rpcTimeout time.Duration,
	reporter report.Reporter,
) error {
	if err := plan.Validate(phases); err != nil {
		return err
	}

	options := network.DefaultOptions()
	options.Timeout = rpcTimeout

	gate, err := network.Dial(ctx, flagNetwork, options)
	if err != nil {
		return err
	}
	defer gate.Close()

	config, err := storage.NewConfigFromString(flagStorage)
	if err != nil {
		return err
	}
	st, err := storage.NewLevelDBBackend(config)
	if err != nil {
		return err
	}
	defer st.Close()

	if plan.Mode == sequencer.BindAttach {
		if err := fillFromLatestDeployment(st, gate.Name(), plan); err != nil {
			return err
		}
	}

	tokenArtifact, ballotArtifact := "", ""
	if plan.Mode == sequencer.BindDeploy {
		tokenArtifact, ballotArtifact = flagTokenArtifact, flagBallotArtifact
	}
	tokenDesc, ballotDesc, err := contract.LoadDescriptors(ctx, tokenArtifact, ballotArtifact)
	if err != nil {
		return err
	}

	journal := storage.NewJournal(st, gate.Name())
	log.Debug("run started", "run", journal.RunID(), "network", gate.Name(), "phases", phases)

	binder := sequencer.NewContractBinder(contract.NewBinder(gate.Backend()), tokenDesc, ballotDesc)

	_, err = sequencer.NewSequencer(gate, binder, deployer, plan, phases).
		SetJournal(journal).
		SetReporter(reporter).
		Run(ctx)
	if ferr := reporter.Flush(); ferr != nil && err == nil {
		err = ferr
	}

	return err
}

// fillFromLatestDeployment sets the addresses not given from the last
// deployment recorded on the network.
func fillFromLatestDeployment(st *storage.LevelDBBackend, networkName string, plan *sequencer.Plan) error {
	var zero ethcommon.Address
	if plan.Token != zero && plan.Ballot != zero {
		return nil
	}

	latest, err := storage.LatestDeployment(st, networkName)
	if err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			return nil
		}
		return err
	}

	if plan.Token == zero && ethcommon.IsHexAddress(latest.Token) {
		plan.Token = ethcommon.HexToAddress(latest.Token)
	}
	if plan.Ballot == zero && ethcommon.IsHexAddress(latest.Ballot) {
		plan.Ballot = ethcommon.HexToAddress(latest.Ballot)
	}

	log.Debug("attaching to the last deployment", "token", plan.Token, "ballot", plan.Ballot, "run", latest.RunID)

	return nil
}

package sequencer

import (
	"context"
	"math/big"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"boscoin.io/tokenvote/lib/contract"
	"boscoin.io/tokenvote/lib/identity"
	"boscoin.io/tokenvote/lib/metrics"
	"boscoin.io/tokenvote/lib/report"
	"boscoin.io/tokenvote/lib/storage"
)

// Receipt is a confirmed transaction of a phase with its signer.
type Receipt struct {
	Phase   Phase
	Signer  ethcommon.Address
	Receipt *types.Receipt
}

// Result holds what a run produced, also when it stopped at a failure.
type Result struct {
	Completed []Phase

	Height  uint64
	Balance *big.Int

	Token  ethcommon.Address
	Ballot ethcommon.Address

	Receipts []Receipt
	Tally    []contract.Proposal

	PreMintVotes *big.Int
	PastVotes    *big.Int
	Votes        *big.Int
}

// Sequencer runs a set of phases of a plan against one network.
type Sequencer struct {
	network  Network
	binder   Binder
	deployer *identity.Identity
	plan     *Plan
	phases   Phases

	journal  Journal
	reporter report.Reporter

	token  Token
	ballot Ballot
	result *Result
}

func NewSequencer(network Network, binder Binder, deployer *identity.Identity, plan *Plan, phases Phases) *Sequencer {
	return &Sequencer{
		network:  network,
		binder:   binder,
		deployer: deployer,
		plan:     plan,
		phases:   phases,
		journal:  nopJournal{},
		reporter: report.NopReporter{},
	}
}

// SetJournal records deployments and confirmed transactions to j; nil
// records nothing.
func (s *Sequencer) SetJournal(j Journal) *Sequencer {
	if j == nil {
		j = nopJournal{}
	}
	s.journal = j

	return s
}

func (s *Sequencer) SetReporter(r report.Reporter) *Sequencer {
	if r == nil {
		r = report.NopReporter{}
	}
	s.reporter = r

	return s
}

// Run validates the plan and runs the phases in order. Every transaction of
// a phase is confirmed before the next phase starts; the first failure
// stops the run.
func (s *Sequencer) Run(ctx context.Context) (*Result, error) {
	if err := s.plan.Validate(s.phases); err != nil {
		return nil, err
	}

	s.result = &Result{}

	log.Debug("start", "network", s.network.Name(), "phases", s.phases, "mode", s.plan.Mode)

	if err := s.connect(ctx); err != nil {
		return s.result, err
	}

	for _, phase := range s.phases.Ordered() {
		log.Debug("phase started", "phase", phase)
		s.reporter.Phase(phase.String())

		started := time.Now()
		if err := s.runPhase(ctx, phase); err != nil {
			log.Error("phase failed", "phase", phase, "error", err)
			return s.result, err
		}
		metrics.Sequencer.Phase(phase.String(), time.Since(started))

		s.result.Completed = append(s.result.Completed, phase)
		log.Debug("phase done", "phase", phase, "elapsed", time.Since(started))
	}

	s.result.Completed = append(s.result.Completed, PhaseDone)

	return s.result, nil
}

func (s *Sequencer) runPhase(ctx context.Context, phase Phase) error {
	switch phase {
	case PhaseBind:
		return s.bind(ctx)
	case PhaseMint:
		return s.mint(ctx)
	case PhaseDelegate:
		return s.delegate(ctx)
	case PhaseVote:
		return s.vote(ctx)
	case PhaseTally:
		return s.tally(ctx)
	case PhasePower:
		return s.power(ctx)
	}

	return nil
}

// connect reports where the run happens and checks the deployer can pay
// for the writes before any is submitted.
func (s *Sequencer) connect(ctx context.Context) error {
	s.reporter.Identity(s.deployer.Address())

	height, err := s.network.LatestBlockHeight(ctx)
	if err != nil {
		return err
	}
	s.result.Height = height
	s.reporter.Connected(s.network.Name(), height)

	var balance *big.Int
	if s.plan.writes(s.phases) {
		balance, err = s.network.CheckFunds(ctx, s.deployer.Address(), s.plan.MinimumBalance)
	} else {
		balance, err = s.network.Balance(ctx, s.deployer.Address())
	}
	if balance != nil {
		s.result.Balance = balance
		s.reporter.Balance(balance)
	}

	return err
}

func (s *Sequencer) bind(ctx context.Context) error {
	if s.plan.Mode == BindAttach {
		return s.attach(ctx)
	}

	s.reporter.Proposals(s.plan.Proposals)

	proposals, err := contract.EncodeProposals(s.plan.Proposals)
	if err != nil {
		return err
	}

	token, tokenReceipt, err := s.binder.DeployToken(ctx, s.deployer)
	if err != nil {
		return err
	}
	s.token = token
	s.result.Token = token.Address()
	s.reporter.Contract(contract.TokenName, token.Address(), tokenReceipt)

	deployment := storage.Deployment{
		Token: token.Address().Hex(),
		Block: tokenReceipt.BlockNumber.Uint64(),
	}

	ballot, ballotReceipt, err := s.binder.DeployBallot(ctx, s.deployer, proposals, token.Address())
	if err != nil {
		// the token is live already
		if jerr := s.recordDeployment(ctx, deployment); jerr != nil {
			log.Error("failed to record the token deployment", "token", deployment.Token, "error", jerr)
		}
		return err
	}
	s.ballot = ballot
	s.result.Ballot = ballot.Address()
	s.reporter.Contract(contract.BallotName, ballot.Address(), ballotReceipt)

	deployment.Ballot = ballot.Address().Hex()
	deployment.Block = ballotReceipt.BlockNumber.Uint64()

	return s.recordDeployment(ctx, deployment)
}

func (s *Sequencer) recordDeployment(ctx context.Context, d storage.Deployment) error {
	chainID, err := s.network.ChainID(ctx)
	if err != nil {
		return err
	}
	d.ChainID = chainID.String()

	_, err = s.journal.RecordDeployment(d)

	return err
}

func (s *Sequencer) attach(ctx context.Context) error {
	var zero ethcommon.Address

	if s.plan.Token != zero {
		if s.plan.VerifyCode {
			if err := s.binder.Verify(ctx, contract.TokenName, s.plan.Token); err != nil {
				return err
			}
		}
		s.token = s.binder.AttachToken(s.plan.Token, s.deployer)
		s.result.Token = s.plan.Token
		s.reporter.Contract(contract.TokenName, s.plan.Token, nil)
	}

	if s.plan.Ballot != zero {
		if s.plan.VerifyCode {
			if err := s.binder.Verify(ctx, contract.BallotName, s.plan.Ballot); err != nil {
				return err
			}
		}
		s.ballot = s.binder.AttachBallot(s.plan.Ballot, s.deployer)
		s.result.Ballot = s.plan.Ballot
		s.reporter.Contract(contract.BallotName, s.plan.Ballot, nil)
	}

	return nil
}

func (s *Sequencer) mint(ctx context.Context) error {
	first := s.plan.Participants[0].Address()
	votes, err := s.token.GetVotes(ctx, first)
	if err != nil {
		return err
	}
	s.result.PreMintVotes = votes
	s.reporter.VotePower(report.PowerBeforeMint, first, 0, votes)

	for _, participant := range s.plan.Participants {
		tx, err := s.token.Mint(ctx, participant.Address(), s.plan.MintAmount)
		if err := s.confirm(ctx, PhaseMint, s.deployer, tx, err); err != nil {
			return err
		}
	}

	return nil
}

func (s *Sequencer) delegate(ctx context.Context) error {
	for _, participant := range s.plan.Participants {
		token := s.binder.AttachToken(s.token.Address(), participant.Identity)

		tx, err := token.Delegate(ctx, participant.Address())
		if err := s.confirm(ctx, PhaseDelegate, participant.Identity, tx, err); err != nil {
			return err
		}
	}

	return nil
}

func (s *Sequencer) vote(ctx context.Context) error {
	for _, participant := range s.plan.Participants {
		ballot := s.binder.AttachBallot(s.ballot.Address(), participant.Identity)

		tx, err := ballot.Vote(ctx, participant.Proposal, participant.Power)
		if err := s.confirm(ctx, PhaseVote, participant.Identity, tx, err); err != nil {
			return err
		}
	}

	return nil
}

func (s *Sequencer) tally(ctx context.Context) error {
	for i := range s.plan.Proposals {
		proposal, err := s.ballot.Proposal(ctx, i)
		if err != nil {
			return err
		}

		s.result.Tally = append(s.result.Tally, proposal)
		s.reporter.Tally(proposal)
	}

	return nil
}

func (s *Sequencer) power(ctx context.Context) error {
	first := s.plan.Participants[0].Address()

	past, err := s.token.GetPastVotes(ctx, first, s.plan.PastBlock)
	if err != nil {
		return err
	}
	s.result.PastVotes = past
	s.reporter.VotePower(report.PowerPast, first, s.plan.PastBlock, past)

	votes, err := s.token.GetVotes(ctx, first)
	if err != nil {
		return err
	}
	s.result.Votes = votes
	s.reporter.VotePower(report.PowerCurrent, first, 0, votes)

	return nil
}

// confirm waits for the receipt of a submitted transaction and records it.
// A reverted transaction is recorded before its error is returned.
func (s *Sequencer) confirm(ctx context.Context, phase Phase, signer *identity.Identity, tx contract.Tx, err error) error {
	if err != nil {
		metrics.Sequencer.Transaction(phase.String(), err, 0)
		return err
	}

	started := time.Now()
	receipt, err := tx.Wait(ctx)
	metrics.Sequencer.Transaction(phase.String(), err, time.Since(started))

	if receipt == nil {
		return err
	}

	s.result.Receipts = append(s.result.Receipts, Receipt{Phase: phase, Signer: signer.Address(), Receipt: receipt})
	s.reporter.Transaction(phase.String(), signer.Address(), receipt)

	status := storage.TxStatusSuccess
	if receipt.Status != types.ReceiptStatusSuccessful {
		status = storage.TxStatusReverted
	}

	if _, jerr := s.journal.RecordTransaction(storage.TxRecord{
		Phase:  phase.String(),
		Signer: signer.Address().Hex(),
		Hash:   tx.Hash().Hex(),
		Block:  receipt.BlockNumber.Uint64(),
		Status: status,
	}); jerr != nil && err == nil {
		err = jerr
	}

	return err
}

package sequencer

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"boscoin.io/tokenvote/lib/common"
	"boscoin.io/tokenvote/lib/contract"
	"boscoin.io/tokenvote/lib/errors"
	"boscoin.io/tokenvote/lib/identity"
)

type BindMode string

const (
	BindDeploy BindMode = "deploy"
	BindAttach BindMode = "attach"
)

var (
	DefaultProposals  = []string{"Proposal 1", "Proposal 2", "Proposal 3"}
	DefaultMintAmount = common.MustParseEther("10")
	DefaultVotePower  = common.MustParseEther("5")
)

type Participant struct {
	Identity *identity.Identity
	Proposal int
	Power    *big.Int
}

func (p Participant) Address() ethcommon.Address {
	return p.Identity.Address()
}

type Plan struct {
	Proposals    []string
	Participants []Participant
	MintAmount   *big.Int

	Mode   BindMode
	Token  ethcommon.Address
	Ballot ethcommon.Address
	// VerifyCode checks there is code at the attached addresses.
	VerifyCode bool

	// PastBlock is the block number the past voting power is read at.
	PastBlock      uint64
	MinimumBalance *big.Int
}

func NewPlan() *Plan {
	return &Plan{
		Proposals:  append([]string(nil), DefaultProposals...),
		MintAmount: new(big.Int).Set(DefaultMintAmount),
		Mode:       BindDeploy,
	}
}

// Validate checks everything which can be checked without the network for
// running `phases`.
func (p *Plan) Validate(phases Phases) error {
	switch p.Mode {
	case BindDeploy, BindAttach:
	default:
		return errors.InvalidPlan.Clone().SetData("mode", string(p.Mode))
	}

	if _, err := contract.EncodeProposals(p.Proposals); err != nil {
		return err
	}

	if p.Mode == BindAttach {
		var zero ethcommon.Address
		if phases.NeedsToken() && p.Token == zero {
			return errors.ContractAddressNotGiven.Clone().SetData("contract", contract.TokenName)
		}
		if phases.NeedsBallot() && p.Ballot == zero {
			return errors.ContractAddressNotGiven.Clone().SetData("contract", contract.BallotName)
		}
	}

	if phases.NeedsParticipants() && len(p.Participants) < 1 {
		return errors.NoParticipants
	}

	if phases.Has(PhaseMint) {
		if err := checkAmount("mint", p.MintAmount); err != nil {
			return err
		}
	}

	if phases.Has(PhaseVote) {
		for i, participant := range p.Participants {
			if participant.Proposal < 0 || participant.Proposal >= len(p.Proposals) {
				return errors.ProposalIndexOutOfRange.Clone().
					SetData("participant", i).
					SetData("proposal", participant.Proposal).
					SetData("proposals", len(p.Proposals))
			}
			if err := checkAmount("vote", participant.Power); err != nil {
				return err
			}
		}
	}

	for i, participant := range p.Participants {
		if participant.Identity == nil {
			return errors.InvalidPlan.Clone().
				SetData("participant", i).
				SetData("reason", "identity is missing")
		}
	}

	if p.MinimumBalance != nil && p.MinimumBalance.Sign() < 0 {
		return errors.InvalidAmount.Clone().SetData("minimum_balance", p.MinimumBalance.String())
	}

	return nil
}

func checkAmount(name string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errors.InvalidAmount.Clone().SetData("amount", name)
	}

	return nil
}

// writes is true when running phases submits any transaction.
func (p *Plan) writes(phases Phases) bool {
	if p.Mode == BindDeploy {
		return true
	}
	for phase := range phases {
		if phase.Writes() {
			return true
		}
	}

	return false
}

package cmd

import (
	"io/ioutil"
	"math/big"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v2"

	cmdcommon "boscoin.io/tokenvote/cmd/tokenvote/common"
	"boscoin.io/tokenvote/lib/errors"
	"boscoin.io/tokenvote/lib/identity"
	"boscoin.io/tokenvote/lib/sequencer"
)

const defaultParticipants = 2

// planFile is the yaml form of a plan. Amounts are in tokens or ether.
//
//	proposals: ["Proposal 1", "Proposal 2"]
//	mint_amount: "10"
//	participants:
//	  - account: 1
//	    proposal: 0
//	    power: "5"
//	  - private_key: "59c6..."
//	    proposal: 1
type planFile struct {
	Proposals      []string          `yaml:"proposals"`
	MintAmount     string            `yaml:"mint_amount"`
	Participants   []participantFile `yaml:"participants"`
	Token          string            `yaml:"token"`
	Ballot         string            `yaml:"ballot"`
	PastBlock      *uint64           `yaml:"past_block"`
	MinimumBalance string            `yaml:"minimum_balance"`
}

type participantFile struct {
	Account    *int   `yaml:"account"`
	PrivateKey string `yaml:"private_key"`
	Proposal   int    `yaml:"proposal"`
	Power      string `yaml:"power"`
}

func loadPlanFile(path string) (*planFile, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.InvalidPlan.Wrap(err).SetData("path", path)
	}

	return parsePlanFile(b)
}

func parsePlanFile(b []byte) (*planFile, error) {
	var f planFile
	if err := yaml.UnmarshalStrict(b, &f); err != nil {
		return nil, errors.InvalidPlan.Wrap(err)
	}

	return &f, nil
}

// planOptions are the plan related flags; unset ones keep the values of the
// plan file or the defaults.
type planOptions struct {
	Proposals      []string
	MintAmount     string
	VotePower      string
	Proposal       int
	Participants   int
	ParticipantKey []string
	Token          string
	Ballot         string
	PastBlock      *uint64
	MinimumBalance string
	VerifyCode     bool
}

func parseAmount(name, s string) (*big.Int, error) {
	amount, err := cmdcommon.ParseAmountFromString(s)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.SetData("field", name)
		}
		return nil, err
	}

	return amount, nil
}

func parseAddress(name, s string) (ethcommon.Address, error) {
	s = strings.TrimSpace(s)
	if !ethcommon.IsHexAddress(s) {
		return ethcommon.Address{}, errors.InvalidPlan.Clone().
			SetData("field", name).
			SetData("address", s)
	}

	return ethcommon.HexToAddress(s), nil
}

// buildPlan merges the plan file, when given, with the flags. Without
// participants in the file they are the first mnemonic accounts, or the
// deployer followed by the --participant-key accounts.
func buildPlan(f *planFile, o planOptions, mnemonic string, deployer *identity.Identity) (*sequencer.Plan, error) {
	if f == nil {
		f = &planFile{}
	}

	plan := sequencer.NewPlan()
	plan.VerifyCode = o.VerifyCode

	if len(o.Proposals) > 0 {
		plan.Proposals = o.Proposals
	} else if len(f.Proposals) > 0 {
		plan.Proposals = f.Proposals
	}

	var err error
	if s := firstNotEmpty(o.MintAmount, f.MintAmount); len(s) > 0 {
		if plan.MintAmount, err = parseAmount("mint_amount", s); err != nil {
			return nil, err
		}
	}
	if s := firstNotEmpty(o.MinimumBalance, f.MinimumBalance); len(s) > 0 {
		if plan.MinimumBalance, err = parseAmount("minimum_balance", s); err != nil {
			return nil, err
		}
	}

	if o.PastBlock != nil {
		plan.PastBlock = *o.PastBlock
	} else if f.PastBlock != nil {
		plan.PastBlock = *f.PastBlock
	}

	if s := firstNotEmpty(o.Token, f.Token); len(s) > 0 {
		if plan.Token, err = parseAddress("token", s); err != nil {
			return nil, err
		}
	}
	if s := firstNotEmpty(o.Ballot, f.Ballot); len(s) > 0 {
		if plan.Ballot, err = parseAddress("ballot", s); err != nil {
			return nil, err
		}
	}

	defaultPower := new(big.Int).Set(sequencer.DefaultVotePower)
	if len(o.VotePower) > 0 {
		if defaultPower, err = parseAmount("power", o.VotePower); err != nil {
			return nil, err
		}
	}

	if len(f.Participants) > 0 {
		plan.Participants, err = participantsFromFile(f.Participants, mnemonic, defaultPower)
	} else {
		plan.Participants, err = defaultParticipantsOf(o, mnemonic, deployer, defaultPower)
	}
	if err != nil {
		return nil, err
	}

	return plan, nil
}

func participantsFromFile(ps []participantFile, mnemonic string, defaultPower *big.Int) ([]sequencer.Participant, error) {
	var participants []sequencer.Participant
	for i, p := range ps {
		var id *identity.Identity
		var err error

		switch {
		case len(p.PrivateKey) > 0:
			id, err = identity.FromPrivateKey(p.PrivateKey)
		case p.Account != nil:
			if len(strings.TrimSpace(mnemonic)) < 1 {
				return nil, errors.InvalidPlan.Clone().
					SetData("participant", i).
					SetData("reason", "account needs a mnemonic")
			}
			id, err = identity.FromMnemonic(mnemonic, identity.DerivationPathOf(*p.Account))
		default:
			return nil, errors.InvalidPlan.Clone().
				SetData("participant", i).
				SetData("reason", "either account or private_key must be given")
		}
		if err != nil {
			return nil, err
		}

		power := defaultPower
		if len(p.Power) > 0 {
			if power, err = parseAmount("power", p.Power); err != nil {
				return nil, err
			}
		}

		participants = append(participants, sequencer.Participant{Identity: id, Proposal: p.Proposal, Power: power})
	}

	return participants, nil
}

func defaultParticipantsOf(o planOptions, mnemonic string, deployer *identity.Identity, power *big.Int) ([]sequencer.Participant, error) {
	var ids []*identity.Identity

	if len(strings.TrimSpace(mnemonic)) > 0 {
		n := o.Participants
		if n < 1 {
			n = defaultParticipants
		}

		var err error
		if ids, err = identity.Derive(mnemonic, n); err != nil {
			return nil, err
		}
	} else {
		ids = append(ids, deployer)
		for _, key := range o.ParticipantKey {
			id, err := identity.FromPrivateKey(key)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}

	var participants []sequencer.Participant
	for _, id := range ids {
		participants = append(participants, sequencer.Participant{
			Identity: id,
			Proposal: o.Proposal,
			Power:    new(big.Int).Set(power),
		})
	}

	return participants, nil
}

func firstNotEmpty(s ...string) string {
	for _, i := range s {
		if len(strings.TrimSpace(i)) > 0 {
			return i
		}
	}

	return ""
}

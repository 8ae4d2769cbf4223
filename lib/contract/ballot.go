package contract

import (
	"context"
	"math/big"

	"boscoin.io/tokenvote/lib/common"
	"boscoin.io/tokenvote/lib/errors"
	"boscoin.io/tokenvote/lib/identity"
)

const MinimumProposals = 2

type Proposal struct {
	Index     int      `json:"index"`
	Name      string   `json:"name"`
	VoteCount *big.Int `json:"vote_count"`
}

type Ballot struct {
	*Handle
}

func NewBallot(h *Handle) *Ballot {
	return &Ballot{Handle: h}
}

func (b *Ballot) Connect(signer *identity.Identity) *Ballot {
	return &Ballot{Handle: b.Handle.Connect(signer)}
}

func (b *Ballot) Vote(ctx context.Context, proposal int, amount *big.Int) (Tx, error) {
	p, err := b.Transact(ctx, "vote", big.NewInt(int64(proposal)), amount)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (b *Ballot) Proposal(ctx context.Context, index int) (Proposal, error) {
	out, err := b.Call(ctx, "proposals", big.NewInt(int64(index)))
	if err != nil {
		return Proposal{}, err
	}
	if len(out) != 2 {
		return Proposal{}, errors.UnexpectedCallResult.Clone().
			SetData("method", "proposals").
			SetData("outputs", len(out))
	}

	name, ok := out[0].([32]byte)
	if !ok {
		return Proposal{}, errors.UnexpectedCallResult.Clone().SetData("method", "proposals")
	}
	count, ok := out[1].(*big.Int)
	if !ok {
		return Proposal{}, errors.UnexpectedCallResult.Clone().SetData("method", "proposals")
	}

	return Proposal{
		Index:     index,
		Name:      common.ParseBytes32String(name),
		VoteCount: count,
	}, nil
}

// EncodeProposals converts proposal names into the fixed size identifiers
// the ballot constructor takes.
func EncodeProposals(names []string) ([][32]byte, error) {
	if len(names) < MinimumProposals {
		return nil, errors.NotEnoughProposals.Clone().
			SetData("given", len(names)).
			SetData("minimum", MinimumProposals)
	}

	encoded := make([][32]byte, len(names))
	for i, name := range names {
		b, err := common.FormatBytes32String(name)
		if err != nil {
			return nil, err
		}
		encoded[i] = b
	}

	return encoded, nil
}

package sequencer

import (
	"context"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"boscoin.io/tokenvote/lib/contract"
	"boscoin.io/tokenvote/lib/identity"
	"boscoin.io/tokenvote/lib/storage"
)

// Network is the part of the network gate the sequencer uses.
type Network interface {
	Name() string
	ChainID(context.Context) (*big.Int, error)
	LatestBlockHeight(context.Context) (uint64, error)
	Balance(context.Context, ethcommon.Address) (*big.Int, error)
	CheckFunds(context.Context, ethcommon.Address, *big.Int) (*big.Int, error)
}

// Token is the governance token as seen by one signer.
type Token interface {
	Address() ethcommon.Address
	Mint(ctx context.Context, to ethcommon.Address, amount *big.Int) (contract.Tx, error)
	Delegate(ctx context.Context, delegatee ethcommon.Address) (contract.Tx, error)
	GetVotes(ctx context.Context, account ethcommon.Address) (*big.Int, error)
	GetPastVotes(ctx context.Context, account ethcommon.Address, block uint64) (*big.Int, error)
}

// Ballot is the ballot contract as seen by one signer.
type Ballot interface {
	Address() ethcommon.Address
	Vote(ctx context.Context, proposal int, amount *big.Int) (contract.Tx, error)
	Proposal(ctx context.Context, index int) (contract.Proposal, error)
}

// Binder deploys or attaches the contracts. Attaching the same address with
// another signer is how a participant signs its own transactions.
type Binder interface {
	DeployToken(ctx context.Context, signer *identity.Identity) (Token, *types.Receipt, error)
	DeployBallot(ctx context.Context, signer *identity.Identity, proposals [][32]byte, token ethcommon.Address) (Ballot, *types.Receipt, error)
	AttachToken(address ethcommon.Address, signer *identity.Identity) Token
	AttachBallot(address ethcommon.Address, signer *identity.Identity) Ballot
	Verify(ctx context.Context, name string, address ethcommon.Address) error
}

type Journal interface {
	RecordDeployment(storage.Deployment) (storage.Deployment, error)
	RecordTransaction(storage.TxRecord) (storage.TxRecord, error)
}

type nopJournal struct{}

func (nopJournal) RecordDeployment(d storage.Deployment) (storage.Deployment, error) {
	return d, nil
}

func (nopJournal) RecordTransaction(r storage.TxRecord) (storage.TxRecord, error) {
	return r, nil
}

// ContractBinder binds through the contract package.
type ContractBinder struct {
	binder *contract.Binder
	token  *contract.Descriptor
	ballot *contract.Descriptor
}

func NewContractBinder(binder *contract.Binder, token, ballot *contract.Descriptor) *ContractBinder {
	return &ContractBinder{binder: binder, token: token, ballot: ballot}
}

func (b *ContractBinder) DeployToken(ctx context.Context, signer *identity.Identity) (Token, *types.Receipt, error) {
	h, receipt, err := b.binder.Deploy(ctx, b.token, signer)
	if err != nil {
		return nil, nil, err
	}

	return contract.NewToken(h), receipt, nil
}

func (b *ContractBinder) DeployBallot(ctx context.Context, signer *identity.Identity, proposals [][32]byte, token ethcommon.Address) (Ballot, *types.Receipt, error) {
	h, receipt, err := b.binder.Deploy(ctx, b.ballot, signer, proposals, token)
	if err != nil {
		return nil, nil, err
	}

	return contract.NewBallot(h), receipt, nil
}

func (b *ContractBinder) AttachToken(address ethcommon.Address, signer *identity.Identity) Token {
	return contract.NewToken(b.binder.Attach(b.token, address, signer))
}

func (b *ContractBinder) AttachBallot(address ethcommon.Address, signer *identity.Identity) Ballot {
	return contract.NewBallot(b.binder.Attach(b.ballot, address, signer))
}

func (b *ContractBinder) Verify(ctx context.Context, name string, address ethcommon.Address) error {
	desc := b.token
	if name == contract.BallotName || name == b.ballot.Name {
		desc = b.ballot
	}

	return b.binder.Attach(desc, address, nil).Verify(ctx)
}

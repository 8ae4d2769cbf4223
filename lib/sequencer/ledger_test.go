package sequencer

import (
	"context"
	"math/big"
	"sync"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"boscoin.io/tokenvote/lib/common"
	"boscoin.io/tokenvote/lib/contract"
	"boscoin.io/tokenvote/lib/errors"
	"boscoin.io/tokenvote/lib/identity"
	"boscoin.io/tokenvote/lib/network"
)

type submitted struct {
	method string
	signer ethcommon.Address
}

// ledger is an in-memory chain with a token and a ballot which keeps count
// of every call made to it.
type ledger struct {
	sync.Mutex

	calls  int
	height uint64
	ether  map[ethcommon.Address]*big.Int

	token     ethcommon.Address
	ballot    ethcommon.Address
	balances  map[ethcommon.Address]*big.Int
	delegates map[ethcommon.Address]ethcommon.Address
	proposals []string
	counts    []*big.Int

	submitted []submitted
	failOn    string
	revertOn  string
	missing   map[ethcommon.Address]bool
}

func newLedger() *ledger {
	return &ledger{
		height:    100,
		ether:     map[ethcommon.Address]*big.Int{},
		balances:  map[ethcommon.Address]*big.Int{},
		delegates: map[ethcommon.Address]ethcommon.Address{},
		missing:   map[ethcommon.Address]bool{},
	}
}

func (l *ledger) call() {
	l.Lock()
	defer l.Unlock()
	l.calls++
}

func (l *ledger) Name() string {
	return "ledger"
}

func (l *ledger) ChainID(context.Context) (*big.Int, error) {
	l.call()
	return big.NewInt(1337), nil
}

func (l *ledger) LatestBlockHeight(context.Context) (uint64, error) {
	l.call()
	return l.height, nil
}

func (l *ledger) Balance(_ context.Context, address ethcommon.Address) (*big.Int, error) {
	l.call()
	if b, found := l.ether[address]; found {
		return b, nil
	}
	return big.NewInt(0), nil
}

func (l *ledger) CheckFunds(ctx context.Context, address ethcommon.Address, minimum *big.Int) (*big.Int, error) {
	balance, _ := l.Balance(ctx, address)
	if minimum == nil {
		minimum = network.DefaultMinimumBalance
	}
	if balance.Cmp(minimum) < 0 {
		return balance, errors.InsufficientFunds.Clone()
	}
	return balance, nil
}

func (l *ledger) submit(method string, signer *identity.Identity, apply func()) (contract.Tx, error) {
	l.call()

	l.Lock()
	defer l.Unlock()

	if method == l.failOn {
		return nil, errors.UnexpectedCallResult.Clone().SetData("method", method)
	}

	l.submitted = append(l.submitted, submitted{method: method, signer: signer.Address()})
	l.height++

	status := types.ReceiptStatusSuccessful
	if method == l.revertOn {
		status = types.ReceiptStatusFailed
	} else if apply != nil {
		apply()
	}

	return &ledgerTx{
		hash: ethcommon.BigToHash(big.NewInt(int64(len(l.submitted)))),
		receipt: &types.Receipt{
			Status:      status,
			BlockNumber: new(big.Int).SetUint64(l.height),
		},
	}, nil
}

func (l *ledger) votes(account ethcommon.Address) *big.Int {
	votes := big.NewInt(0)
	for holder, delegatee := range l.delegates {
		if delegatee == account {
			if b, found := l.balances[holder]; found {
				votes.Add(votes, b)
			}
		}
	}
	return votes
}

func (l *ledger) DeployToken(ctx context.Context, signer *identity.Identity) (Token, *types.Receipt, error) {
	tx, err := l.submit("deploy-token", signer, func() {
		l.token = ethcommon.HexToAddress("0x4b6FE7b0336bCedF801DEe496F76a836C8D4e283")
	})
	if err != nil {
		return nil, nil, err
	}
	receipt, err := tx.Wait(ctx)
	if err != nil {
		return nil, nil, err
	}
	return l.AttachToken(l.token, signer), receipt, nil
}

func (l *ledger) DeployBallot(ctx context.Context, signer *identity.Identity, proposals [][32]byte, token ethcommon.Address) (Ballot, *types.Receipt, error) {
	tx, err := l.submit("deploy-ballot", signer, func() {
		l.ballot = ethcommon.HexToAddress("0x0dAd88c6d36c5056216d7cc4f5e3B94465Ea5015")
		l.proposals = nil
		l.counts = nil
		for _, p := range proposals {
			l.proposals = append(l.proposals, common.ParseBytes32String(p))
			l.counts = append(l.counts, big.NewInt(0))
		}
	})
	if err != nil {
		return nil, nil, err
	}
	receipt, err := tx.Wait(ctx)
	if err != nil {
		return nil, nil, err
	}
	return l.AttachBallot(l.ballot, signer), receipt, nil
}

func (l *ledger) AttachToken(address ethcommon.Address, signer *identity.Identity) Token {
	return &ledgerToken{ledger: l, address: address, signer: signer}
}

func (l *ledger) AttachBallot(address ethcommon.Address, signer *identity.Identity) Ballot {
	return &ledgerBallot{ledger: l, address: address, signer: signer}
}

func (l *ledger) Verify(_ context.Context, name string, address ethcommon.Address) error {
	l.call()
	if l.missing[address] {
		return errors.ContractCodeNotFound.Clone().SetData("name", name)
	}
	return nil
}

func (l *ledger) signers(method string) (signers []ethcommon.Address) {
	for _, s := range l.submitted {
		if s.method == method {
			signers = append(signers, s.signer)
		}
	}
	return
}

type ledgerTx struct {
	hash    ethcommon.Hash
	receipt *types.Receipt
}

func (t *ledgerTx) Hash() ethcommon.Hash {
	return t.hash
}

func (t *ledgerTx) Wait(context.Context) (*types.Receipt, error) {
	t.receipt.TxHash = t.hash
	if t.receipt.Status != types.ReceiptStatusSuccessful {
		return t.receipt, errors.TransactionReverted.Clone()
	}
	return t.receipt, nil
}

type ledgerToken struct {
	ledger  *ledger
	address ethcommon.Address
	signer  *identity.Identity
}

func (t *ledgerToken) Address() ethcommon.Address {
	return t.address
}

func (t *ledgerToken) Mint(_ context.Context, to ethcommon.Address, amount *big.Int) (contract.Tx, error) {
	return t.ledger.submit("mint", t.signer, func() {
		b, found := t.ledger.balances[to]
		if !found {
			b = big.NewInt(0)
		}
		t.ledger.balances[to] = new(big.Int).Add(b, amount)
	})
}

func (t *ledgerToken) Delegate(_ context.Context, delegatee ethcommon.Address) (contract.Tx, error) {
	return t.ledger.submit("delegate", t.signer, func() {
		t.ledger.delegates[t.signer.Address()] = delegatee
	})
}

func (t *ledgerToken) GetVotes(_ context.Context, account ethcommon.Address) (*big.Int, error) {
	t.ledger.call()
	return t.ledger.votes(account), nil
}

func (t *ledgerToken) GetPastVotes(context.Context, ethcommon.Address, uint64) (*big.Int, error) {
	t.ledger.call()
	return big.NewInt(0), nil
}

type ledgerBallot struct {
	ledger  *ledger
	address ethcommon.Address
	signer  *identity.Identity
}

func (b *ledgerBallot) Address() ethcommon.Address {
	return b.address
}

func (b *ledgerBallot) Vote(_ context.Context, proposal int, amount *big.Int) (contract.Tx, error) {
	return b.ledger.submit("vote", b.signer, func() {
		b.ledger.counts[proposal] = new(big.Int).Add(b.ledger.counts[proposal], amount)
	})
}

func (b *ledgerBallot) Proposal(_ context.Context, index int) (contract.Proposal, error) {
	b.ledger.call()
	return contract.Proposal{
		Index:     index,
		Name:      b.ledger.proposals[index],
		VoteCount: b.ledger.counts[index],
	}, nil
}

package contract

import (
	"context"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"boscoin.io/tokenvote/lib/errors"
	"boscoin.io/tokenvote/lib/identity"
)

type Token struct {
	*Handle
}

func NewToken(h *Handle) *Token {
	return &Token{Handle: h}
}

func (t *Token) Connect(signer *identity.Identity) *Token {
	return &Token{Handle: t.Handle.Connect(signer)}
}

func (t *Token) Mint(ctx context.Context, to ethcommon.Address, amount *big.Int) (Tx, error) {
	return t.transact(ctx, "mint", to, amount)
}

func (t *Token) Delegate(ctx context.Context, delegatee ethcommon.Address) (Tx, error) {
	return t.transact(ctx, "delegate", delegatee)
}

func (t *Token) GetVotes(ctx context.Context, account ethcommon.Address) (*big.Int, error) {
	return t.callBig(ctx, nil, "getVotes", account)
}

func (t *Token) GetPastVotes(ctx context.Context, account ethcommon.Address, block uint64) (*big.Int, error) {
	return t.callBig(ctx, nil, "getPastVotes", account, new(big.Int).SetUint64(block))
}

func (t *Token) BalanceOf(ctx context.Context, account ethcommon.Address) (*big.Int, error) {
	return t.callBig(ctx, nil, "balanceOf", account)
}

func (t *Token) transact(ctx context.Context, method string, args ...interface{}) (Tx, error) {
	p, err := t.Transact(ctx, method, args...)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (t *Token) callBig(ctx context.Context, block *big.Int, method string, args ...interface{}) (*big.Int, error) {
	out, err := t.CallAt(ctx, block, method, args...)
	if err != nil {
		return nil, err
	}

	return unpackBig(method, out)
}

func unpackBig(method string, out []interface{}) (*big.Int, error) {
	if len(out) != 1 {
		return nil, errors.UnexpectedCallResult.Clone().
			SetData("method", method).
			SetData("outputs", len(out))
	}

	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.UnexpectedCallResult.Clone().SetData("method", method)
	}

	return v, nil
}

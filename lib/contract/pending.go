package contract

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"boscoin.io/tokenvote/lib/errors"
)

// Tx is a submitted transaction which can be waited on.
type Tx interface {
	Hash() ethcommon.Hash
	Wait(context.Context) (*types.Receipt, error)
}

type Pending struct {
	tx      *types.Transaction
	backend bind.DeployBackend
}

func (p *Pending) Hash() ethcommon.Hash {
	return p.tx.Hash()
}

func (p *Pending) Transaction() *types.Transaction {
	return p.tx
}

// Wait blocks until the transaction is included. A receipt with failed
// status gives errors.TransactionReverted.
func (p *Pending) Wait(ctx context.Context) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, p.backend, p.tx)
	if err != nil {
		return nil, err
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, errors.TransactionReverted.Clone().
			SetData("tx", p.tx.Hash().Hex()).
			SetData("block", receipt.BlockNumber.String())
	}

	return receipt, nil
}

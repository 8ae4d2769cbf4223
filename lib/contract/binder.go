package contract

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"boscoin.io/tokenvote/lib/errors"
	"boscoin.io/tokenvote/lib/identity"
)

// Backend is what the binder needs from a network connection.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(context.Context) (*big.Int, error)
}

type Binder struct {
	backend Backend
	chainID *big.Int
}

func NewBinder(backend Backend) *Binder {
	return &Binder{backend: backend}
}

func (b *Binder) Backend() Backend {
	return b.backend
}

func (b *Binder) ChainID(ctx context.Context) (*big.Int, error) {
	if b.chainID != nil {
		return b.chainID, nil
	}

	chainID, err := b.backend.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	b.chainID = chainID

	return chainID, nil
}

// Deploy submits the creation transaction of desc signed by signer and
// returns once it is included and the code is in place.
func (b *Binder) Deploy(ctx context.Context, desc *Descriptor, signer *identity.Identity, args ...interface{}) (*Handle, *types.Receipt, error) {
	if !desc.CanDeploy() {
		return nil, nil, errors.BytecodeNotFound.Clone().SetData("name", desc.Name)
	}

	opts, err := b.transactOpts(ctx, signer)
	if err != nil {
		return nil, nil, err
	}

	address, tx, bound, err := bind.DeployContract(opts, desc.ABI, desc.Bytecode, b.backend, args...)
	if err != nil {
		return nil, nil, err
	}

	log.Debug("deployment submitted", "name", desc.Name, "address", address, "tx", tx.Hash())

	pending := &Pending{tx: tx, backend: b.backend}
	receipt, err := pending.Wait(ctx)
	if err != nil {
		return nil, nil, err
	}

	h := &Handle{
		binder:  b,
		desc:    desc,
		address: address,
		signer:  signer,
		bound:   bound,
	}
	if err := h.Verify(ctx); err != nil {
		return nil, nil, err
	}

	log.Debug("deployed", "name", desc.Name, "address", address, "block", receipt.BlockNumber)

	return h, receipt, nil
}

// Attach binds desc to an existing address without any network round trip.
func (b *Binder) Attach(desc *Descriptor, address ethcommon.Address, signer *identity.Identity) *Handle {
	return &Handle{
		binder:  b,
		desc:    desc,
		address: address,
		signer:  signer,
		bound:   bind.NewBoundContract(address, desc.ABI, b.backend, b.backend, b.backend),
	}
}

func (b *Binder) transactOpts(ctx context.Context, signer *identity.Identity) (*bind.TransactOpts, error) {
	chainID, err := b.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	opts, err := signer.Transactor(chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx

	return opts, nil
}

type Handle struct {
	binder  *Binder
	desc    *Descriptor
	address ethcommon.Address
	signer  *identity.Identity
	bound   *bind.BoundContract
}

func (h *Handle) Address() ethcommon.Address {
	return h.address
}

func (h *Handle) Name() string {
	return h.desc.Name
}

func (h *Handle) Signer() *identity.Identity {
	return h.signer
}

// Connect returns a handle on the same contract which signs with signer.
func (h *Handle) Connect(signer *identity.Identity) *Handle {
	n := *h
	n.signer = signer
	return &n
}

// Verify checks that there is contract code at the handle address.
func (h *Handle) Verify(ctx context.Context) error {
	code, err := h.binder.backend.CodeAt(ctx, h.address, nil)
	if err != nil {
		return err
	}
	if len(code) < 1 {
		return errors.ContractCodeNotFound.Clone().
			SetData("name", h.desc.Name).
			SetData("address", h.address.Hex())
	}

	return nil
}

func (h *Handle) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	return h.CallAt(ctx, nil, method, args...)
}

// CallAt runs a read only call against the state at block; nil is the
// latest block.
func (h *Handle) CallAt(ctx context.Context, block *big.Int, method string, args ...interface{}) ([]interface{}, error) {
	opts := &bind.CallOpts{Context: ctx, BlockNumber: block}
	if h.signer != nil {
		opts.From = h.signer.Address()
	}

	var out []interface{}
	if err := h.bound.Call(opts, &out, method, args...); err != nil {
		return nil, err
	}

	return out, nil
}

func (h *Handle) Transact(ctx context.Context, method string, args ...interface{}) (*Pending, error) {
	if h.signer == nil {
		return nil, errors.SigningKeyNotConfigured.Clone().SetData("method", method)
	}

	opts, err := h.binder.transactOpts(ctx, h.signer)
	if err != nil {
		return nil, err
	}

	tx, err := h.bound.Transact(opts, method, args...)
	if err != nil {
		return nil, err
	}

	log.Debug(
		"transaction submitted",
		"contract", h.desc.Name,
		"method", method,
		"signer", h.signer.Address(),
		"tx", tx.Hash(),
	)

	return &Pending{tx: tx, backend: h.binder.backend}, nil
}

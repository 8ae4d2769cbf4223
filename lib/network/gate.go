package network

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"boscoin.io/tokenvote/lib/common"
	"boscoin.io/tokenvote/lib/errors"
)

// DefaultMinimumBalance is 0.01 ether.
var DefaultMinimumBalance = common.MustParseEther("0.01")

// Backend is what the gate and the contract binder need from a node.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend

	BalanceAt(ctx context.Context, account ethcommon.Address, blockNumber *big.Int) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

type Options struct {
	Timeout     time.Duration
	IdleTimeout time.Duration
	KeepAlive   bool
	Insecure    bool
}

func DefaultOptions() Options {
	return Options{
		Timeout:     30 * time.Second,
		IdleTimeout: 30 * time.Second,
		KeepAlive:   true,
	}
}

// Gate is the connection to one network. Every failure is returned to the
// caller as it is; nothing is retried.
type Gate struct {
	name    string
	backend Backend
	closer  func()
}

func New(name string, backend Backend) *Gate {
	return &Gate{name: name, backend: backend, closer: func() {}}
}

func Dial(ctx context.Context, selector string, options Options) (*Gate, error) {
	name, endpoint, err := ResolveEndpoint(selector)
	if err != nil {
		return nil, err
	}

	var rpcOptions []rpc.ClientOption
	if isHTTP(endpoint) {
		httpClient, err := NewHTTP2Client(options.Timeout, options.IdleTimeout, options.KeepAlive, options.Insecure)
		if err != nil {
			return nil, err
		}
		rpcOptions = append(rpcOptions, rpc.WithHTTPClient(httpClient))
	}

	c, err := rpc.DialOptions(ctx, endpoint, rpcOptions...)
	if err != nil {
		return nil, err
	}

	log.Debug("dialed", "network", name, "endpoint", endpoint)

	client := ethclient.NewClient(c)

	return &Gate{name: name, backend: client, closer: client.Close}, nil
}

func (g *Gate) Name() string {
	return g.name
}

func (g *Gate) Backend() Backend {
	return g.backend
}

func (g *Gate) Close() {
	g.closer()
}

func (g *Gate) ChainID(ctx context.Context) (*big.Int, error) {
	return g.backend.ChainID(ctx)
}

// Balance is the latest balance of `address` in wei.
func (g *Gate) Balance(ctx context.Context, address ethcommon.Address) (*big.Int, error) {
	return g.backend.BalanceAt(ctx, address, nil)
}

func (g *Gate) LatestBlockHeight(ctx context.Context) (uint64, error) {
	header, err := g.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, err
	}

	return header.Number.Uint64(), nil
}

// CheckFunds returns the balance of `address`, and `errors.InsufficientFunds`
// when it is below `minimum`.
func (g *Gate) CheckFunds(ctx context.Context, address ethcommon.Address, minimum *big.Int) (*big.Int, error) {
	balance, err := g.Balance(ctx, address)
	if err != nil {
		return nil, err
	}

	if minimum == nil {
		minimum = DefaultMinimumBalance
	}

	if balance.Cmp(minimum) < 0 {
		log.Error(
			"balance is below the minimum",
			"address", address.Hex(),
			"balance", common.FormatEther(balance),
			"minimum", common.FormatEther(minimum),
		)

		return balance, errors.InsufficientFunds.Clone().
			SetData("address", address.Hex()).
			SetData("balance", common.FormatEther(balance)).
			SetData("minimum", common.FormatEther(minimum))
	}

	return balance, nil
}

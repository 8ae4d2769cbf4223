package test

import (
	"crypto/ecdsa"
	"math/big"
	"testing"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
)

// private keys of the well known development accounts #0 and #1
const (
	PrivateKey0 = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	PrivateKey1 = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
)

// DeployStubBytecode deploys a contract whose runtime code is a single STOP:
// code exists at the address but every call returns nothing.
const DeployStubBytecode = "0x6001600c60003960016000f300"

// DeployRevertBytecode deploys a contract whose runtime code reverts every
// call.
const DeployRevertBytecode = "0x6005600c60003960056000f360006000fd"

func Ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(params.Ether))
}

func MustKey(hex string) *ecdsa.PrivateKey {
	key, err := crypto.HexToECDSA(hex)
	if err != nil {
		panic(err)
	}

	return key
}

// NewSimulatedBackend returns an in-process chain where each address in
// `funded` holds 100 ether. It is closed when the test finishes.
func NewSimulatedBackend(t *testing.T, funded ...ethcommon.Address) *simulated.Backend {
	alloc := types.GenesisAlloc{}
	for _, address := range funded {
		alloc[address] = types.Account{Balance: Ether(100)}
	}

	backend := simulated.NewBackend(alloc)
	t.Cleanup(func() {
		backend.Close()
	})

	return backend
}

// AutoCommit mines a block every 50ms until the test finishes, so code
// waiting for receipts makes progress.
func AutoCommit(t *testing.T, backend *simulated.Backend) {
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				backend.Commit()
			}
		}
	}()

	t.Cleanup(func() {
		close(done)
		<-stopped
	})
}

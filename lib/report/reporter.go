package report

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"boscoin.io/tokenvote/lib/contract"
)

// kinds of voting power read back
const (
	PowerBeforeMint = "before-mint"
	PowerPast       = "past"
	PowerCurrent    = "current"
)

// Reporter receives the results of a run as they are produced.
type Reporter interface {
	Identity(address ethcommon.Address)
	Connected(network string, height uint64)
	Balance(wei *big.Int)
	Proposals(names []string)
	Phase(phase string)
	// Contract reports a bound contract; receipt is nil when it was attached.
	Contract(name string, address ethcommon.Address, receipt *types.Receipt)
	Transaction(phase string, signer ethcommon.Address, receipt *types.Receipt)
	Tally(proposal contract.Proposal)
	VotePower(kind string, account ethcommon.Address, block uint64, votes *big.Int)
	Flush() error
}

type NopReporter struct{}

func (NopReporter) Identity(ethcommon.Address)                            {}
func (NopReporter) Connected(string, uint64)                              {}
func (NopReporter) Balance(*big.Int)                                      {}
func (NopReporter) Proposals([]string)                                    {}
func (NopReporter) Phase(string)                                          {}
func (NopReporter) Contract(string, ethcommon.Address, *types.Receipt)    {}
func (NopReporter) Transaction(string, ethcommon.Address, *types.Receipt) {}
func (NopReporter) Tally(contract.Proposal)                               {}
func (NopReporter) VotePower(string, ethcommon.Address, uint64, *big.Int) {}
func (NopReporter) Flush() error                                          { return nil }

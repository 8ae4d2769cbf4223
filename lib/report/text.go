package report

import (
	"fmt"
	"io"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"boscoin.io/tokenvote/lib/common"
	"boscoin.io/tokenvote/lib/contract"
)

var phaseTitles = map[string]string{
	"bind":     "Binding contracts...",
	"mint":     "Minting...",
	"delegate": "Delegation...",
	"vote":     "Voting...",
	"tally":    "Proposals...",
	"power":    "Votes...",
}

// TextReporter writes one human readable line per result.
type TextReporter struct {
	w io.Writer
}

func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

func (r *TextReporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *TextReporter) Identity(address ethcommon.Address) {
	r.printf("Using address %s", address.Hex())
}

func (r *TextReporter) Connected(network string, height uint64) {
	r.printf("Connected to %s network at height %d", network, height)
}

func (r *TextReporter) Balance(wei *big.Int) {
	r.printf("Wallet balance %s", common.FormatEther(wei))
}

func (r *TextReporter) Proposals(names []string) {
	r.printf("Proposals: ")
	for i, name := range names {
		r.printf("Proposal N. %d: %s", i+1, name)
	}
}

func (r *TextReporter) Phase(phase string) {
	title, found := phaseTitles[phase]
	if !found {
		title = phase + "..."
	}
	r.printf(title)
}

func (r *TextReporter) Contract(name string, address ethcommon.Address, receipt *types.Receipt) {
	if receipt == nil {
		r.printf("%s attached at %s", name, address.Hex())
		return
	}

	r.printf("%s deployed at %s in block %s", name, address.Hex(), receipt.BlockNumber)
}

func (r *TextReporter) Transaction(phase string, signer ethcommon.Address, receipt *types.Receipt) {
	r.printf(
		"%s transaction %s from %s included in block %s, status %s, gas used %d",
		phase,
		receipt.TxHash.Hex(),
		signer.Hex(),
		receipt.BlockNumber,
		receiptStatus(receipt),
		receipt.GasUsed,
	)
}

func (r *TextReporter) Tally(proposal contract.Proposal) {
	r.printf("Proposal %d: %s, vote count %s", proposal.Index, proposal.Name, common.FormatEther(proposal.VoteCount))
}

func (r *TextReporter) VotePower(kind string, account ethcommon.Address, block uint64, votes *big.Int) {
	switch kind {
	case PowerBeforeMint:
		r.printf("Votes before minting of %s: %s", account.Hex(), common.FormatEther(votes))
	case PowerPast:
		r.printf("Past votes of %s at block %d: %s", account.Hex(), block, common.FormatEther(votes))
	default:
		r.printf("Votes of %s: %s", account.Hex(), common.FormatEther(votes))
	}
}

func (r *TextReporter) Flush() error {
	return nil
}

func receiptStatus(receipt *types.Receipt) string {
	if receipt.Status == types.ReceiptStatusSuccessful {
		return "success"
	}

	return "reverted"
}

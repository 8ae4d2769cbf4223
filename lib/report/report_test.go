package report

import (
	"bytes"
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"boscoin.io/tokenvote/lib/common"
	"boscoin.io/tokenvote/lib/contract"
)

var (
	testAddress = ethcommon.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	testBallot  = ethcommon.HexToAddress("0x0dAd88c6d36c5056216d7cc4f5e3B94465Ea5015")
)

func testReceipt(block int64, status uint64) *types.Receipt {
	return &types.Receipt{
		TxHash:      ethcommon.HexToHash("0x1ec4db774744b51bcd3591b8c3c1bce6b5d37cc907fd205434718dceb1b8cc0a"),
		BlockNumber: big.NewInt(block),
		Status:      status,
		GasUsed:     75993,
	}
}

func feed(r Reporter) {
	r.Identity(testAddress)
	r.Connected("ropsten", 12345)
	r.Balance(common.MustParseEther("1.5"))
	r.Proposals([]string{"Proposal 1", "Proposal 2"})
	r.Phase("bind")
	r.Contract(contract.BallotName, testBallot, nil)
	r.Phase("mint")
	r.Transaction("mint", testAddress, testReceipt(12346, types.ReceiptStatusSuccessful))
	r.Tally(contract.Proposal{Index: 0, Name: "Proposal 1", VoteCount: common.MustParseEther("10")})
	r.VotePower(PowerPast, testAddress, 0, big.NewInt(0))
	r.VotePower(PowerCurrent, testAddress, 0, common.MustParseEther("10"))
}

func TestTextReporter(t *testing.T) {
	var b bytes.Buffer
	r := NewTextReporter(&b)
	feed(r)
	require.NoError(t, r.Flush())

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Equal(t, "Using address 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", lines[0])
	require.Equal(t, "Connected to ropsten network at height 12345", lines[1])
	require.Equal(t, "Wallet balance 1.5", lines[2])
	require.Equal(t, "Proposals: ", lines[3])
	require.Equal(t, "Proposal N. 1: Proposal 1", lines[4])
	require.Equal(t, "Proposal N. 2: Proposal 2", lines[5])
	require.Equal(t, "Binding contracts...", lines[6])
	require.Equal(t, "CustomBallot attached at 0x0dAd88c6d36c5056216d7cc4f5e3B94465Ea5015", lines[7])
	require.Equal(t, "Minting...", lines[8])
	require.Contains(t, lines[9], "included in block 12346, status success, gas used 75993")
	require.Equal(t, "Proposal 0: Proposal 1, vote count 10.0", lines[10])
	require.Equal(t, "Past votes of 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266 at block 0: 0.0", lines[11])
	require.Equal(t, "Votes of 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266: 10.0", lines[12])
}

func TestEncodeReporterJSON(t *testing.T) {
	var b bytes.Buffer
	r := NewEncodeReporter(&b, DefaultEncodes["json"])
	feed(r)
	require.NoError(t, r.Flush())

	var summary Summary
	require.NoError(t, json.Unmarshal(b.Bytes(), &summary))
	require.Equal(t, r.Summary(), summary)

	require.Equal(t, "ropsten", summary.Network)
	require.Equal(t, uint64(12345), summary.Height)
	require.Equal(t, "1.5", summary.Balance)
	require.Equal(t, []string{"bind", "mint"}, summary.Phases)
	require.Equal(t, 1, len(summary.Contracts))
	require.Equal(t, uint64(0), summary.Contracts[0].Block)
	require.Equal(t, "success", summary.Transactions[0].Status)
	require.Equal(t, "10.0", summary.Tally[0].VoteCount)
	require.Equal(t, 2, len(summary.VotePower))
}

func TestEncodeReporterYAML(t *testing.T) {
	var b bytes.Buffer
	r := NewEncodeReporter(&b, DefaultEncodes["yaml"])
	r.Identity(testAddress)
	r.Contract(contract.TokenName, testAddress, testReceipt(7, types.ReceiptStatusFailed))
	r.Transaction("vote", testAddress, testReceipt(8, types.ReceiptStatusFailed))
	require.NoError(t, r.Flush())

	var summary Summary
	require.NoError(t, yaml.Unmarshal(b.Bytes(), &summary))
	require.Equal(t, uint64(7), summary.Contracts[0].Block)
	require.Equal(t, "reverted", summary.Transactions[0].Status)
}

package report

import (
	"encoding/json"
	"io"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"gopkg.in/yaml.v2"

	"boscoin.io/tokenvote/lib/common"
	"boscoin.io/tokenvote/lib/contract"
)

type Encode func(v interface{}, w io.Writer) error

var DefaultEncodes = map[string]Encode{
	"json": func(v interface{}, w io.Writer) error {
		return jsonEncode(v, w, false)
	},
	"prettyjson": func(v interface{}, w io.Writer) error {
		return jsonEncode(v, w, true)
	},
	"yaml": func(v interface{}, w io.Writer) error {
		return yaml.NewEncoder(w).Encode(v)
	},
}

func jsonEncode(v interface{}, w io.Writer, pretty bool) error {
	e := json.NewEncoder(w)
	if pretty {
		e.SetIndent("", "  ")
	}

	return e.Encode(v)
}

type ContractRecord struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
	Block   uint64 `json:"block,omitempty" yaml:"block,omitempty"`
	Tx      string `json:"tx,omitempty" yaml:"tx,omitempty"`
}

type TransactionRecord struct {
	Phase   string `json:"phase" yaml:"phase"`
	Signer  string `json:"signer" yaml:"signer"`
	Hash    string `json:"hash" yaml:"hash"`
	Block   uint64 `json:"block" yaml:"block"`
	Status  string `json:"status" yaml:"status"`
	GasUsed uint64 `json:"gas_used" yaml:"gas_used"`
}

type TallyRecord struct {
	Index     int    `json:"index" yaml:"index"`
	Name      string `json:"name" yaml:"name"`
	VoteCount string `json:"vote_count" yaml:"vote_count"`
}

type PowerRecord struct {
	Kind    string `json:"kind" yaml:"kind"`
	Account string `json:"account" yaml:"account"`
	Block   uint64 `json:"block,omitempty" yaml:"block,omitempty"`
	Votes   string `json:"votes" yaml:"votes"`
}

// Summary is everything an EncodeReporter collected during a run. Amounts
// are ether formatted strings.
type Summary struct {
	Address      string              `json:"address" yaml:"address"`
	Network      string              `json:"network" yaml:"network"`
	Height       uint64              `json:"height" yaml:"height"`
	Balance      string              `json:"balance,omitempty" yaml:"balance,omitempty"`
	Proposals    []string            `json:"proposals,omitempty" yaml:"proposals,omitempty"`
	Phases       []string            `json:"phases,omitempty" yaml:"phases,omitempty"`
	Contracts    []ContractRecord    `json:"contracts,omitempty" yaml:"contracts,omitempty"`
	Transactions []TransactionRecord `json:"transactions,omitempty" yaml:"transactions,omitempty"`
	Tally        []TallyRecord       `json:"tally,omitempty" yaml:"tally,omitempty"`
	VotePower    []PowerRecord       `json:"vote_power,omitempty" yaml:"vote_power,omitempty"`
}

// EncodeReporter collects the results and renders them once in Flush.
type EncodeReporter struct {
	w       io.Writer
	encode  Encode
	summary Summary
}

func NewEncodeReporter(w io.Writer, encode Encode) *EncodeReporter {
	return &EncodeReporter{w: w, encode: encode}
}

func (r *EncodeReporter) Summary() Summary {
	return r.summary
}

func (r *EncodeReporter) Identity(address ethcommon.Address) {
	r.summary.Address = address.Hex()
}

func (r *EncodeReporter) Connected(network string, height uint64) {
	r.summary.Network = network
	r.summary.Height = height
}

func (r *EncodeReporter) Balance(wei *big.Int) {
	r.summary.Balance = common.FormatEther(wei)
}

func (r *EncodeReporter) Proposals(names []string) {
	r.summary.Proposals = append([]string(nil), names...)
}

func (r *EncodeReporter) Phase(phase string) {
	r.summary.Phases = append(r.summary.Phases, phase)
}

func (r *EncodeReporter) Contract(name string, address ethcommon.Address, receipt *types.Receipt) {
	record := ContractRecord{Name: name, Address: address.Hex()}
	if receipt != nil {
		record.Block = receipt.BlockNumber.Uint64()
		record.Tx = receipt.TxHash.Hex()
	}

	r.summary.Contracts = append(r.summary.Contracts, record)
}

func (r *EncodeReporter) Transaction(phase string, signer ethcommon.Address, receipt *types.Receipt) {
	r.summary.Transactions = append(r.summary.Transactions, TransactionRecord{
		Phase:   phase,
		Signer:  signer.Hex(),
		Hash:    receipt.TxHash.Hex(),
		Block:   receipt.BlockNumber.Uint64(),
		Status:  receiptStatus(receipt),
		GasUsed: receipt.GasUsed,
	})
}

func (r *EncodeReporter) Tally(proposal contract.Proposal) {
	r.summary.Tally = append(r.summary.Tally, TallyRecord{
		Index:     proposal.Index,
		Name:      proposal.Name,
		VoteCount: common.FormatEther(proposal.VoteCount),
	})
}

func (r *EncodeReporter) VotePower(kind string, account ethcommon.Address, block uint64, votes *big.Int) {
	record := PowerRecord{Kind: kind, Account: account.Hex(), Votes: common.FormatEther(votes)}
	if kind == PowerPast {
		record.Block = block
	}

	r.summary.VotePower = append(r.summary.VotePower, record)
}

func (r *EncodeReporter) Flush() error {
	return r.encode(r.summary, r.w)
}

package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"boscoin.io/tokenvote/lib/common"
	"boscoin.io/tokenvote/lib/errors"
)

const (
	deploymentPrefix  = "dp/"
	transactionPrefix = "tx/"
)

const (
	TxStatusSuccess  = "success"
	TxStatusReverted = "reverted"
)

type Deployment struct {
	RunID   string `json:"run_id" yaml:"run_id"`
	Network string `json:"network" yaml:"network"`
	ChainID string `json:"chain_id" yaml:"chain_id"`
	Token   string `json:"token" yaml:"token"`
	Ballot  string `json:"ballot,omitempty" yaml:"ballot,omitempty"`
	Block   uint64 `json:"block" yaml:"block"`
	Created string `json:"created" yaml:"created"`
}

type TxRecord struct {
	RunID   string `json:"run_id" yaml:"run_id"`
	Network string `json:"network" yaml:"network"`
	Phase   string `json:"phase" yaml:"phase"`
	Signer  string `json:"signer" yaml:"signer"`
	Hash    string `json:"hash" yaml:"hash"`
	Block   uint64 `json:"block" yaml:"block"`
	Status  string `json:"status" yaml:"status"`
	Created string `json:"created" yaml:"created"`
}

// Journal keeps the deployments and confirmed transactions of one run.
type Journal struct {
	sync.Mutex

	st      *LevelDBBackend
	runID   string
	network string
	last    int64
}

func NewJournal(st *LevelDBBackend, network string) *Journal {
	return &Journal{
		st:      st,
		runID:   uuid.New().String(),
		network: network,
	}
}

func (j *Journal) RunID() string {
	return j.runID
}

func (j *Journal) Network() string {
	return j.network
}

// nextStamp is strictly increasing inside a run so keys keep their order
// even when the clock does not move.
func (j *Journal) nextStamp() int64 {
	j.Lock()
	defer j.Unlock()

	now := time.Now().UnixNano()
	if now <= j.last {
		now = j.last + 1
	}
	j.last = now

	return now
}

func deploymentKey(network string, stamp int64, runID string) string {
	return fmt.Sprintf("%s%s/%020d/%s", deploymentPrefix, network, stamp, runID)
}

func transactionKey(runID string, stamp int64, hash string) string {
	return fmt.Sprintf("%s%s/%020d/%s", transactionPrefix, runID, stamp, hash)
}

func (j *Journal) RecordDeployment(d Deployment) (Deployment, error) {
	d.RunID = j.runID
	d.Network = j.network
	if len(d.Created) < 1 {
		d.Created = common.NowISO8601()
	}

	if err := j.st.New(deploymentKey(j.network, j.nextStamp(), j.runID), d); err != nil {
		return d, err
	}

	log.Debug("deployment recorded", "run", j.runID, "token", d.Token, "ballot", d.Ballot)

	return d, nil
}

func (j *Journal) RecordTransaction(r TxRecord) (TxRecord, error) {
	r.RunID = j.runID
	r.Network = j.network
	if len(r.Created) < 1 {
		r.Created = common.NowISO8601()
	}

	if err := j.st.New(transactionKey(j.runID, j.nextStamp(), r.Hash), r); err != nil {
		return r, err
	}

	log.Debug("transaction recorded", "run", j.runID, "phase", r.Phase, "hash", r.Hash)

	return r, nil
}

func (j *Journal) Transactions() ([]TxRecord, error) {
	return Transactions(j.st, j.runID)
}

// LatestDeployment is the last deployment recorded on network.
func LatestDeployment(st *LevelDBBackend, network string) (Deployment, error) {
	ds, err := Deployments(st, network, 1)
	if err != nil {
		return Deployment{}, err
	}
	if len(ds) < 1 {
		return Deployment{}, errors.StorageRecordDoesNotExist.Clone().SetData("network", network)
	}

	return ds[0], nil
}

// Deployments lists the deployments of network, newest first. An empty
// network lists every network.
func Deployments(st *LevelDBBackend, network string, limit uint64) ([]Deployment, error) {
	if len(network) < 1 {
		return allDeployments(st, limit)
	}

	var ds []Deployment
	err := st.Walk(deploymentPrefix+network+"/", NewWalkOption(limit, true), func(item IterItem) (bool, error) {
		var d Deployment
		if err := common.DecodeJSONValue(item.Value, &d); err != nil {
			return false, setLevelDBCoreError(err)
		}
		ds = append(ds, d)
		return true, nil
	})

	return ds, err
}

// allDeployments orders by creation time, since keys group by network
// first.
func allDeployments(st *LevelDBBackend, limit uint64) ([]Deployment, error) {
	var ds []Deployment
	var created []time.Time
	err := st.Walk(deploymentPrefix, nil, func(item IterItem) (bool, error) {
		var d Deployment
		if err := common.DecodeJSONValue(item.Value, &d); err != nil {
			return false, setLevelDBCoreError(err)
		}
		t, err := common.ParseISO8601(d.Created)
		if err != nil {
			return false, setLevelDBCoreError(err)
		}
		ds = append(ds, d)
		created = append(created, t)
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	index := make([]int, len(ds))
	for i := range index {
		index[i] = i
	}
	sort.SliceStable(index, func(i, j int) bool {
		return created[index[i]].After(created[index[j]])
	})

	sorted := make([]Deployment, 0, len(ds))
	for _, i := range index {
		if limit > 0 && uint64(len(sorted)) >= limit {
			break
		}
		sorted = append(sorted, ds[i])
	}

	return sorted, nil
}

// Transactions lists the transactions of a run in the order they were
// confirmed.
func Transactions(st *LevelDBBackend, runID string) ([]TxRecord, error) {
	var rs []TxRecord
	err := st.Walk(transactionPrefix+runID+"/", nil, func(item IterItem) (bool, error) {
		var r TxRecord
		if err := common.DecodeJSONValue(item.Value, &r); err != nil {
			return false, setLevelDBCoreError(err)
		}
		rs = append(rs, r)
		return true, nil
	})

	return rs, err
}

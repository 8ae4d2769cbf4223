package sequencer

import (
	"bytes"
	"context"
	"math/big"
	"strings"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"boscoin.io/tokenvote/lib/common"
	"boscoin.io/tokenvote/lib/common/test"
	"boscoin.io/tokenvote/lib/errors"
	"boscoin.io/tokenvote/lib/identity"
	"boscoin.io/tokenvote/lib/report"
	"boscoin.io/tokenvote/lib/storage"
)

const testMnemonic = "test test test test test test test test test test test junk"

func init() {
	SetLogging(test.LogLevel(), test.LogHandler())
}

func testIdentities(t *testing.T) []*identity.Identity {
	ids, err := identity.Derive(testMnemonic, 2)
	require.NoError(t, err)
	return ids
}

func testPlan(ids []*identity.Identity) *Plan {
	plan := NewPlan()
	for _, id := range ids {
		plan.Participants = append(plan.Participants, Participant{
			Identity: id,
			Proposal: 0,
			Power:    new(big.Int).Set(DefaultVotePower),
		})
	}
	return plan
}

func fundedLedger(ids []*identity.Identity) *ledger {
	l := newLedger()
	l.ether[ids[0].Address()] = common.MustParseEther("1")
	return l
}

func TestPhasesOrdered(t *testing.T) {
	phases := NewPhases(PhasePower, PhaseTally, PhaseMint, PhaseDone)
	require.Equal(t, []Phase{PhaseBind, PhaseMint, PhaseTally, PhasePower}, phases.Ordered())
	require.Equal(t, "bind,mint,tally,power", phases.String())

	require.Equal(t, []Phase{PhaseBind}, DeployPhases.Ordered())
	require.Equal(t, 6, len(OperatePhases))
	require.True(t, PhaseVote.Writes())
	require.False(t, PhaseTally.Writes())
}

func TestPlanValidate(t *testing.T) {
	ids := testIdentities(t)

	{ // too few proposals
		plan := testPlan(ids)
		plan.Proposals = []string{"only one"}
		require.True(t, errors.NotEnoughProposals.Is(plan.Validate(OperatePhases)))

		// also when the ballot is not used
		plan.Mode = BindAttach
		plan.Token = ethcommon.HexToAddress("0x01")
		require.True(t, errors.NotEnoughProposals.Is(plan.Validate(MintPhases)))
	}

	{ // proposal out of range
		plan := testPlan(ids)
		plan.Participants[1].Proposal = 3
		require.True(t, errors.ProposalIndexOutOfRange.Is(plan.Validate(OperatePhases)))

		// not checked when nobody votes
		require.NoError(t, plan.Validate(MintPhases))
	}

	{ // attach without addresses
		plan := testPlan(ids)
		plan.Mode = BindAttach
		plan.Token = ethcommon.HexToAddress("0x01")
		require.NoError(t, plan.Validate(MintPhases))
		require.True(t, errors.ContractAddressNotGiven.Is(plan.Validate(ProposalsPhases)))
	}

	{ // no participants
		plan := testPlan(nil)
		require.True(t, errors.NoParticipants.Is(plan.Validate(MintPhases)))
		require.NoError(t, plan.Validate(DeployPhases))
	}

	{ // negative amounts
		plan := testPlan(ids)
		plan.MintAmount = big.NewInt(-1)
		require.True(t, errors.InvalidAmount.Is(plan.Validate(MintPhases)))

		plan = testPlan(ids)
		plan.Participants[0].Power = nil
		require.True(t, errors.InvalidAmount.Is(plan.Validate(OperatePhases)))
	}

	{ // unknown mode
		plan := testPlan(ids)
		plan.Mode = "copy"
		require.True(t, errors.InvalidPlan.Is(plan.Validate(DeployPhases)))
	}
}

func TestRunTooFewProposalsMakesNoNetworkCall(t *testing.T) {
	ids := testIdentities(t)
	l := fundedLedger(ids)

	plan := testPlan(ids)
	plan.Proposals = []string{"only one"}

	result, err := NewSequencer(l, l, ids[0], plan, OperatePhases).Run(context.Background())
	require.Nil(t, result)
	require.True(t, errors.NotEnoughProposals.Is(err))
	require.Equal(t, 0, l.calls)
}

func TestRunAttachMintTooFewProposalsMakesNoNetworkCall(t *testing.T) {
	ids := testIdentities(t)
	l := fundedLedger(ids)

	plan := testPlan(ids)
	plan.Mode = BindAttach
	plan.Token = ethcommon.HexToAddress("0x01")
	plan.Proposals = []string{"only one"}

	result, err := NewSequencer(l, l, ids[0], plan, MintPhases).Run(context.Background())
	require.Nil(t, result)
	require.True(t, errors.NotEnoughProposals.Is(err))
	require.Equal(t, 0, l.calls)
}

func TestRunProposalNameTooLong(t *testing.T) {
	ids := testIdentities(t)
	l := fundedLedger(ids)

	plan := testPlan(ids)
	plan.Proposals = []string{"Proposal 1", strings.Repeat("x", 33)}

	_, err := NewSequencer(l, l, ids[0], plan, DeployPhases).Run(context.Background())
	require.True(t, errors.ProposalNameTooLong.Is(err))
	require.Equal(t, 0, l.calls)
}

func TestRunInsufficientFunds(t *testing.T) {
	ids := testIdentities(t)
	l := newLedger()
	l.ether[ids[0].Address()] = common.MustParseEther("0.001")

	var b bytes.Buffer
	result, err := NewSequencer(l, l, ids[0], testPlan(ids), OperatePhases).
		SetReporter(report.NewTextReporter(&b)).
		Run(context.Background())
	require.True(t, errors.InsufficientFunds.Is(err))
	require.Empty(t, l.submitted)
	require.Empty(t, result.Completed)
	require.Equal(t, "0.001", common.FormatEther(result.Balance))
	require.Contains(t, b.String(), "Wallet balance 0.001")
}

func TestRunOperate(t *testing.T) {
	ids := testIdentities(t)
	l := fundedLedger(ids)

	st, err := storage.NewTestMemoryLevelDBBackend()
	require.NoError(t, err)
	defer st.Close()
	journal := storage.NewJournal(st, l.Name())

	var b bytes.Buffer
	result, err := NewSequencer(l, l, ids[0], testPlan(ids), OperatePhases).
		SetJournal(journal).
		SetReporter(report.NewTextReporter(&b)).
		Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, []Phase{PhaseBind, PhaseMint, PhaseDelegate, PhaseVote, PhaseTally, PhasePower, PhaseDone}, result.Completed)
	require.Equal(t, l.token, result.Token)
	require.Equal(t, l.ballot, result.Ballot)

	// minted by the deployer, delegated and voted by each participant
	require.Equal(t, []ethcommon.Address{ids[0].Address(), ids[0].Address()}, l.signers("mint"))
	require.Equal(t, []ethcommon.Address{ids[0].Address(), ids[1].Address()}, l.signers("delegate"))
	require.Equal(t, []ethcommon.Address{ids[0].Address(), ids[1].Address()}, l.signers("vote"))

	require.Equal(t, 3, len(result.Tally))
	require.Equal(t, "Proposal 1", result.Tally[0].Name)
	require.Equal(t, common.MustParseEther("10"), result.Tally[0].VoteCount)
	require.Equal(t, 0, result.Tally[1].VoteCount.Sign())
	require.Equal(t, 0, result.Tally[2].VoteCount.Sign())

	require.Equal(t, 0, result.PreMintVotes.Sign())
	require.Equal(t, 0, result.PastVotes.Sign())
	require.Equal(t, common.MustParseEther("10"), result.Votes)

	require.Equal(t, 6, len(result.Receipts))

	recorded, err := journal.Transactions()
	require.NoError(t, err)
	require.Equal(t, 6, len(recorded))
	require.Equal(t, "mint", recorded[0].Phase)
	require.Equal(t, "vote", recorded[5].Phase)
	require.Equal(t, ids[1].Address().Hex(), recorded[5].Signer)

	deployment, err := storage.LatestDeployment(st, l.Name())
	require.NoError(t, err)
	require.Equal(t, l.token.Hex(), deployment.Token)
	require.Equal(t, l.ballot.Hex(), deployment.Ballot)
	require.Equal(t, "1337", deployment.ChainID)

	out := b.String()
	require.Contains(t, out, "Connected to ledger network at height 100")
	require.Contains(t, out, "Proposal N. 3: Proposal 3")
	require.Contains(t, out, "Proposal 0: Proposal 1, vote count 10.0")
}

func TestRunMintTwiceDoublesBalance(t *testing.T) {
	ids := testIdentities(t)
	l := fundedLedger(ids)

	result, err := NewSequencer(l, l, ids[0], testPlan(ids), DeployPhases).Run(context.Background())
	require.NoError(t, err)

	plan := testPlan(ids)
	plan.Mode = BindAttach
	plan.Token = result.Token
	plan.Ballot = result.Ballot

	for i := 0; i < 2; i++ {
		_, err := NewSequencer(l, l, ids[0], plan, MintPhases).Run(context.Background())
		require.NoError(t, err)
	}

	require.Equal(t, common.MustParseEther("20"), l.balances[ids[0].Address()])
	require.Equal(t, common.MustParseEther("20"), l.balances[ids[1].Address()])
}

func TestRunFailureStopsLaterPhases(t *testing.T) {
	ids := testIdentities(t)
	l := fundedLedger(ids)
	l.revertOn = "delegate"

	st, err := storage.NewTestMemoryLevelDBBackend()
	require.NoError(t, err)
	defer st.Close()
	journal := storage.NewJournal(st, l.Name())

	result, err := NewSequencer(l, l, ids[0], testPlan(ids), OperatePhases).
		SetJournal(journal).
		Run(context.Background())
	require.True(t, errors.TransactionReverted.Is(err))
	require.Equal(t, []Phase{PhaseBind, PhaseMint}, result.Completed)
	require.Empty(t, l.signers("vote"))
	require.Empty(t, result.Tally)

	// the receipts confirmed so far are kept, the reverted one included
	require.Equal(t, 3, len(result.Receipts))
	recorded, err := journal.Transactions()
	require.NoError(t, err)
	require.Equal(t, 3, len(recorded))
	require.Equal(t, storage.TxStatusReverted, recorded[2].Status)
}

func TestRunSubmitFailure(t *testing.T) {
	ids := testIdentities(t)
	l := fundedLedger(ids)
	l.failOn = "vote"

	result, err := NewSequencer(l, l, ids[0], testPlan(ids), OperatePhases).Run(context.Background())
	require.True(t, errors.UnexpectedCallResult.Is(err))
	require.Equal(t, []Phase{PhaseBind, PhaseMint, PhaseDelegate}, result.Completed)
	require.Equal(t, 4, len(result.Receipts))
}

type failingJournal struct {
	deployments []storage.Deployment
}

func (j *failingJournal) RecordDeployment(d storage.Deployment) (storage.Deployment, error) {
	j.deployments = append(j.deployments, d)
	return d, errors.StorageCoreError
}

func (j *failingJournal) RecordTransaction(r storage.TxRecord) (storage.TxRecord, error) {
	return r, nil
}

func TestRunBallotDeployFailureRecordsToken(t *testing.T) {
	ids := testIdentities(t)

	{ // the token deployment is kept
		l := fundedLedger(ids)
		l.failOn = "deploy-ballot"

		st, err := storage.NewTestMemoryLevelDBBackend()
		require.NoError(t, err)
		defer st.Close()

		result, err := NewSequencer(l, l, ids[0], testPlan(ids), DeployPhases).
			SetJournal(storage.NewJournal(st, l.Name())).
			Run(context.Background())
		require.True(t, errors.UnexpectedCallResult.Is(err))
		require.Empty(t, result.Completed)

		latest, err := storage.LatestDeployment(st, l.Name())
		require.NoError(t, err)
		require.Equal(t, result.Token.Hex(), latest.Token)
		require.Empty(t, latest.Ballot)
	}

	{ // a journal failure does not hide the deploy failure
		l := fundedLedger(ids)
		l.failOn = "deploy-ballot"

		j := &failingJournal{}
		_, err := NewSequencer(l, l, ids[0], testPlan(ids), DeployPhases).
			SetJournal(j).
			Run(context.Background())
		require.True(t, errors.UnexpectedCallResult.Is(err))
		require.Equal(t, 1, len(j.deployments))
	}
}

func TestRunProposalsReadOnly(t *testing.T) {
	ids := testIdentities(t)
	l := fundedLedger(ids)

	deployed, err := NewSequencer(l, l, ids[0], testPlan(ids), DeployPhases).Run(context.Background())
	require.NoError(t, err)

	// a read only run does not need the minimum balance
	l.ether[ids[0].Address()] = big.NewInt(0)

	plan := NewPlan()
	plan.Mode = BindAttach
	plan.Ballot = deployed.Ballot

	submitted := len(l.submitted)
	result, err := NewSequencer(l, l, ids[0], plan, ProposalsPhases).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, submitted, len(l.submitted))
	require.Equal(t, 3, len(result.Tally))
	require.Equal(t, "Proposal 2", result.Tally[1].Name)
}

func TestRunAttachVerifyCode(t *testing.T) {
	ids := testIdentities(t)
	l := fundedLedger(ids)

	plan := testPlan(ids)
	plan.Mode = BindAttach
	plan.Token = ethcommon.HexToAddress("0x000000000000000000000000000000000000dead")
	plan.VerifyCode = true
	l.missing[plan.Token] = true

	result, err := NewSequencer(l, l, ids[0], plan, MintPhases).Run(context.Background())
	require.True(t, errors.ContractCodeNotFound.Is(err))
	require.Empty(t, result.Completed)
	require.Empty(t, l.submitted)

	// without verification attaching makes no round trip
	plan.VerifyCode = false
	calls := l.calls
	seq := NewSequencer(l, l, ids[0], plan, NewPhases())
	_, err = seq.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, calls+2, l.calls)
}

package keeper_test

import (
	"bytes"
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	"github.com/stretchr/testify/require"

	keepertest "github.com/taskchain-labs/taskchain/testutil/keeper"
	"github.com/taskchain-labs/taskchain/x/marketplace/keeper"
	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

func testHash(b byte) []byte {
	return bytes.Repeat([]byte{b}, types.ContentHashLength)
}

func testAddr() sdk.AccAddress {
	return sdk.AccAddress(secp256k1.GenPrivKey().PubKey().Address())
}

// marketFixture bundles the keeper harness with a funded requester and worker
// so workflow tests can start from a claimed task.
type marketFixture struct {
	k         *keeper.Keeper
	bk        bankkeeper.BaseKeeper
	ctx       sdk.Context
	requester sdk.AccAddress
	worker    sdk.AccAddress
}

func newMarketFixture(t testing.TB) *marketFixture {
	t.Helper()
	k, bk, ctx := keepertest.MarketplaceKeeperWithBank(t)

	f := &marketFixture{
		k:         k,
		bk:        bk,
		ctx:       ctx,
		requester: testAddr(),
		worker:    testAddr(),
	}
	keepertest.FundAccount(t, ctx, bk, f.requester, math.NewInt(2_000_000_000))
	return f
}

// createTask opens a task funded from the fixture requester with a 30 day
// deadline.
func (f *marketFixture) createTask(t testing.TB, deposit math.Int) uint64 {
	t.Helper()
	taskID, err := f.k.CreateTask(
		f.ctx,
		f.requester.String(),
		testHash(0x01),
		f.ctx.BlockTime().Add(30*24*time.Hour),
		0, 0, 0,
		deposit,
	)
	require.NoError(t, err)
	return taskID
}

// claimedTask opens a task and claims it with the fixture worker.
func (f *marketFixture) claimedTask(t testing.TB, deposit math.Int) uint64 {
	t.Helper()
	taskID := f.createTask(t, deposit)
	require.NoError(t, f.k.ClaimTask(f.ctx, f.worker.String(), taskID))
	return taskID
}

// taskUnderReview opens, claims and submits work so the task sits under
// review with a pending submission.
func (f *marketFixture) taskUnderReview(t testing.TB, deposit math.Int) (taskID, submissionID uint64) {
	t.Helper()
	taskID = f.claimedTask(t, deposit)
	submissionID, late, err := f.k.SubmitWork(f.ctx, f.worker.String(), taskID, testHash(0x02))
	require.NoError(t, err)
	require.False(t, late)
	return taskID, submissionID
}

// advance moves the block time forward.
func (f *marketFixture) advance(d time.Duration) {
	f.ctx = f.ctx.WithBlockTime(f.ctx.BlockTime().Add(d))
}

// requireConserved asserts the ledger conservation identity:
// sum(task balances) + sum(available) + fee pool == deposited - withdrawn.
func requireConserved(t testing.TB, k *keeper.Keeper, ctx sdk.Context) {
	t.Helper()
	totals := k.GetLedgerTotals(ctx)

	sum := totals.FeePool
	for _, escrow := range k.GetAllTaskEscrows(ctx) {
		sum = sum.Add(escrow.Balance)
	}
	for _, acct := range k.GetAllEscrowAccounts(ctx) {
		sum = sum.Add(acct.Available)
	}

	expected := totals.TotalDeposited.Sub(totals.TotalWithdrawn)
	require.True(t, sum.Equal(expected),
		"ledger not conserved: custody %s, deposited-withdrawn %s", sum, expected)
}

package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

func TestDepositMovesFundsIntoCustody(t *testing.T) {
	f := newMarketFixture(t)
	before := f.bk.GetBalance(f.ctx, f.requester, types.DefaultDenom)

	f.createTask(t, math.NewInt(1_000_000))

	after := f.bk.GetBalance(f.ctx, f.requester, types.DefaultDenom)
	require.True(t, before.Amount.Sub(after.Amount).Equal(math.NewInt(1_000_000)))

	totals := f.k.GetLedgerTotals(f.ctx)
	require.True(t, totals.TotalDeposited.Equal(math.NewInt(1_000_000)))
	require.True(t, totals.TotalWithdrawn.IsZero())
	require.True(t, totals.FeePool.IsZero())
	requireConserved(t, f.k, f.ctx)
}

func TestReleaseOnAcceptance(t *testing.T) {
	f := newMarketFixture(t)
	taskID, _ := f.taskUnderReview(t, math.NewInt(1_000_000))

	require.NoError(t, f.k.AcceptSubmission(f.ctx, f.requester.String(), taskID, nil))

	// Worker receives the deposit net of the 5% fee.
	workerAcct := f.k.GetEscrowAccount(f.ctx, f.worker.String())
	require.True(t, workerAcct.Available.Equal(math.NewInt(950_000)))

	requesterAcct := f.k.GetEscrowAccount(f.ctx, f.requester.String())
	require.True(t, requesterAcct.Locked.IsZero())

	totals := f.k.GetLedgerTotals(f.ctx)
	require.True(t, totals.FeePool.Equal(math.NewInt(50_000)))

	_, found := f.k.GetTaskEscrow(f.ctx, taskID)
	require.False(t, found)
	requireConserved(t, f.k, f.ctx)
}

func TestTerminalTasksHoldNoBalance(t *testing.T) {
	f := newMarketFixture(t)
	authorizer := f.grantCap(t, types.CAPABILITY_ARBITRATOR_AUTHORIZER)
	arbitrator := f.grantCap(t, types.CAPABILITY_ARBITRATOR)

	// Every terminal path settles escrow before the task leaves the active
	// set; no terminal task ever carries a live escrow record.
	accepted, _ := f.taskUnderReview(t, math.NewInt(1_000_000))
	require.NoError(t, f.k.AcceptSubmission(f.ctx, f.requester.String(), accepted, nil))

	cancelled := f.createTask(t, math.NewInt(1_000_000))
	immediate, err := f.k.RequestCancellation(f.ctx, f.requester.String(), cancelled, testHash(0x03))
	require.NoError(t, err)
	require.True(t, immediate)

	expired := f.claimedTask(t, math.NewInt(1_000_000))
	f.advance(31 * 24 * time.Hour)
	require.NoError(t, f.k.ExpireTask(f.ctx, expired))

	refunded, refundDispute := f.disputedTask(t, math.NewInt(1_000_000))
	require.NoError(t, f.k.AssignArbitrator(f.ctx, authorizer.String(), refundDispute, arbitrator.String()))
	require.NoError(t, f.k.ResolveDispute(
		f.ctx, arbitrator.String(), refundDispute,
		types.DISPUTE_OUTCOME_FULL_REFUND_TO_REQUESTER, 0, testHash(0x0c),
	))

	split, splitDispute := f.disputedTask(t, math.NewInt(1_000_000))
	require.NoError(t, f.k.AssignArbitrator(f.ctx, authorizer.String(), splitDispute, arbitrator.String()))
	require.NoError(t, f.k.ResolveDispute(
		f.ctx, arbitrator.String(), splitDispute,
		types.DISPUTE_OUTCOME_SPLIT, 0, testHash(0x0c),
	))

	for _, taskID := range []uint64{accepted, cancelled, expired, refunded, split} {
		task, found := f.k.GetTask(f.ctx, taskID)
		require.True(t, found)
		require.True(t, task.Status.IsTerminal(), "task %d is %s", taskID, task.Status)
		_, held := f.k.GetTaskEscrow(f.ctx, taskID)
		require.False(t, held, "task %d", taskID)
	}
	requireConserved(t, f.k, f.ctx)
}

func TestRefundChargesNoFee(t *testing.T) {
	f := newMarketFixture(t)
	taskID := f.createTask(t, math.NewInt(1_000_000))

	immediate, err := f.k.RequestCancellation(f.ctx, f.requester.String(), taskID, testHash(0x03))
	require.NoError(t, err)
	require.True(t, immediate)

	acct := f.k.GetEscrowAccount(f.ctx, f.requester.String())
	require.True(t, acct.Available.Equal(math.NewInt(1_000_000)))
	require.True(t, f.k.GetLedgerTotals(f.ctx).FeePool.IsZero())
	requireConserved(t, f.k, f.ctx)
}

func TestWithdraw(t *testing.T) {
	f := newMarketFixture(t)
	taskID, _ := f.taskUnderReview(t, math.NewInt(1_000_000))
	require.NoError(t, f.k.AcceptSubmission(f.ctx, f.requester.String(), taskID, nil))

	before := f.bk.GetBalance(f.ctx, f.worker, types.DefaultDenom)
	require.NoError(t, f.k.Withdraw(f.ctx, f.worker.String(), math.NewInt(400_000)))

	after := f.bk.GetBalance(f.ctx, f.worker, types.DefaultDenom)
	require.True(t, after.Amount.Sub(before.Amount).Equal(math.NewInt(400_000)))

	acct := f.k.GetEscrowAccount(f.ctx, f.worker.String())
	require.True(t, acct.Available.Equal(math.NewInt(550_000)))
	require.Equal(t, f.ctx.BlockTime(), acct.LastWithdrawalAt)

	totals := f.k.GetLedgerTotals(f.ctx)
	require.True(t, totals.TotalWithdrawn.Equal(math.NewInt(400_000)))
	requireConserved(t, f.k, f.ctx)
}

func TestWithdrawValidation(t *testing.T) {
	f := newMarketFixture(t)

	tests := []struct {
		name    string
		address string
		amount  math.Int
		wantErr error
	}{
		{"malformed address", "nobody", math.NewInt(1), types.ErrInvalidAddress},
		{"zero amount", f.worker.String(), math.NewInt(0), types.ErrZeroAmount},
		{"negative amount", f.worker.String(), math.NewInt(-5), types.ErrZeroAmount},
		{"nothing available", f.worker.String(), math.NewInt(1), types.ErrInsufficientBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, f.k.Withdraw(f.ctx, tt.address, tt.amount), tt.wantErr)
		})
	}
}

func TestWithdrawTierCadence(t *testing.T) {
	f := newMarketFixture(t)
	taskID, _ := f.taskUnderReview(t, math.NewInt(1_000_000))
	require.NoError(t, f.k.AcceptSubmission(f.ctx, f.requester.String(), taskID, nil))

	// Silver tier allows one withdrawal every 3 days. The first withdrawal
	// always goes through.
	require.NoError(t, f.k.Withdraw(f.ctx, f.worker.String(), math.NewInt(100_000)))

	f.advance(24 * time.Hour)
	err := f.k.Withdraw(f.ctx, f.worker.String(), math.NewInt(100_000))
	require.ErrorIs(t, err, types.ErrWithdrawalTooFrequent)

	f.advance(2*24*time.Hour + time.Second)
	require.NoError(t, f.k.Withdraw(f.ctx, f.worker.String(), math.NewInt(100_000)))
	requireConserved(t, f.k, f.ctx)
}

func TestWithdrawBlockedWhilePaused(t *testing.T) {
	f := newMarketFixture(t)
	taskID, _ := f.taskUnderReview(t, math.NewInt(1_000_000))
	require.NoError(t, f.k.AcceptSubmission(f.ctx, f.requester.String(), taskID, nil))

	require.NoError(t, f.k.Pause(f.ctx, f.k.GetAuthority(), "maintenance"))
	err := f.k.Withdraw(f.ctx, f.worker.String(), math.NewInt(100_000))
	require.ErrorIs(t, err, types.ErrModulePaused)

	require.NoError(t, f.k.Unpause(f.ctx, f.k.GetAuthority(), "done"))
	require.NoError(t, f.k.Withdraw(f.ctx, f.worker.String(), math.NewInt(100_000)))
}

func TestEscrowAccountDefaultsToZero(t *testing.T) {
	f := newMarketFixture(t)
	acct := f.k.GetEscrowAccount(f.ctx, testAddr().String())
	require.True(t, acct.Available.IsZero())
	require.True(t, acct.Locked.IsZero())
	require.True(t, acct.LastWithdrawalAt.IsZero())
}

package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

// GetEscrowAccount returns the per-identity ledger view, zero-valued when the
// identity has never touched the ledger.
func (k Keeper) GetEscrowAccount(ctx context.Context, address string) types.EscrowAccount {
	addr, err := sdk.AccAddressFromBech32(address)
	if err != nil {
		return newEscrowAccount(address)
	}

	store := k.getStore(ctx)
	bz := store.Get(EscrowAccountKey(addr))
	if bz == nil {
		return newEscrowAccount(address)
	}

	var acct types.EscrowAccount
	k.mustUnmarshal(bz, &acct)
	return acct
}

func newEscrowAccount(address string) types.EscrowAccount {
	return types.EscrowAccount{
		Address:   address,
		Locked:    math.ZeroInt(),
		Available: math.ZeroInt(),
	}
}

func (k Keeper) setEscrowAccount(ctx context.Context, acct types.EscrowAccount) {
	addr, err := sdk.AccAddressFromBech32(acct.Address)
	if err != nil {
		panic(fmt.Sprintf("escrow account with malformed address %q", acct.Address))
	}

	store := k.getStore(ctx)
	store.Set(EscrowAccountKey(addr), k.mustMarshal(acct))
}

// GetTaskEscrow returns the custodial balance scoped to a task.
func (k Keeper) GetTaskEscrow(ctx context.Context, taskID uint64) (types.TaskEscrow, bool) {
	store := k.getStore(ctx)
	bz := store.Get(TaskEscrowKey(taskID))
	if bz == nil {
		return types.TaskEscrow{}, false
	}

	var escrow types.TaskEscrow
	k.mustUnmarshal(bz, &escrow)
	return escrow, true
}

func (k Keeper) setTaskEscrow(ctx context.Context, escrow types.TaskEscrow) {
	store := k.getStore(ctx)
	store.Set(TaskEscrowKey(escrow.TaskId), k.mustMarshal(escrow))
}

func (k Keeper) deleteTaskEscrow(ctx context.Context, taskID uint64) {
	store := k.getStore(ctx)
	store.Delete(TaskEscrowKey(taskID))
}

// GetLedgerTotals returns the running conservation counters.
func (k Keeper) GetLedgerTotals(ctx context.Context) types.LedgerTotals {
	store := k.getStore(ctx)
	bz := store.Get(LedgerTotalsKey)
	if bz == nil {
		return types.LedgerTotals{
			TotalDeposited: math.ZeroInt(),
			TotalWithdrawn: math.ZeroInt(),
			FeePool:        math.ZeroInt(),
		}
	}

	var totals types.LedgerTotals
	k.mustUnmarshal(bz, &totals)
	return totals
}

func (k Keeper) setLedgerTotals(ctx context.Context, totals types.LedgerTotals) {
	store := k.getStore(ctx)
	store.Set(LedgerTotalsKey, k.mustMarshal(totals))
}

// depositEscrow moves the task deposit from the requester's bank account into
// module custody and records it against the task. The bank transfer happens
// first; ledger state is only written after custody is established.
func (k Keeper) depositEscrow(ctx context.Context, requester sdk.AccAddress, taskID uint64, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrZeroAmount.Wrap("escrow deposit")
	}
	if _, exists := k.GetTaskEscrow(ctx, taskID); exists {
		return types.ErrLedgerInconsistency.Wrapf("task %d already funded", taskID)
	}

	params := k.GetParams(ctx)
	coins := sdk.NewCoins(sdk.NewCoin(params.Denom, amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, requester, types.ModuleName, coins); err != nil {
		return types.ErrInsufficientBalance.Wrapf("escrow deposit: %v", err)
	}

	k.setTaskEscrow(ctx, types.TaskEscrow{TaskId: taskID, Balance: amount})

	acct := k.GetEscrowAccount(ctx, requester.String())
	acct.Locked = acct.Locked.Add(amount)
	k.setEscrowAccount(ctx, acct)

	totals := k.GetLedgerTotals(ctx)
	totals.TotalDeposited = totals.TotalDeposited.Add(amount)
	k.setLedgerTotals(ctx, totals)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeEscrowDeposited,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", taskID)),
			sdk.NewAttribute(types.AttributeKeyRequester, requester.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// releaseEscrow settles a task's full balance to the worker, net of the
// platform fee fixed at task creation. Only tasks under review or disputed
// release. The task escrow record is removed; terminal tasks hold no balance.
func (k Keeper) releaseEscrow(ctx context.Context, task types.Task) (math.Int, error) {
	if task.Status != types.TASK_STATUS_UNDER_REVIEW && task.Status != types.TASK_STATUS_DISPUTED {
		return math.Int{}, types.ErrInvalidTaskState.Wrapf(
			"task %d released while %s", task.Id, task.Status)
	}
	escrow, found := k.GetTaskEscrow(ctx, task.Id)
	if !found {
		return math.Int{}, types.ErrEscrowNotFound.Wrapf("task %d", task.Id)
	}
	if !escrow.Balance.Equal(task.EscrowAmount) {
		return math.Int{}, types.ErrAmountMismatch.Wrapf(
			"task %d balance %s, escrow amount %s", task.Id, escrow.Balance, task.EscrowAmount)
	}
	if task.Worker == "" {
		return math.Int{}, types.ErrLedgerInconsistency.Wrapf("task %d released without worker", task.Id)
	}

	fee := task.PlatformFee
	payout := escrow.Balance.Sub(fee)
	if payout.IsNegative() {
		return math.Int{}, types.ErrLedgerInconsistency.Wrapf(
			"task %d fee %s exceeds balance %s", task.Id, fee, escrow.Balance)
	}

	k.deleteTaskEscrow(ctx, task.Id)

	requesterAcct := k.GetEscrowAccount(ctx, task.Requester)
	requesterAcct.Locked = requesterAcct.Locked.Sub(escrow.Balance)
	k.setEscrowAccount(ctx, requesterAcct)

	workerAcct := k.GetEscrowAccount(ctx, task.Worker)
	workerAcct.Available = workerAcct.Available.Add(payout)
	k.setEscrowAccount(ctx, workerAcct)

	totals := k.GetLedgerTotals(ctx)
	totals.FeePool = totals.FeePool.Add(fee)
	k.setLedgerTotals(ctx, totals)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeEscrowReleased,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", task.Id)),
			sdk.NewAttribute(types.AttributeKeyWorker, task.Worker),
			sdk.NewAttribute(types.AttributeKeyAmount, payout.String()),
			sdk.NewAttribute(types.AttributeKeyFee, fee.String()),
		),
	)
	return payout, nil
}

// refundEscrow returns a task's full balance to the requester's available
// balance. No fee is charged on refunds.
func (k Keeper) refundEscrow(ctx context.Context, task types.Task) error {
	escrow, found := k.GetTaskEscrow(ctx, task.Id)
	if !found {
		return types.ErrEscrowNotFound.Wrapf("task %d", task.Id)
	}

	k.deleteTaskEscrow(ctx, task.Id)

	acct := k.GetEscrowAccount(ctx, task.Requester)
	acct.Locked = acct.Locked.Sub(escrow.Balance)
	acct.Available = acct.Available.Add(escrow.Balance)
	k.setEscrowAccount(ctx, acct)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeEscrowRefunded,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", task.Id)),
			sdk.NewAttribute(types.AttributeKeyRequester, task.Requester),
			sdk.NewAttribute(types.AttributeKeyAmount, escrow.Balance.String()),
		),
	)
	return nil
}

// partialReleaseEscrow splits a task's balance between worker and requester
// by workerPercent of the fee-net amount. The platform fee is charged because
// work changed hands.
func (k Keeper) partialReleaseEscrow(ctx context.Context, task types.Task, workerPercent uint32) (math.Int, math.Int, error) {
	if workerPercent > 100 {
		return math.Int{}, math.Int{}, types.ErrInvalidPercentage
	}
	escrow, found := k.GetTaskEscrow(ctx, task.Id)
	if !found {
		return math.Int{}, math.Int{}, types.ErrEscrowNotFound.Wrapf("task %d", task.Id)
	}
	if task.Worker == "" {
		return math.Int{}, math.Int{}, types.ErrLedgerInconsistency.Wrapf("task %d settled without worker", task.Id)
	}

	fee := task.PlatformFee
	net := escrow.Balance.Sub(fee)
	if net.IsNegative() {
		return math.Int{}, math.Int{}, types.ErrLedgerInconsistency.Wrapf(
			"task %d fee %s exceeds balance %s", task.Id, fee, escrow.Balance)
	}

	workerShare := net.MulRaw(int64(workerPercent)).QuoRaw(100)
	requesterShare := net.Sub(workerShare)

	k.deleteTaskEscrow(ctx, task.Id)

	requesterAcct := k.GetEscrowAccount(ctx, task.Requester)
	requesterAcct.Locked = requesterAcct.Locked.Sub(escrow.Balance)
	requesterAcct.Available = requesterAcct.Available.Add(requesterShare)
	k.setEscrowAccount(ctx, requesterAcct)

	workerAcct := k.GetEscrowAccount(ctx, task.Worker)
	workerAcct.Available = workerAcct.Available.Add(workerShare)
	k.setEscrowAccount(ctx, workerAcct)

	totals := k.GetLedgerTotals(ctx)
	totals.FeePool = totals.FeePool.Add(fee)
	k.setLedgerTotals(ctx, totals)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeEscrowPartialReleased,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", task.Id)),
			sdk.NewAttribute(types.AttributeKeyWorker, task.Worker),
			sdk.NewAttribute(types.AttributeKeyAmount, workerShare.String()),
			sdk.NewAttribute(types.AttributeKeyFee, fee.String()),
			sdk.NewAttribute(types.AttributeKeyPercentage, fmt.Sprintf("%d", workerPercent)),
		),
	)
	return workerShare, requesterShare, nil
}

// Withdraw moves available balance out of module custody into the caller's
// bank account. Withdrawal cadence is tier-gated; ledger state is updated
// before the bank send so a failed transfer rolls the whole message back.
func (k Keeper) Withdraw(ctx context.Context, address string, amount math.Int) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}

	addr, err := sdk.AccAddressFromBech32(address)
	if err != nil {
		return types.ErrInvalidAddress.Wrapf("withdrawer: %v", err)
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrZeroAmount.Wrap("withdrawal amount")
	}

	acct := k.GetEscrowAccount(ctx, address)
	if acct.Available.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("available %s, requested %s", acct.Available, amount)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()

	rep := k.GetReputation(ctx, address)
	interval := rep.Tier.WithdrawalInterval()
	if interval > 0 && !acct.LastWithdrawalAt.IsZero() {
		nextAllowed := acct.LastWithdrawalAt.Add(interval)
		if now.Before(nextAllowed) {
			return types.ErrWithdrawalTooFrequent.Wrapf(
				"tier %s allows next withdrawal at %s", rep.Tier, nextAllowed.UTC())
		}
	}

	acct.Available = acct.Available.Sub(amount)
	acct.LastWithdrawalAt = now
	k.setEscrowAccount(ctx, acct)

	totals := k.GetLedgerTotals(ctx)
	totals.TotalWithdrawn = totals.TotalWithdrawn.Add(amount)
	k.setLedgerTotals(ctx, totals)

	params := k.GetParams(ctx)
	coins := sdk.NewCoins(sdk.NewCoin(params.Denom, amount))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, addr, coins); err != nil {
		return types.ErrLedgerInconsistency.Wrapf("withdrawal transfer: %v", err)
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdrawal,
			sdk.NewAttribute(types.AttributeKeyAddress, address),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyTier, rep.Tier.String()),
		),
	)
	return nil
}

// GetAllEscrowAccounts returns every per-identity ledger record. Used by
// genesis export and the conservation invariant.
func (k Keeper) GetAllEscrowAccounts(ctx context.Context) []types.EscrowAccount {
	store := k.getStore(ctx)
	iterator := store.Iterator(EscrowAccountKeyPrefix, endOfPrefix(EscrowAccountKeyPrefix))
	defer iterator.Close()

	var accounts []types.EscrowAccount
	for ; iterator.Valid(); iterator.Next() {
		var acct types.EscrowAccount
		k.mustUnmarshal(iterator.Value(), &acct)
		accounts = append(accounts, acct)
	}
	return accounts
}

// GetAllTaskEscrows returns every live per-task balance. Used by genesis
// export and the conservation invariant.
func (k Keeper) GetAllTaskEscrows(ctx context.Context) []types.TaskEscrow {
	store := k.getStore(ctx)
	iterator := store.Iterator(TaskEscrowKeyPrefix, endOfPrefix(TaskEscrowKeyPrefix))
	defer iterator.Close()

	var escrows []types.TaskEscrow
	for ; iterator.Valid(); iterator.Next() {
		var escrow types.TaskEscrow
		k.mustUnmarshal(iterator.Value(), &escrow)
		escrows = append(escrows, escrow)
	}
	return escrows
}

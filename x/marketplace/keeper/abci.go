package keeper

import (
	"context"
	"encoding/binary"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

// EndBlocker drives every time-triggered transition: deadline expiry, review
// timeout auto-acceptance, cancellation window auto-approval, appeal window
// settlement and reputation decay. It runs under pause because each sweep
// only settles value already owed; no new obligations are created here.
func (k Keeper) EndBlocker(ctx context.Context) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()

	k.expireDueTasks(ctx, now)
	k.autoAcceptDueReviews(ctx, now)
	k.processDueCancellations(ctx, now)
	k.settleExpiredAppealWindows(ctx, now)
	k.ApplyDecay(ctx, now)
	return nil
}

// expireDueTasks sweeps the deadline index and expires past-deadline tasks
// still open or in progress. Tasks under review, disputed or pending
// cancellation settle through their own paths; their index entries clear on
// the terminal transition.
func (k Keeper) expireDueTasks(ctx context.Context, now time.Time) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	for _, taskID := range k.dueIndexEntries(ctx, TasksByDeadlinePrefix, now, false) {
		task, found := k.GetTask(ctx, taskID)
		if !found {
			continue
		}
		if task.Status != types.TASK_STATUS_OPEN && task.Status != types.TASK_STATUS_IN_PROGRESS {
			continue
		}
		if err := k.ExpireTask(ctx, taskID); err != nil {
			sdkCtx.Logger().Error("failed to expire task", "task_id", taskID, "error", err)
		}
	}
}

// autoAcceptDueReviews sweeps the review deadline index and settles
// submissions the requester never decided on.
func (k Keeper) autoAcceptDueReviews(ctx context.Context, now time.Time) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	for _, subID := range k.dueIndexEntries(ctx, ReviewDeadlinePrefix, now, true) {
		if err := k.autoAcceptSubmission(ctx, subID); err != nil {
			// Stale entries from intervening disputes or cancellations are
			// expected; the index key is already removed.
			sdkCtx.Logger().Debug("skipped review auto-accept", "submission_id", subID, "error", err)
		}
	}
}

// processDueCancellations auto-approves cancellation requests whose
// moderation window elapsed.
func (k Keeper) processDueCancellations(ctx context.Context, now time.Time) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	for _, taskID := range k.dueIndexEntries(ctx, PendingCancellationPrefix, now, false) {
		if err := k.ProcessExpiredCancellation(ctx, taskID); err != nil {
			sdkCtx.Logger().Error("failed to process expired cancellation", "task_id", taskID, "error", err)
		}
	}
}

// dueIndexEntries collects trailing IDs from a time-ordered index whose
// timestamp component is at or before now. Keys are consumed when remove is
// set; otherwise the owning operation clears them.
func (k Keeper) dueIndexEntries(ctx context.Context, prefix []byte, now time.Time, remove bool) []uint64 {
	store := k.getStore(ctx)
	iterator := store.Iterator(prefix, endOfPrefix(prefix))

	var keys [][]byte
	var ids []uint64
	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()
		stampBz := key[len(prefix) : len(prefix)+8]
		stamp := time.Unix(int64(binary.BigEndian.Uint64(stampBz)), 0)
		if stamp.After(now) {
			break
		}
		keys = append(keys, append([]byte(nil), key...))
		ids = append(ids, binary.BigEndian.Uint64(key[len(prefix)+8:]))
	}
	iterator.Close()

	if remove {
		for _, key := range keys {
			store.Delete(key)
		}
	}
	return ids
}

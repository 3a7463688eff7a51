package keeper

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

// GetTask returns a task by ID.
func (k Keeper) GetTask(ctx context.Context, taskID uint64) (types.Task, bool) {
	store := k.getStore(ctx)
	bz := store.Get(TaskKey(taskID))
	if bz == nil {
		return types.Task{}, false
	}

	var task types.Task
	k.mustUnmarshal(bz, &task)
	return task, true
}

func (k Keeper) setTask(ctx context.Context, task types.Task) {
	store := k.getStore(ctx)
	store.Set(TaskKey(task.Id), k.mustMarshal(task))
}

// transitionTask moves a task through the lifecycle table, maintaining the
// by-status index and emitting a status event. Redundant same-state
// transitions are permitted silently where the table names them. Terminal
// transitions require the task's escrow to be settled first.
func (k Keeper) transitionTask(ctx context.Context, task *types.Task, to types.TaskStatus) error {
	from := task.Status
	if !types.CanTransition(from, to) {
		return types.ErrInvalidTransition.Wrapf("%s -> %s", from, to)
	}
	if types.IsRedundantTransition(from, to) {
		return nil
	}
	if to.IsTerminal() {
		if escrow, found := k.GetTaskEscrow(ctx, task.Id); found && escrow.Balance.IsPositive() {
			return types.ErrLedgerInconsistency.Wrapf(
				"task %d holds %s entering %s", task.Id, escrow.Balance, to)
		}
	}

	store := k.getStore(ctx)
	store.Delete(TaskByStatusKey(uint32(from), task.Id))
	store.Set(TaskByStatusKey(uint32(to), task.Id), []byte{1})

	task.Status = to
	k.setTask(ctx, *task)

	if to.IsTerminal() {
		store.Delete(TaskByDeadlineKey(task.Deadline.Unix(), task.Id))
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTaskStatus,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", task.Id)),
			sdk.NewAttribute(types.AttributeKeyPriorStatus, from.String()),
			sdk.NewAttribute(types.AttributeKeyStatus, to.String()),
		),
	)
	return nil
}

// CreateTask escrows the deposit and opens a new task. The platform fee is
// computed from the current fee rate and fixed on the task record, so later
// rate changes never touch in-flight escrows.
func (k Keeper) CreateTask(
	ctx context.Context,
	requester string,
	requirementsHash []byte,
	deadline time.Time,
	minReputation uint32,
	maxRevisions uint32,
	reviewPeriodSeconds uint64,
	deposit math.Int,
) (uint64, error) {
	if err := k.checkNotPaused(ctx); err != nil {
		return 0, err
	}

	requesterAddr, err := sdk.AccAddressFromBech32(requester)
	if err != nil {
		return 0, types.ErrInvalidAddress.Wrapf("requester: %v", err)
	}
	if !types.ValidContentHash(requirementsHash) {
		return 0, types.ErrInvalidContentHash.Wrap("requirements hash")
	}
	if minReputation > types.MaxScore {
		return 0, types.ErrInvalidReputationFloor.Wrapf("%d > %d", minReputation, types.MaxScore)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()
	if !deadline.After(now) {
		return 0, types.ErrInvalidDeadline.Wrapf("deadline %s not after %s", deadline.UTC(), now.UTC())
	}

	params := k.GetParams(ctx)
	if deposit.IsNil() || deposit.LT(params.MinTaskDeposit) {
		return 0, types.ErrInvalidDeposit.Wrapf("minimum %s", params.MinTaskDeposit)
	}
	if reviewPeriodSeconds == 0 {
		reviewPeriodSeconds = params.DefaultReviewPeriodSeconds
	}
	if maxRevisions == 0 {
		maxRevisions = params.DefaultMaxRevisions
	}

	taskID := k.getNextTaskID(ctx)
	fee := params.PlatformFeeRate.MulInt(deposit).TruncateInt()

	if err := k.depositEscrow(ctx, requesterAddr, taskID, deposit); err != nil {
		return 0, err
	}

	task := types.Task{
		Id:                  taskID,
		Requester:           requester,
		MinReputation:       minReputation,
		Status:              types.TASK_STATUS_OPEN,
		MaxRevisions:        maxRevisions,
		EscrowAmount:        deposit,
		PlatformFee:         fee,
		Deadline:            deadline,
		CreatedAt:           now,
		ReviewPeriodSeconds: reviewPeriodSeconds,
		RequirementsHash:    requirementsHash,
	}
	k.setTask(ctx, task)

	store := k.getStore(ctx)
	store.Set(TaskByStatusKey(uint32(task.Status), taskID), []byte{1})
	store.Set(TaskByRequesterKey(requesterAddr, taskID), []byte{1})
	store.Set(TaskByDeadlineKey(deadline.Unix(), taskID), []byte{1})

	k.touchActivity(ctx, requester, now)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTaskCreated,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", taskID)),
			sdk.NewAttribute(types.AttributeKeyRequester, requester),
			sdk.NewAttribute(types.AttributeKeyAmount, deposit.String()),
			sdk.NewAttribute(types.AttributeKeyFee, fee.String()),
			sdk.NewAttribute(types.AttributeKeyDeadline, deadline.UTC().Format(time.RFC3339)),
		),
	)
	return taskID, nil
}

// ClaimTask assigns the worker to an open task after the reputation floor,
// concurrency cap and tier value ceiling checks.
func (k Keeper) ClaimTask(ctx context.Context, worker string, taskID uint64) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}

	workerAddr, err := sdk.AccAddressFromBech32(worker)
	if err != nil {
		return types.ErrInvalidAddress.Wrapf("worker: %v", err)
	}

	task, found := k.GetTask(ctx, taskID)
	if !found {
		return types.ErrTaskNotFound.Wrapf("task %d", taskID)
	}
	if task.Status != types.TASK_STATUS_OPEN {
		if task.Worker != "" {
			return types.ErrAlreadyClaimed.Wrapf("task %d claimed by %s", taskID, task.Worker)
		}
		return types.ErrTaskNotOpen.Wrapf("task %d is %s", taskID, task.Status)
	}
	if worker == task.Requester {
		return types.ErrUnauthorized.Wrap("requester cannot claim own task")
	}

	rep := k.GetReputation(ctx, worker)
	if rep.Overall < task.MinReputation {
		return types.ErrInsufficientReputation.Wrapf(
			"score %d below floor %d", rep.Overall, task.MinReputation)
	}
	if rep.ActiveTasks >= rep.Tier.MaxConcurrentTasks() {
		return types.ErrCapacityExceeded.Wrapf(
			"tier %s cap %d reached", rep.Tier, rep.Tier.MaxConcurrentTasks())
	}
	if limit, ok := k.tierValueLimit(ctx, rep.Tier); ok && task.EscrowAmount.GT(limit) {
		return types.ErrValueExceedsTierLimit.Wrapf(
			"task value %s exceeds %s ceiling %s", task.EscrowAmount, rep.Tier, limit)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()

	task.Worker = worker
	if err := k.transitionTask(ctx, &task, types.TASK_STATUS_IN_PROGRESS); err != nil {
		return err
	}

	store := k.getStore(ctx)
	store.Set(TaskByWorkerKey(workerAddr, taskID), []byte{1})

	rep.ActiveTasks++
	rep.LastActivityAt = now
	k.setReputation(ctx, rep)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTaskClaimed,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", taskID)),
			sdk.NewAttribute(types.AttributeKeyWorker, worker),
			sdk.NewAttribute(types.AttributeKeyTier, rep.Tier.String()),
		),
	)
	return nil
}

// tierValueLimit returns the claimable task value ceiling for a tier.
// Platinum has no ceiling.
func (k Keeper) tierValueLimit(ctx context.Context, tier types.Tier) (math.Int, bool) {
	params := k.GetParams(ctx)
	switch tier {
	case types.TIER_BRONZE:
		return params.BronzeTaskValueLimit, true
	case types.TIER_SILVER:
		return params.SilverTaskValueLimit, true
	case types.TIER_GOLD:
		return params.GoldTaskValueLimit, true
	default:
		return math.Int{}, false
	}
}

// releaseWorkerSlot decrements the assigned worker's active task count when a
// task leaves the active set.
func (k Keeper) releaseWorkerSlot(ctx context.Context, task types.Task) {
	if task.Worker == "" {
		return
	}
	rep := k.GetReputation(ctx, task.Worker)
	if rep.ActiveTasks > 0 {
		rep.ActiveTasks--
	}
	k.setReputation(ctx, rep)
}

// GetCancellationRequest returns a task's cancellation request.
func (k Keeper) GetCancellationRequest(ctx context.Context, taskID uint64) (types.CancellationRequest, bool) {
	store := k.getStore(ctx)
	bz := store.Get(CancellationRequestKey(taskID))
	if bz == nil {
		return types.CancellationRequest{}, false
	}

	var req types.CancellationRequest
	k.mustUnmarshal(bz, &req)
	return req, true
}

func (k Keeper) setCancellationRequest(ctx context.Context, req types.CancellationRequest) {
	store := k.getStore(ctx)
	store.Set(CancellationRequestKey(req.TaskId), k.mustMarshal(req))
}

// RequestCancellation opens a moderated cancellation for an open or
// in-progress task. When no moderator is provisioned the cancellation
// executes immediately; otherwise the task parks in pending_cancellation
// until a moderator decides or the review window elapses.
func (k Keeper) RequestCancellation(ctx context.Context, requester string, taskID uint64, reasonHash []byte) (immediate bool, err error) {
	if err := k.checkNotPaused(ctx); err != nil {
		return false, err
	}

	task, found := k.GetTask(ctx, taskID)
	if !found {
		return false, types.ErrTaskNotFound.Wrapf("task %d", taskID)
	}
	if task.Requester != requester {
		return false, types.ErrNotClient.Wrapf("task %d", taskID)
	}
	if !types.CanTransition(task.Status, types.TASK_STATUS_PENDING_CANCELLATION) {
		return false, types.ErrInvalidTaskState.Wrapf("cannot cancel task in %s", task.Status)
	}
	if existing, ok := k.GetCancellationRequest(ctx, taskID); ok && !existing.Processed {
		return false, types.ErrCancellationPending.Wrapf("task %d", taskID)
	}
	if !types.ValidContentHash(reasonHash) {
		return false, types.ErrInvalidContentHash.Wrap("reason hash")
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()

	if !k.anyModeratorExists(ctx) {
		// No moderation configured: cancel and refund in one step.
		k.setCancellationRequest(ctx, types.CancellationRequest{
			TaskId:      taskID,
			Requester:   requester,
			RequestedAt: now,
			ReasonHash:  reasonHash,
			Processed:   true,
			Approved:    true,
		})
		if err := k.cancelTask(ctx, &task); err != nil {
			return false, err
		}
		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeCancellationApproved,
				sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", taskID)),
				sdk.NewAttribute(types.AttributeKeyModerator, ""),
			),
		)
		return true, nil
	}

	params := k.GetParams(ctx)
	reviewDeadline := now.Add(time.Duration(params.CancellationWindowSeconds) * time.Second)

	k.setCancellationRequest(ctx, types.CancellationRequest{
		TaskId:         taskID,
		Requester:      requester,
		RequestedAt:    now,
		ReviewDeadline: reviewDeadline,
		ReasonHash:     reasonHash,
	})

	store := k.getStore(ctx)
	store.Set(PendingCancellationKey(reviewDeadline.Unix(), taskID), []byte{1})

	if err := k.transitionTask(ctx, &task, types.TASK_STATUS_PENDING_CANCELLATION); err != nil {
		return false, err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCancellationRequested,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", taskID)),
			sdk.NewAttribute(types.AttributeKeyRequester, requester),
			sdk.NewAttribute(types.AttributeKeyReviewDeadline, reviewDeadline.UTC().Format(time.RFC3339)),
		),
	)
	return false, nil
}

// ApproveCancellation is the moderator path: cancel the task and refund the
// requester.
func (k Keeper) ApproveCancellation(ctx context.Context, moderator string, taskID uint64) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}
	if !k.HasCapability(ctx, moderator, types.CAPABILITY_MODERATOR) {
		return types.ErrUnauthorized.Wrap("moderator capability required")
	}

	task, req, err := k.pendingCancellation(ctx, taskID)
	if err != nil {
		return err
	}

	req.Processed = true
	req.Approved = true
	k.setCancellationRequest(ctx, req)
	k.removePendingCancellationIndex(ctx, req)

	if err := k.cancelTask(ctx, &task); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCancellationApproved,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", taskID)),
			sdk.NewAttribute(types.AttributeKeyModerator, moderator),
		),
	)
	return nil
}

// RejectCancellation is the moderator path: the task resumes its prior
// lifecycle position.
func (k Keeper) RejectCancellation(ctx context.Context, moderator string, taskID uint64) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}
	if !k.HasCapability(ctx, moderator, types.CAPABILITY_MODERATOR) {
		return types.ErrUnauthorized.Wrap("moderator capability required")
	}

	task, req, err := k.pendingCancellation(ctx, taskID)
	if err != nil {
		return err
	}

	req.Processed = true
	req.Approved = false
	k.setCancellationRequest(ctx, req)
	k.removePendingCancellationIndex(ctx, req)

	resumed := types.TASK_STATUS_OPEN
	if task.Worker != "" {
		resumed = types.TASK_STATUS_IN_PROGRESS
	}
	if err := k.transitionTask(ctx, &task, resumed); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCancellationRejected,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", taskID)),
			sdk.NewAttribute(types.AttributeKeyModerator, moderator),
			sdk.NewAttribute(types.AttributeKeyStatus, resumed.String()),
		),
	)
	return nil
}

// ProcessExpiredCancellation auto-approves a cancellation whose review window
// elapsed without a moderator decision. Anyone may trigger it; the end
// blocker also sweeps these. Re-triggering a processed request is a no-op.
func (k Keeper) ProcessExpiredCancellation(ctx context.Context, taskID uint64) error {
	task, req, err := k.pendingCancellation(ctx, taskID)
	if err != nil {
		if done, found := k.GetCancellationRequest(ctx, taskID); found && done.Processed {
			return nil
		}
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if sdkCtx.BlockTime().Before(req.ReviewDeadline) {
		return types.ErrWindowNotElapsed.Wrapf(
			"review window ends at %s", req.ReviewDeadline.UTC())
	}

	req.Processed = true
	req.Approved = true
	k.setCancellationRequest(ctx, req)
	k.removePendingCancellationIndex(ctx, req)

	if err := k.cancelTask(ctx, &task); err != nil {
		return err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCancellationAutoApproved,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", taskID)),
		),
	)
	return nil
}

func (k Keeper) pendingCancellation(ctx context.Context, taskID uint64) (types.Task, types.CancellationRequest, error) {
	task, found := k.GetTask(ctx, taskID)
	if !found {
		return types.Task{}, types.CancellationRequest{}, types.ErrTaskNotFound.Wrapf("task %d", taskID)
	}
	req, found := k.GetCancellationRequest(ctx, taskID)
	if !found {
		return types.Task{}, types.CancellationRequest{}, types.ErrNoCancellationPending.Wrapf("task %d", taskID)
	}
	if req.Processed {
		return types.Task{}, types.CancellationRequest{}, types.ErrAlreadyProcessed.Wrapf("task %d", taskID)
	}
	if task.Status != types.TASK_STATUS_PENDING_CANCELLATION {
		return types.Task{}, types.CancellationRequest{}, types.ErrInvalidTaskState.Wrapf(
			"task %d is %s", taskID, task.Status)
	}
	return task, req, nil
}

func (k Keeper) removePendingCancellationIndex(ctx context.Context, req types.CancellationRequest) {
	store := k.getStore(ctx)
	store.Delete(PendingCancellationKey(req.ReviewDeadline.Unix(), req.TaskId))
}

// cancelTask refunds a task's escrow, transitions it to cancelled and frees
// the worker's slot. Escrow settles before the terminal transition.
func (k Keeper) cancelTask(ctx context.Context, task *types.Task) error {
	if err := k.refundEscrow(ctx, *task); err != nil {
		return err
	}
	if err := k.transitionTask(ctx, task, types.TASK_STATUS_CANCELLED); err != nil {
		return err
	}
	k.releaseWorkerSlot(ctx, *task)
	return nil
}

// ExpireTask refunds a past-deadline task's escrow and transitions it to
// expired. Only open and in-progress tasks expire; work already under review
// or disputed settles through its own path. Calling it on a task already
// settled is a no-op, so the end blocker sweep and manual triggers compose.
func (k Keeper) ExpireTask(ctx context.Context, taskID uint64) error {
	task, found := k.GetTask(ctx, taskID)
	if !found {
		return types.ErrTaskNotFound.Wrapf("task %d", taskID)
	}
	if task.Status.IsTerminal() {
		return nil
	}
	if task.Status != types.TASK_STATUS_OPEN && task.Status != types.TASK_STATUS_IN_PROGRESS {
		return types.ErrInvalidTaskState.Wrapf("task %d is %s", taskID, task.Status)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if sdkCtx.BlockTime().Before(task.Deadline) {
		return types.ErrWindowNotElapsed.Wrapf("deadline %s", task.Deadline.UTC())
	}

	if err := k.refundEscrow(ctx, task); err != nil {
		return err
	}
	if err := k.transitionTask(ctx, &task, types.TASK_STATUS_EXPIRED); err != nil {
		return err
	}
	k.releaseWorkerSlot(ctx, task)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTaskExpired,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", taskID)),
		),
	)
	return nil
}

// GetAllTasks returns every stored task. Used by genesis export and
// invariants.
func (k Keeper) GetAllTasks(ctx context.Context) []types.Task {
	store := k.getStore(ctx)
	iterator := store.Iterator(TaskKeyPrefix, endOfPrefix(TaskKeyPrefix))
	defer iterator.Close()

	var tasks []types.Task
	for ; iterator.Valid(); iterator.Next() {
		var task types.Task
		k.mustUnmarshal(iterator.Value(), &task)
		tasks = append(tasks, task)
	}
	return tasks
}

// GetAllCancellationRequests returns every cancellation request. Used by
// genesis export.
func (k Keeper) GetAllCancellationRequests(ctx context.Context) []types.CancellationRequest {
	store := k.getStore(ctx)
	iterator := store.Iterator(CancellationRequestKeyPrefix, endOfPrefix(CancellationRequestKeyPrefix))
	defer iterator.Close()

	var reqs []types.CancellationRequest
	for ; iterator.Valid(); iterator.Next() {
		var req types.CancellationRequest
		k.mustUnmarshal(iterator.Value(), &req)
		reqs = append(reqs, req)
	}
	return reqs
}

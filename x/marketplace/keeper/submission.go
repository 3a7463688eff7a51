package keeper

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

// GetSubmission returns a submission by ID.
func (k Keeper) GetSubmission(ctx context.Context, submissionID uint64) (types.Submission, bool) {
	store := k.getStore(ctx)
	bz := store.Get(SubmissionKey(submissionID))
	if bz == nil {
		return types.Submission{}, false
	}

	var sub types.Submission
	k.mustUnmarshal(bz, &sub)
	return sub, true
}

func (k Keeper) setSubmission(ctx context.Context, sub types.Submission) {
	store := k.getStore(ctx)
	store.Set(SubmissionKey(sub.Id), k.mustMarshal(sub))
}

// GetActiveSubmission returns the task's single non-terminal submission.
func (k Keeper) GetActiveSubmission(ctx context.Context, taskID uint64) (types.Submission, bool) {
	store := k.getStore(ctx)
	bz := store.Get(ActiveSubmissionKey(taskID))
	if bz == nil {
		return types.Submission{}, false
	}
	return k.GetSubmission(ctx, binary.BigEndian.Uint64(bz))
}

func (k Keeper) setActiveSubmission(ctx context.Context, taskID, submissionID uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, submissionID)
	store.Set(ActiveSubmissionKey(taskID), bz)
}

func (k Keeper) clearActiveSubmission(ctx context.Context, taskID uint64) {
	store := k.getStore(ctx)
	store.Delete(ActiveSubmissionKey(taskID))
}

// SubmitWork records a deliverable for an in-progress task and moves the task
// under review. Late submissions are accepted but flagged; the reliability
// consequence lands through the scoring service.
func (k Keeper) SubmitWork(ctx context.Context, worker string, taskID uint64, workHash []byte) (uint64, bool, error) {
	if err := k.checkNotPaused(ctx); err != nil {
		return 0, false, err
	}

	task, found := k.GetTask(ctx, taskID)
	if !found {
		return 0, false, types.ErrTaskNotFound.Wrapf("task %d", taskID)
	}
	if task.Worker != worker {
		return 0, false, types.ErrNotAssignedWorker.Wrapf("task %d", taskID)
	}
	if task.Status == types.TASK_STATUS_PENDING_CANCELLATION {
		return 0, false, types.ErrCancellationPending.Wrapf("task %d", taskID)
	}
	if task.Status != types.TASK_STATUS_IN_PROGRESS {
		return 0, false, types.ErrInvalidTaskState.Wrapf("task %d is %s", taskID, task.Status)
	}
	if _, active := k.GetActiveSubmission(ctx, taskID); active {
		return 0, false, types.ErrSubmissionActive.Wrapf("task %d", taskID)
	}
	if !types.ValidContentHash(workHash) {
		return 0, false, types.ErrInvalidContentHash.Wrap("work hash")
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()
	late := now.After(task.Deadline)

	submissionID := k.getNextSubmissionID(ctx)
	reviewDeadline := now.Add(time.Duration(task.ReviewPeriodSeconds) * time.Second)

	sub := types.Submission{
		Id:             submissionID,
		TaskId:         taskID,
		Worker:         worker,
		Status:         types.SUBMISSION_STATUS_PENDING,
		SubmittedAt:    now,
		ReviewDeadline: reviewDeadline,
		WorkHash:       workHash,
	}
	k.setSubmission(ctx, sub)
	k.setActiveSubmission(ctx, taskID, submissionID)

	store := k.getStore(ctx)
	store.Set(SubmissionByTaskKey(taskID, submissionID), []byte{1})
	store.Set(ReviewDeadlineKey(reviewDeadline.Unix(), submissionID), []byte{1})

	if err := k.transitionTask(ctx, &task, types.TASK_STATUS_UNDER_REVIEW); err != nil {
		return 0, false, err
	}

	if late {
		rep := k.GetReputation(ctx, worker)
		rep.LateSubmissions++
		rep.LastActivityAt = now
		k.setReputation(ctx, rep)

		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeLateSubmission,
				sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", taskID)),
				sdk.NewAttribute(types.AttributeKeyWorker, worker),
			),
		)
	} else {
		k.touchActivity(ctx, worker, now)
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWorkSubmitted,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", taskID)),
			sdk.NewAttribute(types.AttributeKeySubmissionID, fmt.Sprintf("%d", submissionID)),
			sdk.NewAttribute(types.AttributeKeyWorker, worker),
			sdk.NewAttribute(types.AttributeKeyLate, fmt.Sprintf("%t", late)),
			sdk.NewAttribute(types.AttributeKeyReviewDeadline, reviewDeadline.UTC().Format(time.RFC3339)),
		),
	)
	return submissionID, late, nil
}

// StartReview acknowledges the pending submission and restarts the review
// clock from the acknowledgement.
func (k Keeper) StartReview(ctx context.Context, requester string, taskID uint64) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}

	task, sub, err := k.activeSubmissionFor(ctx, requester, taskID)
	if err != nil {
		return err
	}
	if sub.Status != types.SUBMISSION_STATUS_PENDING {
		return types.ErrInvalidTaskState.Wrapf("submission %d is %s", sub.Id, sub.Status)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()

	store := k.getStore(ctx)
	store.Delete(ReviewDeadlineKey(sub.ReviewDeadline.Unix(), sub.Id))

	reviewDeadline := now.Add(time.Duration(task.ReviewPeriodSeconds) * time.Second)
	sub.Status = types.SUBMISSION_STATUS_UNDER_REVIEW
	sub.ReviewStartedAt = &now
	sub.ReviewDeadline = reviewDeadline
	k.setSubmission(ctx, sub)

	store.Set(ReviewDeadlineKey(reviewDeadline.Unix(), sub.Id), []byte{1})

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeReviewStarted,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", taskID)),
			sdk.NewAttribute(types.AttributeKeySubmissionID, fmt.Sprintf("%d", sub.Id)),
			sdk.NewAttribute(types.AttributeKeyReviewDeadline, reviewDeadline.UTC().Format(time.RFC3339)),
		),
	)
	return nil
}

// AcceptSubmission accepts the active submission, releases escrow to the
// worker and completes the task.
func (k Keeper) AcceptSubmission(ctx context.Context, requester string, taskID uint64, feedbackHash []byte) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}

	task, sub, err := k.activeSubmissionFor(ctx, requester, taskID)
	if err != nil {
		return err
	}
	if len(feedbackHash) > 0 {
		if !types.ValidContentHash(feedbackHash) {
			return types.ErrInvalidContentHash.Wrap("feedback hash")
		}
		sub.FeedbackHash = feedbackHash
	}

	if err := k.acceptAndComplete(ctx, &task, &sub); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSubmissionAccepted,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", taskID)),
			sdk.NewAttribute(types.AttributeKeySubmissionID, fmt.Sprintf("%d", sub.Id)),
		),
	)
	return nil
}

// RejectSubmission flatly rejects the active submission with mandatory
// feedback. The task stays under review; the worker may resubmit or dispute.
func (k Keeper) RejectSubmission(ctx context.Context, requester string, taskID uint64, feedbackHash []byte) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}

	_, sub, err := k.activeSubmissionFor(ctx, requester, taskID)
	if err != nil {
		return err
	}
	if sub.Status != types.SUBMISSION_STATUS_UNDER_REVIEW {
		return types.ErrNotUnderReview.Wrapf("submission %d is %s", sub.Id, sub.Status)
	}
	if !types.ValidContentHash(feedbackHash) {
		return types.ErrFeedbackRequired
	}

	store := k.getStore(ctx)
	store.Delete(ReviewDeadlineKey(sub.ReviewDeadline.Unix(), sub.Id))
	k.clearActiveSubmission(ctx, taskID)

	sub.Status = types.SUBMISSION_STATUS_REJECTED
	sub.FeedbackHash = feedbackHash
	k.setSubmission(ctx, sub)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSubmissionRejected,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", taskID)),
			sdk.NewAttribute(types.AttributeKeySubmissionID, fmt.Sprintf("%d", sub.Id)),
		),
	)
	return nil
}

// RequestRevision asks the worker for another pass, bounded by the task's
// revision budget.
func (k Keeper) RequestRevision(ctx context.Context, requester string, taskID uint64, feedbackHash []byte) (uint32, error) {
	if err := k.checkNotPaused(ctx); err != nil {
		return 0, err
	}

	task, sub, err := k.activeSubmissionFor(ctx, requester, taskID)
	if err != nil {
		return 0, err
	}
	if sub.Status != types.SUBMISSION_STATUS_UNDER_REVIEW {
		return 0, types.ErrNotUnderReview.Wrapf("submission %d is %s", sub.Id, sub.Status)
	}
	if !types.ValidContentHash(feedbackHash) {
		return 0, types.ErrFeedbackRequired
	}
	if sub.RevisionCount >= task.MaxRevisions {
		return 0, types.ErrMaxRevisionsExceeded.Wrapf("budget %d", task.MaxRevisions)
	}

	store := k.getStore(ctx)
	store.Delete(ReviewDeadlineKey(sub.ReviewDeadline.Unix(), sub.Id))

	sub.Status = types.SUBMISSION_STATUS_REVISION_REQUESTED
	sub.FeedbackHash = feedbackHash
	sub.RevisionCount++
	k.setSubmission(ctx, sub)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRevisionRequested,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", taskID)),
			sdk.NewAttribute(types.AttributeKeySubmissionID, fmt.Sprintf("%d", sub.Id)),
			sdk.NewAttribute(types.AttributeKeyRevisionCount, fmt.Sprintf("%d", sub.RevisionCount)),
		),
	)
	return sub.RevisionCount, nil
}

// ResubmitWork answers a revision request with new work, or supersedes a
// rejected submission with a fresh one. Fresh submissions after rejection are
// gated by the resubmission quality floor. Either way the task re-enters
// review without a status change.
func (k Keeper) ResubmitWork(ctx context.Context, worker string, taskID uint64, workHash []byte) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}

	task, found := k.GetTask(ctx, taskID)
	if !found {
		return types.ErrTaskNotFound.Wrapf("task %d", taskID)
	}
	if task.Worker != worker {
		return types.ErrNotAssignedWorker.Wrapf("task %d", taskID)
	}
	if task.Status != types.TASK_STATUS_UNDER_REVIEW {
		return types.ErrNotUnderReview.Wrapf("task %d is %s", taskID, task.Status)
	}
	if !types.ValidContentHash(workHash) {
		return types.ErrInvalidContentHash.Wrap("work hash")
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()
	store := k.getStore(ctx)

	sub, active := k.GetActiveSubmission(ctx, taskID)
	if active {
		if sub.Status != types.SUBMISSION_STATUS_REVISION_REQUESTED {
			return types.ErrInvalidTaskState.Wrapf("submission %d is %s", sub.Id, sub.Status)
		}

		reviewDeadline := now.Add(time.Duration(task.ReviewPeriodSeconds) * time.Second)
		sub.Status = types.SUBMISSION_STATUS_PENDING
		sub.WorkHash = workHash
		sub.SubmittedAt = now
		sub.ReviewStartedAt = nil
		sub.ReviewDeadline = reviewDeadline
		k.setSubmission(ctx, sub)
		store.Set(ReviewDeadlineKey(reviewDeadline.Unix(), sub.Id), []byte{1})
	} else {
		// Prior submission was rejected outright. Repeat attempts require a
		// minimum quality standing.
		params := k.GetParams(ctx)
		rep := k.GetReputation(ctx, worker)
		if rep.Quality < params.ResubmissionQualityFloor {
			return types.ErrQualityTooLow.Wrapf(
				"quality %d below floor %d", rep.Quality, params.ResubmissionQualityFloor)
		}

		submissionID := k.getNextSubmissionID(ctx)
		reviewDeadline := now.Add(time.Duration(task.ReviewPeriodSeconds) * time.Second)
		sub = types.Submission{
			Id:             submissionID,
			TaskId:         taskID,
			Worker:         worker,
			Status:         types.SUBMISSION_STATUS_PENDING,
			SubmittedAt:    now,
			ReviewDeadline: reviewDeadline,
			WorkHash:       workHash,
		}
		k.setSubmission(ctx, sub)
		k.setActiveSubmission(ctx, taskID, submissionID)
		store.Set(SubmissionByTaskKey(taskID, submissionID), []byte{1})
		store.Set(ReviewDeadlineKey(reviewDeadline.Unix(), submissionID), []byte{1})
	}

	// Named no-op transition: review re-entry keeps the task status.
	if err := k.transitionTask(ctx, &task, types.TASK_STATUS_UNDER_REVIEW); err != nil {
		return err
	}
	k.touchActivity(ctx, worker, now)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWorkResubmitted,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", taskID)),
			sdk.NewAttribute(types.AttributeKeySubmissionID, fmt.Sprintf("%d", sub.Id)),
			sdk.NewAttribute(types.AttributeKeyWorker, worker),
		),
	)
	return nil
}

// autoAcceptSubmission settles a submission whose review deadline elapsed
// without a requester decision. Called from the end blocker; runs even while
// paused because it only settles value already owed.
func (k Keeper) autoAcceptSubmission(ctx context.Context, submissionID uint64) error {
	sub, found := k.GetSubmission(ctx, submissionID)
	if !found {
		return types.ErrSubmissionNotFound.Wrapf("submission %d", submissionID)
	}
	if sub.Status != types.SUBMISSION_STATUS_PENDING && sub.Status != types.SUBMISSION_STATUS_UNDER_REVIEW {
		return types.ErrInvalidTaskState.Wrapf("submission %d is %s", submissionID, sub.Status)
	}

	task, found := k.GetTask(ctx, sub.TaskId)
	if !found {
		return types.ErrTaskNotFound.Wrapf("task %d", sub.TaskId)
	}
	if task.Status != types.TASK_STATUS_UNDER_REVIEW {
		// Dispute or cancellation intervened; the review clock no longer
		// applies.
		return types.ErrInvalidTaskState.Wrapf("task %d is %s", task.Id, task.Status)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if sdkCtx.BlockTime().Before(sub.ReviewDeadline) {
		return types.ErrReviewPeriodNotElapsed.Wrapf("deadline %s", sub.ReviewDeadline.UTC())
	}

	if err := k.acceptAndComplete(ctx, &task, &sub); err != nil {
		return err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAutoAccepted,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", task.Id)),
			sdk.NewAttribute(types.AttributeKeySubmissionID, fmt.Sprintf("%d", sub.Id)),
		),
	)
	return nil
}

// acceptAndComplete is the shared settlement path for explicit acceptance,
// review timeout and dispute outcomes that fully favor the worker.
func (k Keeper) acceptAndComplete(ctx context.Context, task *types.Task, sub *types.Submission) error {
	store := k.getStore(ctx)
	store.Delete(ReviewDeadlineKey(sub.ReviewDeadline.Unix(), sub.Id))
	k.clearActiveSubmission(ctx, task.Id)

	sub.Status = types.SUBMISSION_STATUS_ACCEPTED
	k.setSubmission(ctx, *sub)

	// Settle escrow before the terminal transition; a completed task never
	// holds a balance.
	payout, err := k.releaseEscrow(ctx, *task)
	if err != nil {
		return err
	}
	if err := k.transitionTask(ctx, task, types.TASK_STATUS_COMPLETED); err != nil {
		return err
	}

	k.recordTaskCompletion(ctx, task.Worker, payout)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if k.hooks != nil {
		workerAddr, err := sdk.AccAddressFromBech32(task.Worker)
		if err == nil {
			if err := k.hooks.AfterTaskCompleted(ctx, task.Id, workerAddr, payout); err != nil {
				sdkCtx.Logger().Error("task completion hook failed", "task_id", task.Id, "error", err)
			}
		}
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTaskCompleted,
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", task.Id)),
			sdk.NewAttribute(types.AttributeKeyWorker, task.Worker),
			sdk.NewAttribute(types.AttributeKeyAmount, payout.String()),
		),
	)
	return nil
}

// activeSubmissionFor loads the task and its active submission, checking the
// caller is the requester and the task is under review.
func (k Keeper) activeSubmissionFor(ctx context.Context, requester string, taskID uint64) (types.Task, types.Submission, error) {
	task, found := k.GetTask(ctx, taskID)
	if !found {
		return types.Task{}, types.Submission{}, types.ErrTaskNotFound.Wrapf("task %d", taskID)
	}
	if task.Requester != requester {
		return types.Task{}, types.Submission{}, types.ErrNotClient.Wrapf("task %d", taskID)
	}
	if task.Status != types.TASK_STATUS_UNDER_REVIEW {
		return types.Task{}, types.Submission{}, types.ErrNotUnderReview.Wrapf("task %d is %s", taskID, task.Status)
	}

	sub, found := k.GetActiveSubmission(ctx, taskID)
	if !found {
		return types.Task{}, types.Submission{}, types.ErrSubmissionNotFound.Wrapf("task %d has no active submission", taskID)
	}
	return task, sub, nil
}

// GetAllSubmissions returns every stored submission. Used by genesis export
// and invariants.
func (k Keeper) GetAllSubmissions(ctx context.Context) []types.Submission {
	store := k.getStore(ctx)
	iterator := store.Iterator(SubmissionKeyPrefix, endOfPrefix(SubmissionKeyPrefix))
	defer iterator.Close()

	var subs []types.Submission
	for ; iterator.Valid(); iterator.Next() {
		var sub types.Submission
		k.mustUnmarshal(iterator.Value(), &sub)
		subs = append(subs, sub)
	}
	return subs
}

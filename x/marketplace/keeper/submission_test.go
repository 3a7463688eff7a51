package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

func TestSubmitWork(t *testing.T) {
	f := newMarketFixture(t)
	taskID := f.claimedTask(t, math.NewInt(1_000_000))

	subID, late, err := f.k.SubmitWork(f.ctx, f.worker.String(), taskID, testHash(0x05))
	require.NoError(t, err)
	require.False(t, late)

	sub, found := f.k.GetSubmission(f.ctx, subID)
	require.True(t, found)
	require.Equal(t, types.SUBMISSION_STATUS_PENDING, sub.Status)
	require.Equal(t, f.worker.String(), sub.Worker)
	require.Equal(t, f.ctx.BlockTime().Add(3*24*time.Hour), sub.ReviewDeadline)

	task, _ := f.k.GetTask(f.ctx, taskID)
	require.Equal(t, types.TASK_STATUS_UNDER_REVIEW, task.Status)

	active, found := f.k.GetActiveSubmission(f.ctx, taskID)
	require.True(t, found)
	require.Equal(t, subID, active.Id)
}

func TestSubmitWorkGuards(t *testing.T) {
	f := newMarketFixture(t)
	taskID := f.claimedTask(t, math.NewInt(1_000_000))

	t.Run("only the assigned worker", func(t *testing.T) {
		_, _, err := f.k.SubmitWork(f.ctx, testAddr().String(), taskID, testHash(0x05))
		require.ErrorIs(t, err, types.ErrNotAssignedWorker)
	})

	t.Run("short work hash", func(t *testing.T) {
		_, _, err := f.k.SubmitWork(f.ctx, f.worker.String(), taskID, []byte{0x05})
		require.ErrorIs(t, err, types.ErrInvalidContentHash)
	})

	t.Run("one active submission at a time", func(t *testing.T) {
		_, _, err := f.k.SubmitWork(f.ctx, f.worker.String(), taskID, testHash(0x05))
		require.NoError(t, err)
		_, _, err = f.k.SubmitWork(f.ctx, f.worker.String(), taskID, testHash(0x06))
		// The task left in_progress when the first submission landed.
		require.ErrorIs(t, err, types.ErrInvalidTaskState)
	})
}

func TestSubmitWorkBlockedDuringCancellation(t *testing.T) {
	f := newMarketFixture(t)
	moderator := testAddr()
	require.NoError(t, f.k.GrantCapability(f.ctx, f.k.GetAuthority(), moderator.String(), types.CAPABILITY_MODERATOR))

	taskID := f.claimedTask(t, math.NewInt(1_000_000))
	_, err := f.k.RequestCancellation(f.ctx, f.requester.String(), taskID, testHash(0x03))
	require.NoError(t, err)

	_, _, err = f.k.SubmitWork(f.ctx, f.worker.String(), taskID, testHash(0x05))
	require.ErrorIs(t, err, types.ErrCancellationPending)
}

func TestSubmitWorkLateFlag(t *testing.T) {
	f := newMarketFixture(t)
	taskID := f.claimedTask(t, math.NewInt(1_000_000))

	f.advance(31 * 24 * time.Hour)
	_, late, err := f.k.SubmitWork(f.ctx, f.worker.String(), taskID, testHash(0x05))
	require.NoError(t, err)
	require.True(t, late)

	rep := f.k.GetReputation(f.ctx, f.worker.String())
	require.EqualValues(t, 1, rep.LateSubmissions)
}

func TestStartReviewRestartsClock(t *testing.T) {
	f := newMarketFixture(t)
	taskID, subID := f.taskUnderReview(t, math.NewInt(1_000_000))

	f.advance(24 * time.Hour)
	require.NoError(t, f.k.StartReview(f.ctx, f.requester.String(), taskID))

	sub, _ := f.k.GetSubmission(f.ctx, subID)
	require.Equal(t, types.SUBMISSION_STATUS_UNDER_REVIEW, sub.Status)
	require.NotNil(t, sub.ReviewStartedAt)
	require.Equal(t, f.ctx.BlockTime().Add(3*24*time.Hour), sub.ReviewDeadline)

	// Acknowledging twice is rejected.
	require.ErrorIs(t, f.k.StartReview(f.ctx, f.requester.String(), taskID), types.ErrInvalidTaskState)
}

func TestAcceptSubmission(t *testing.T) {
	f := newMarketFixture(t)
	taskID, subID := f.taskUnderReview(t, math.NewInt(1_000_000))

	require.NoError(t, f.k.AcceptSubmission(f.ctx, f.requester.String(), taskID, testHash(0x07)))

	sub, _ := f.k.GetSubmission(f.ctx, subID)
	require.Equal(t, types.SUBMISSION_STATUS_ACCEPTED, sub.Status)
	require.Equal(t, testHash(0x07), sub.FeedbackHash)

	task, _ := f.k.GetTask(f.ctx, taskID)
	require.Equal(t, types.TASK_STATUS_COMPLETED, task.Status)

	rep := f.k.GetReputation(f.ctx, f.worker.String())
	require.EqualValues(t, 1, rep.CompletedTasks)
	require.Zero(t, rep.ActiveTasks)
	require.True(t, rep.TotalEarnings.Equal(math.NewInt(950_000)))
	requireConserved(t, f.k, f.ctx)
}

func TestAcceptSubmissionGuards(t *testing.T) {
	f := newMarketFixture(t)
	taskID, _ := f.taskUnderReview(t, math.NewInt(1_000_000))

	require.ErrorIs(t, f.k.AcceptSubmission(f.ctx, f.worker.String(), taskID, nil), types.ErrNotClient)
	require.ErrorIs(t, f.k.AcceptSubmission(f.ctx, f.requester.String(), 999, nil), types.ErrTaskNotFound)

	open := f.createTask(t, math.NewInt(100_000))
	require.ErrorIs(t, f.k.AcceptSubmission(f.ctx, f.requester.String(), open, nil), types.ErrNotUnderReview)
}

func TestRejectSubmission(t *testing.T) {
	f := newMarketFixture(t)
	taskID, subID := f.taskUnderReview(t, math.NewInt(1_000_000))

	// Rejection needs an acknowledged review and written feedback.
	require.ErrorIs(t, f.k.RejectSubmission(f.ctx, f.requester.String(), taskID, testHash(0x07)), types.ErrNotUnderReview)
	require.NoError(t, f.k.StartReview(f.ctx, f.requester.String(), taskID))
	require.ErrorIs(t, f.k.RejectSubmission(f.ctx, f.requester.String(), taskID, nil), types.ErrFeedbackRequired)

	require.NoError(t, f.k.RejectSubmission(f.ctx, f.requester.String(), taskID, testHash(0x07)))

	sub, _ := f.k.GetSubmission(f.ctx, subID)
	require.Equal(t, types.SUBMISSION_STATUS_REJECTED, sub.Status)

	// The task stays under review so the worker can resubmit or dispute.
	task, _ := f.k.GetTask(f.ctx, taskID)
	require.Equal(t, types.TASK_STATUS_UNDER_REVIEW, task.Status)

	_, found := f.k.GetActiveSubmission(f.ctx, taskID)
	require.False(t, found)
}

func TestRequestRevisionAndResubmit(t *testing.T) {
	f := newMarketFixture(t)
	taskID, subID := f.taskUnderReview(t, math.NewInt(1_000_000))
	require.NoError(t, f.k.StartReview(f.ctx, f.requester.String(), taskID))

	count, err := f.k.RequestRevision(f.ctx, f.requester.String(), taskID, testHash(0x07))
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	sub, _ := f.k.GetSubmission(f.ctx, subID)
	require.Equal(t, types.SUBMISSION_STATUS_REVISION_REQUESTED, sub.Status)

	// Revised work reuses the submission record.
	require.NoError(t, f.k.ResubmitWork(f.ctx, f.worker.String(), taskID, testHash(0x08)))
	sub, _ = f.k.GetSubmission(f.ctx, subID)
	require.Equal(t, types.SUBMISSION_STATUS_PENDING, sub.Status)
	require.Equal(t, testHash(0x08), sub.WorkHash)
	require.EqualValues(t, 1, sub.RevisionCount)
	require.Nil(t, sub.ReviewStartedAt)
}

func TestRequestRevisionBudget(t *testing.T) {
	f := newMarketFixture(t)
	taskID, err := f.k.CreateTask(
		f.ctx, f.requester.String(), testHash(0x01),
		f.ctx.BlockTime().Add(30*24*time.Hour),
		0, 1, 0, math.NewInt(1_000_000),
	)
	require.NoError(t, err)
	require.NoError(t, f.k.ClaimTask(f.ctx, f.worker.String(), taskID))
	_, _, err = f.k.SubmitWork(f.ctx, f.worker.String(), taskID, testHash(0x05))
	require.NoError(t, err)
	require.NoError(t, f.k.StartReview(f.ctx, f.requester.String(), taskID))

	_, err = f.k.RequestRevision(f.ctx, f.requester.String(), taskID, testHash(0x07))
	require.NoError(t, err)
	require.NoError(t, f.k.ResubmitWork(f.ctx, f.worker.String(), taskID, testHash(0x08)))
	require.NoError(t, f.k.StartReview(f.ctx, f.requester.String(), taskID))

	_, err = f.k.RequestRevision(f.ctx, f.requester.String(), taskID, testHash(0x07))
	require.ErrorIs(t, err, types.ErrMaxRevisionsExceeded)
}

func TestResubmitAfterRejectionQualityGate(t *testing.T) {
	f := newMarketFixture(t)
	taskID, _ := f.taskUnderReview(t, math.NewInt(1_000_000))
	require.NoError(t, f.k.StartReview(f.ctx, f.requester.String(), taskID))
	require.NoError(t, f.k.RejectSubmission(f.ctx, f.requester.String(), taskID, testHash(0x07)))

	// A fresh submission after rejection opens a new record.
	require.NoError(t, f.k.ResubmitWork(f.ctx, f.worker.String(), taskID, testHash(0x09)))

	sub, found := f.k.GetActiveSubmission(f.ctx, taskID)
	require.True(t, found)
	require.Equal(t, types.SUBMISSION_STATUS_PENDING, sub.Status)
	require.Equal(t, testHash(0x09), sub.WorkHash)
}

func TestResubmitAfterRejectionBlockedByQualityFloor(t *testing.T) {
	f := newMarketFixture(t)
	scorer := testAddr()
	require.NoError(t, f.k.GrantCapability(f.ctx, f.k.GetAuthority(), scorer.String(), types.CAPABILITY_SCORER))

	taskID, _ := f.taskUnderReview(t, math.NewInt(1_000_000))

	// Push the worker's quality below the resubmission floor of 400.
	_, _, _, err := f.k.ApplyScoreUpdate(f.ctx, scorer.String(), f.worker.String(), 200, 900, 900, []byte{0x01})
	require.NoError(t, err)

	require.NoError(t, f.k.StartReview(f.ctx, f.requester.String(), taskID))
	require.NoError(t, f.k.RejectSubmission(f.ctx, f.requester.String(), taskID, testHash(0x07)))

	err = f.k.ResubmitWork(f.ctx, f.worker.String(), taskID, testHash(0x09))
	require.ErrorIs(t, err, types.ErrQualityTooLow)
}

func TestEndBlockerAutoAcceptsExpiredReviews(t *testing.T) {
	f := newMarketFixture(t)
	taskID, subID := f.taskUnderReview(t, math.NewInt(1_000_000))

	f.advance(3*24*time.Hour + time.Second)
	require.NoError(t, f.k.EndBlocker(f.ctx))

	sub, _ := f.k.GetSubmission(f.ctx, subID)
	require.Equal(t, types.SUBMISSION_STATUS_ACCEPTED, sub.Status)

	task, _ := f.k.GetTask(f.ctx, taskID)
	require.Equal(t, types.TASK_STATUS_COMPLETED, task.Status)

	workerAcct := f.k.GetEscrowAccount(f.ctx, f.worker.String())
	require.True(t, workerAcct.Available.Equal(math.NewInt(950_000)))
	requireConserved(t, f.k, f.ctx)
}

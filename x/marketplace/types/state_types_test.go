package types_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

func TestTaskStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    types.TaskStatus
		to      types.TaskStatus
		allowed bool
	}{
		{"open to in_progress", types.TASK_STATUS_OPEN, types.TASK_STATUS_IN_PROGRESS, true},
		{"open to cancelled", types.TASK_STATUS_OPEN, types.TASK_STATUS_CANCELLED, true},
		{"open to expired", types.TASK_STATUS_OPEN, types.TASK_STATUS_EXPIRED, true},
		{"open to pending_cancellation", types.TASK_STATUS_OPEN, types.TASK_STATUS_PENDING_CANCELLATION, true},
		{"open to under_review", types.TASK_STATUS_OPEN, types.TASK_STATUS_UNDER_REVIEW, false},
		{"open to completed", types.TASK_STATUS_OPEN, types.TASK_STATUS_COMPLETED, false},
		{"in_progress to under_review", types.TASK_STATUS_IN_PROGRESS, types.TASK_STATUS_UNDER_REVIEW, true},
		{"in_progress to completed", types.TASK_STATUS_IN_PROGRESS, types.TASK_STATUS_COMPLETED, false},
		{"in_progress to disputed", types.TASK_STATUS_IN_PROGRESS, types.TASK_STATUS_DISPUTED, false},
		{"under_review to completed", types.TASK_STATUS_UNDER_REVIEW, types.TASK_STATUS_COMPLETED, true},
		{"under_review to disputed", types.TASK_STATUS_UNDER_REVIEW, types.TASK_STATUS_DISPUTED, true},
		{"under_review re-entry", types.TASK_STATUS_UNDER_REVIEW, types.TASK_STATUS_UNDER_REVIEW, true},
		{"under_review to cancelled", types.TASK_STATUS_UNDER_REVIEW, types.TASK_STATUS_CANCELLED, false},
		{"disputed to completed", types.TASK_STATUS_DISPUTED, types.TASK_STATUS_COMPLETED, true},
		{"disputed to cancelled", types.TASK_STATUS_DISPUTED, types.TASK_STATUS_CANCELLED, true},
		{"disputed to open", types.TASK_STATUS_DISPUTED, types.TASK_STATUS_OPEN, false},
		{"pending_cancellation to cancelled", types.TASK_STATUS_PENDING_CANCELLATION, types.TASK_STATUS_CANCELLED, true},
		{"pending_cancellation resumes open", types.TASK_STATUS_PENDING_CANCELLATION, types.TASK_STATUS_OPEN, true},
		{"pending_cancellation resumes in_progress", types.TASK_STATUS_PENDING_CANCELLATION, types.TASK_STATUS_IN_PROGRESS, true},
		{"completed is terminal", types.TASK_STATUS_COMPLETED, types.TASK_STATUS_OPEN, false},
		{"cancelled is terminal", types.TASK_STATUS_CANCELLED, types.TASK_STATUS_OPEN, false},
		{"expired is terminal", types.TASK_STATUS_EXPIRED, types.TASK_STATUS_IN_PROGRESS, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.allowed, types.CanTransition(tt.from, tt.to))
		})
	}
}

func TestTaskStatusTerminal(t *testing.T) {
	terminal := []types.TaskStatus{
		types.TASK_STATUS_COMPLETED,
		types.TASK_STATUS_CANCELLED,
		types.TASK_STATUS_EXPIRED,
	}
	for _, s := range terminal {
		require.True(t, s.IsTerminal(), s.String())
	}

	active := []types.TaskStatus{
		types.TASK_STATUS_OPEN,
		types.TASK_STATUS_IN_PROGRESS,
		types.TASK_STATUS_UNDER_REVIEW,
		types.TASK_STATUS_DISPUTED,
		types.TASK_STATUS_PENDING_CANCELLATION,
	}
	for _, s := range active {
		require.False(t, s.IsTerminal(), s.String())
	}
}

func TestIsRedundantTransition(t *testing.T) {
	require.True(t, types.IsRedundantTransition(types.TASK_STATUS_UNDER_REVIEW, types.TASK_STATUS_UNDER_REVIEW))
	require.False(t, types.IsRedundantTransition(types.TASK_STATUS_OPEN, types.TASK_STATUS_OPEN))
	require.False(t, types.IsRedundantTransition(types.TASK_STATUS_UNDER_REVIEW, types.TASK_STATUS_COMPLETED))
}

func TestSubmissionStatusTerminal(t *testing.T) {
	require.True(t, types.SUBMISSION_STATUS_ACCEPTED.IsTerminal())
	require.True(t, types.SUBMISSION_STATUS_REJECTED.IsTerminal())
	require.False(t, types.SUBMISSION_STATUS_PENDING.IsTerminal())
	require.False(t, types.SUBMISSION_STATUS_UNDER_REVIEW.IsTerminal())
	require.False(t, types.SUBMISSION_STATUS_REVISION_REQUESTED.IsTerminal())
}

func TestTierForScore(t *testing.T) {
	tests := []struct {
		overall uint32
		want    types.Tier
	}{
		{0, types.TIER_BRONZE},
		{799, types.TIER_BRONZE},
		{800, types.TIER_SILVER},
		{1000, types.TIER_SILVER},
		{1399, types.TIER_SILVER},
		{1400, types.TIER_GOLD},
		{1799, types.TIER_GOLD},
		{1800, types.TIER_PLATINUM},
		{2000, types.TIER_PLATINUM},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, types.TierForScore(tt.overall), "overall %d", tt.overall)
	}
}

func TestTierPolicy(t *testing.T) {
	require.EqualValues(t, 2, types.TIER_BRONZE.MaxConcurrentTasks())
	require.EqualValues(t, 5, types.TIER_SILVER.MaxConcurrentTasks())
	require.EqualValues(t, 10, types.TIER_GOLD.MaxConcurrentTasks())
	require.EqualValues(t, 20, types.TIER_PLATINUM.MaxConcurrentTasks())

	require.Zero(t, types.TIER_PLATINUM.WithdrawalInterval())
	require.Less(t, types.TIER_GOLD.WithdrawalInterval(), types.TIER_SILVER.WithdrawalInterval())
	require.Less(t, types.TIER_SILVER.WithdrawalInterval(), types.TIER_BRONZE.WithdrawalInterval())
}

func TestComputeOverallScore(t *testing.T) {
	// 40/35/25 weighting.
	require.EqualValues(t, 1000, types.ComputeOverallScore(1000, 1000, 1000))
	require.EqualValues(t, 2000, types.ComputeOverallScore(2000, 2000, 2000))
	require.EqualValues(t, 0, types.ComputeOverallScore(0, 0, 0))
	require.EqualValues(t, 800, types.ComputeOverallScore(2000, 0, 0))
	require.EqualValues(t, 700, types.ComputeOverallScore(0, 2000, 0))
	require.EqualValues(t, 500, types.ComputeOverallScore(0, 0, 2000))
}

func TestValidContentHash(t *testing.T) {
	require.True(t, types.ValidContentHash(bytes.Repeat([]byte{0xAB}, 32)))
	require.False(t, types.ValidContentHash(nil))
	require.False(t, types.ValidContentHash([]byte{}))
	require.False(t, types.ValidContentHash(bytes.Repeat([]byte{0xAB}, 31)))
	require.False(t, types.ValidContentHash(bytes.Repeat([]byte{0xAB}, 33)))
}

func TestEnumStrings(t *testing.T) {
	require.Equal(t, "open", types.TASK_STATUS_OPEN.String())
	require.Equal(t, "pending_cancellation", types.TASK_STATUS_PENDING_CANCELLATION.String())
	require.Equal(t, "unknown", types.TaskStatus(99).String())

	require.Equal(t, "revision_requested", types.SUBMISSION_STATUS_REVISION_REQUESTED.String())
	require.Equal(t, "awaiting_arbitration", types.DISPUTE_STATUS_AWAITING_ARBITRATION.String())
	require.Equal(t, "full_refund_to_requester", types.DISPUTE_OUTCOME_FULL_REFUND_TO_REQUESTER.String())
	require.Equal(t, "platinum", types.TIER_PLATINUM.String())
	require.Equal(t, "arbitrator_authorizer", types.CAPABILITY_ARBITRATOR_AUTHORIZER.String())
	require.Equal(t, "unknown", types.Capability(42).String())
}

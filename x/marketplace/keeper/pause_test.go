package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

func TestPauseUnpause(t *testing.T) {
	f := newMarketFixture(t)
	require.False(t, f.k.IsPaused(f.ctx))

	require.NoError(t, f.k.Pause(f.ctx, f.k.GetAuthority(), "incident response"))
	require.True(t, f.k.IsPaused(f.ctx))

	state := f.k.GetPauseState(f.ctx)
	require.True(t, state.Paused)
	require.Equal(t, f.k.GetAuthority(), state.PausedBy)

	require.ErrorIs(t, f.k.Pause(f.ctx, f.k.GetAuthority(), "again"), types.ErrAlreadyPaused)

	require.NoError(t, f.k.Unpause(f.ctx, f.k.GetAuthority(), "resolved"))
	require.False(t, f.k.IsPaused(f.ctx))
	require.ErrorIs(t, f.k.Unpause(f.ctx, f.k.GetAuthority(), "resolved"), types.ErrNotPaused)
}

func TestPauseRequiresPauserCapability(t *testing.T) {
	f := newMarketFixture(t)

	require.ErrorIs(t, f.k.Pause(f.ctx, testAddr().String(), "no"), types.ErrUnauthorized)

	pauser := f.grantCap(t, types.CAPABILITY_PAUSER)
	require.NoError(t, f.k.Pause(f.ctx, pauser.String(), "incident"))
	require.ErrorIs(t, f.k.Unpause(f.ctx, testAddr().String(), "no"), types.ErrUnauthorized)
	require.NoError(t, f.k.Unpause(f.ctx, pauser.String(), "resolved"))
}

func TestPauseBlocksStateChangingOperations(t *testing.T) {
	f := newMarketFixture(t)
	taskID := f.claimedTask(t, math.NewInt(1_000_000))

	require.NoError(t, f.k.Pause(f.ctx, f.k.GetAuthority(), "incident"))

	_, err := f.k.CreateTask(
		f.ctx, f.requester.String(), testHash(0x01),
		f.ctx.BlockTime().Add(time.Hour), 0, 0, 0, math.NewInt(100_000),
	)
	require.ErrorIs(t, err, types.ErrModulePaused)

	require.ErrorIs(t, f.k.ClaimTask(f.ctx, testAddr().String(), taskID), types.ErrModulePaused)

	_, _, err = f.k.SubmitWork(f.ctx, f.worker.String(), taskID, testHash(0x05))
	require.ErrorIs(t, err, types.ErrModulePaused)

	_, err = f.k.RequestCancellation(f.ctx, f.requester.String(), taskID, testHash(0x03))
	require.ErrorIs(t, err, types.ErrModulePaused)

	err = f.k.GrantCapability(f.ctx, f.k.GetAuthority(), testAddr().String(), types.CAPABILITY_SCORER)
	require.ErrorIs(t, err, types.ErrModulePaused)
}

func TestEndBlockerSettlesWhilePaused(t *testing.T) {
	f := newMarketFixture(t)
	taskID, subID := f.taskUnderReview(t, math.NewInt(1_000_000))

	require.NoError(t, f.k.Pause(f.ctx, f.k.GetAuthority(), "incident"))

	// Review timeouts keep settling: the worker is already owed the funds.
	f.advance(3*24*time.Hour + time.Second)
	require.NoError(t, f.k.EndBlocker(f.ctx))

	sub, _ := f.k.GetSubmission(f.ctx, subID)
	require.Equal(t, types.SUBMISSION_STATUS_ACCEPTED, sub.Status)

	task, _ := f.k.GetTask(f.ctx, taskID)
	require.Equal(t, types.TASK_STATUS_COMPLETED, task.Status)
	requireConserved(t, f.k, f.ctx)
}

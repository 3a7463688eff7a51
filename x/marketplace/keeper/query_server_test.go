package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/taskchain-labs/taskchain/x/marketplace/keeper"
	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

func TestQueryParams(t *testing.T) {
	f := newMarketFixture(t)
	q := keeper.NewQueryServerImpl(*f.k)

	res, err := q.Params(f.ctx, &types.QueryParamsRequest{})
	require.NoError(t, err)
	require.Equal(t, types.DefaultParams(), res.Params)
}

func TestQueryTask(t *testing.T) {
	f := newMarketFixture(t)
	q := keeper.NewQueryServerImpl(*f.k)
	taskID := f.createTask(t, math.NewInt(1_000_000))

	res, err := q.Task(f.ctx, &types.QueryTaskRequest{TaskId: taskID})
	require.NoError(t, err)
	require.Equal(t, taskID, res.Task.Id)

	_, err = q.Task(f.ctx, &types.QueryTaskRequest{TaskId: 999})
	require.ErrorIs(t, err, types.ErrTaskNotFound)
}

func TestQueryTasksFiltered(t *testing.T) {
	f := newMarketFixture(t)
	q := keeper.NewQueryServerImpl(*f.k)

	openID := f.createTask(t, math.NewInt(100_000))
	claimedID := f.claimedTask(t, math.NewInt(100_000))

	res, err := q.Tasks(f.ctx, &types.QueryTasksRequest{Status: types.TASK_STATUS_OPEN})
	require.NoError(t, err)
	require.Len(t, res.Tasks, 1)
	require.Equal(t, openID, res.Tasks[0].Id)

	res, err = q.Tasks(f.ctx, &types.QueryTasksRequest{Worker: f.worker.String()})
	require.NoError(t, err)
	require.Len(t, res.Tasks, 1)
	require.Equal(t, claimedID, res.Tasks[0].Id)

	res, err = q.Tasks(f.ctx, &types.QueryTasksRequest{Requester: f.requester.String()})
	require.NoError(t, err)
	require.Len(t, res.Tasks, 2)
}

func TestQueryTaskSubmissions(t *testing.T) {
	f := newMarketFixture(t)
	q := keeper.NewQueryServerImpl(*f.k)
	taskID, subID := f.taskUnderReview(t, math.NewInt(1_000_000))

	res, err := q.TaskSubmissions(f.ctx, &types.QueryTaskSubmissionsRequest{TaskId: taskID})
	require.NoError(t, err)
	require.Len(t, res.Submissions, 1)
	require.Equal(t, subID, res.Submissions[0].Id)
}

func TestQueryReputationSeedsDefaults(t *testing.T) {
	f := newMarketFixture(t)
	q := keeper.NewQueryServerImpl(*f.k)

	res, err := q.Reputation(f.ctx, &types.QueryReputationRequest{Address: testAddr().String()})
	require.NoError(t, err)
	require.EqualValues(t, 1000, res.Score.Overall)
	require.Equal(t, types.TIER_SILVER, res.Tier)
}

func TestQueryEscrowAccountWithdrawableAt(t *testing.T) {
	f := newMarketFixture(t)
	q := keeper.NewQueryServerImpl(*f.k)
	taskID, _ := f.taskUnderReview(t, math.NewInt(1_000_000))
	require.NoError(t, f.k.AcceptSubmission(f.ctx, f.requester.String(), taskID, nil))

	res, err := q.EscrowAccount(f.ctx, &types.QueryEscrowAccountRequest{Address: f.worker.String()})
	require.NoError(t, err)
	require.True(t, res.Account.Available.Equal(math.NewInt(950_000)))
	// No withdrawal yet, so no cadence clock is running.
	require.Zero(t, res.WithdrawableAt)

	require.NoError(t, f.k.Withdraw(f.ctx, f.worker.String(), math.NewInt(100_000)))

	res, err = q.EscrowAccount(f.ctx, &types.QueryEscrowAccountRequest{Address: f.worker.String()})
	require.NoError(t, err)
	// Silver tier: next withdrawal three days out.
	require.Equal(t, f.ctx.BlockTime().Add(3*24*time.Hour).Unix(), res.WithdrawableAt)
}

func TestQueryLedgerTotals(t *testing.T) {
	f := newMarketFixture(t)
	q := keeper.NewQueryServerImpl(*f.k)
	taskID, _ := f.taskUnderReview(t, math.NewInt(1_000_000))
	require.NoError(t, f.k.AcceptSubmission(f.ctx, f.requester.String(), taskID, nil))
	require.NoError(t, f.k.Withdraw(f.ctx, f.worker.String(), math.NewInt(100_000)))

	res, err := q.LedgerTotals(f.ctx, &types.QueryLedgerTotalsRequest{})
	require.NoError(t, err)
	require.True(t, res.Totals.TotalDeposited.Equal(math.NewInt(1_000_000)))
	require.True(t, res.Totals.TotalWithdrawn.Equal(math.NewInt(100_000)))
	require.True(t, res.Totals.FeePool.Equal(math.NewInt(50_000)))
	require.True(t, res.Held.Equal(math.NewInt(900_000)))
}

func TestQueryPauseState(t *testing.T) {
	f := newMarketFixture(t)
	q := keeper.NewQueryServerImpl(*f.k)

	res, err := q.PauseState(f.ctx, &types.QueryPauseStateRequest{})
	require.NoError(t, err)
	require.False(t, res.State.Paused)

	require.NoError(t, f.k.Pause(f.ctx, f.k.GetAuthority(), "incident"))
	res, err = q.PauseState(f.ctx, &types.QueryPauseStateRequest{})
	require.NoError(t, err)
	require.True(t, res.State.Paused)
}

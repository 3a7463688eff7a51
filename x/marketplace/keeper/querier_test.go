package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	abci "github.com/cometbft/cometbft/abci/types"
	"github.com/stretchr/testify/require"

	"github.com/taskchain-labs/taskchain/x/marketplace/keeper"
	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

func TestLegacyQuerier(t *testing.T) {
	f := newMarketFixture(t)
	querier := keeper.NewQuerier(*f.k)
	taskID := f.createTask(t, math.NewInt(1_000_000))

	t.Run("params", func(t *testing.T) {
		bz, err := querier(f.ctx, []string{types.QueryParams}, abci.RequestQuery{})
		require.NoError(t, err)

		var res types.QueryParamsResponse
		require.NoError(t, types.ModuleCdc.UnmarshalJSON(bz, &res))
		require.Equal(t, types.DefaultParams(), res.Params)
	})

	t.Run("task", func(t *testing.T) {
		data, err := types.ModuleCdc.MarshalJSON(&types.QueryTaskRequest{TaskId: taskID})
		require.NoError(t, err)

		bz, err := querier(f.ctx, []string{types.QueryTask}, abci.RequestQuery{Data: data})
		require.NoError(t, err)

		var res types.QueryTaskResponse
		require.NoError(t, types.ModuleCdc.UnmarshalJSON(bz, &res))
		require.Equal(t, taskID, res.Task.Id)
	})

	t.Run("malformed request data", func(t *testing.T) {
		_, err := querier(f.ctx, []string{types.QueryTask}, abci.RequestQuery{Data: []byte("{")})
		require.ErrorIs(t, err, types.ErrValidationFailed)
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		_, err := querier(f.ctx, []string{"nope"}, abci.RequestQuery{})
		require.ErrorIs(t, err, types.ErrValidationFailed)
	})

	t.Run("missing endpoint", func(t *testing.T) {
		_, err := querier(f.ctx, nil, abci.RequestQuery{})
		require.ErrorIs(t, err, types.ErrValidationFailed)
	})
}

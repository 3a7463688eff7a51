package keeper

import (
	abci "github.com/cometbft/cometbft/abci/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

// NewQuerier returns the legacy querier for the marketplace module. Requests
// and responses are Amino JSON.
func NewQuerier(k Keeper) func(ctx sdk.Context, path []string, req abci.RequestQuery) ([]byte, error) {
	qs := NewQueryServerImpl(k)

	return func(ctx sdk.Context, path []string, req abci.RequestQuery) ([]byte, error) {
		if len(path) == 0 {
			return nil, types.ErrValidationFailed.Wrap("missing query endpoint")
		}

		var (
			res interface{}
			err error
		)

		switch path[0] {
		case types.QueryParams:
			res, err = qs.Params(ctx, &types.QueryParamsRequest{})
		case types.QueryTask:
			var q types.QueryTaskRequest
			if err := types.ModuleCdc.UnmarshalJSON(req.Data, &q); err != nil {
				return nil, types.ErrValidationFailed.Wrapf("malformed request: %v", err)
			}
			res, err = qs.Task(ctx, &q)
		case types.QueryTasks:
			var q types.QueryTasksRequest
			if err := types.ModuleCdc.UnmarshalJSON(req.Data, &q); err != nil {
				return nil, types.ErrValidationFailed.Wrapf("malformed request: %v", err)
			}
			res, err = qs.Tasks(ctx, &q)
		case types.QueryCancellation:
			var q types.QueryCancellationRequest
			if err := types.ModuleCdc.UnmarshalJSON(req.Data, &q); err != nil {
				return nil, types.ErrValidationFailed.Wrapf("malformed request: %v", err)
			}
			res, err = qs.Cancellation(ctx, &q)
		case types.QuerySubmission:
			var q types.QuerySubmissionRequest
			if err := types.ModuleCdc.UnmarshalJSON(req.Data, &q); err != nil {
				return nil, types.ErrValidationFailed.Wrapf("malformed request: %v", err)
			}
			res, err = qs.Submission(ctx, &q)
		case types.QueryTaskSubmissions:
			var q types.QueryTaskSubmissionsRequest
			if err := types.ModuleCdc.UnmarshalJSON(req.Data, &q); err != nil {
				return nil, types.ErrValidationFailed.Wrapf("malformed request: %v", err)
			}
			res, err = qs.TaskSubmissions(ctx, &q)
		case types.QueryDispute:
			var q types.QueryDisputeRequest
			if err := types.ModuleCdc.UnmarshalJSON(req.Data, &q); err != nil {
				return nil, types.ErrValidationFailed.Wrapf("malformed request: %v", err)
			}
			res, err = qs.Dispute(ctx, &q)
		case types.QueryTaskDispute:
			var q types.QueryTaskDisputeRequest
			if err := types.ModuleCdc.UnmarshalJSON(req.Data, &q); err != nil {
				return nil, types.ErrValidationFailed.Wrapf("malformed request: %v", err)
			}
			res, err = qs.TaskDispute(ctx, &q)
		case types.QueryReputation:
			var q types.QueryReputationRequest
			if err := types.ModuleCdc.UnmarshalJSON(req.Data, &q); err != nil {
				return nil, types.ErrValidationFailed.Wrapf("malformed request: %v", err)
			}
			res, err = qs.Reputation(ctx, &q)
		case types.QueryEscrowAccount:
			var q types.QueryEscrowAccountRequest
			if err := types.ModuleCdc.UnmarshalJSON(req.Data, &q); err != nil {
				return nil, types.ErrValidationFailed.Wrapf("malformed request: %v", err)
			}
			res, err = qs.EscrowAccount(ctx, &q)
		case types.QueryLedgerTotals:
			res, err = qs.LedgerTotals(ctx, &types.QueryLedgerTotalsRequest{})
		case types.QueryCapabilities:
			var q types.QueryCapabilitiesRequest
			if err := types.ModuleCdc.UnmarshalJSON(req.Data, &q); err != nil {
				return nil, types.ErrValidationFailed.Wrapf("malformed request: %v", err)
			}
			res, err = qs.Capabilities(ctx, &q)
		case types.QueryPauseState:
			res, err = qs.PauseState(ctx, &types.QueryPauseStateRequest{})
		default:
			return nil, types.ErrValidationFailed.Wrapf("unknown query endpoint %s", path[0])
		}
		if err != nil {
			return nil, err
		}

		bz, err := types.ModuleCdc.MarshalJSON(res)
		if err != nil {
			return nil, types.ErrValidationFailed.Wrapf("failed to marshal response: %v", err)
		}
		return bz, nil
	}
}

package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

type queryServer struct {
	Keeper
}

// NewQueryServerImpl returns an implementation of the marketplace QueryServer
// interface for the provided Keeper.
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

func (q queryServer) Params(ctx context.Context, _ *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	return &types.QueryParamsResponse{Params: q.GetParams(ctx)}, nil
}

func (q queryServer) Task(ctx context.Context, req *types.QueryTaskRequest) (*types.QueryTaskResponse, error) {
	task, found := q.GetTask(ctx, req.TaskId)
	if !found {
		return nil, types.ErrTaskNotFound.Wrapf("id %d", req.TaskId)
	}
	return &types.QueryTaskResponse{Task: task}, nil
}

func (q queryServer) Tasks(ctx context.Context, req *types.QueryTasksRequest) (*types.QueryTasksResponse, error) {
	tasks := make([]types.Task, 0)
	for _, task := range q.GetAllTasks(ctx) {
		if req.Status != types.TASK_STATUS_UNSPECIFIED && task.Status != req.Status {
			continue
		}
		if req.Requester != "" && task.Requester != req.Requester {
			continue
		}
		if req.Worker != "" && task.Worker != req.Worker {
			continue
		}
		tasks = append(tasks, task)
	}
	return &types.QueryTasksResponse{Tasks: tasks}, nil
}

func (q queryServer) Cancellation(ctx context.Context, req *types.QueryCancellationRequest) (*types.QueryCancellationResponse, error) {
	request, found := q.GetCancellationRequest(ctx, req.TaskId)
	if !found {
		return nil, types.ErrRequestNotFound.Wrapf("task %d", req.TaskId)
	}
	return &types.QueryCancellationResponse{Request: request}, nil
}

func (q queryServer) Submission(ctx context.Context, req *types.QuerySubmissionRequest) (*types.QuerySubmissionResponse, error) {
	sub, found := q.GetSubmission(ctx, req.SubmissionId)
	if !found {
		return nil, types.ErrSubmissionNotFound.Wrapf("id %d", req.SubmissionId)
	}
	return &types.QuerySubmissionResponse{Submission: sub}, nil
}

func (q queryServer) TaskSubmissions(ctx context.Context, req *types.QueryTaskSubmissionsRequest) (*types.QueryTaskSubmissionsResponse, error) {
	if _, found := q.GetTask(ctx, req.TaskId); !found {
		return nil, types.ErrTaskNotFound.Wrapf("id %d", req.TaskId)
	}

	store := q.getStore(ctx)
	prefix := SubmissionByTaskPrefixForTask(req.TaskId)
	iterator := store.Iterator(prefix, endOfPrefix(prefix))
	defer iterator.Close()

	subs := make([]types.Submission, 0)
	for ; iterator.Valid(); iterator.Next() {
		submissionID := GetIDFromBytes(iterator.Key()[len(prefix):])
		if sub, found := q.GetSubmission(ctx, submissionID); found {
			subs = append(subs, sub)
		}
	}
	return &types.QueryTaskSubmissionsResponse{Submissions: subs}, nil
}

func (q queryServer) Dispute(ctx context.Context, req *types.QueryDisputeRequest) (*types.QueryDisputeResponse, error) {
	dispute, found := q.GetDispute(ctx, req.DisputeId)
	if !found {
		return nil, types.ErrDisputeNotFound.Wrapf("id %d", req.DisputeId)
	}
	return &types.QueryDisputeResponse{Dispute: dispute}, nil
}

func (q queryServer) TaskDispute(ctx context.Context, req *types.QueryTaskDisputeRequest) (*types.QueryTaskDisputeResponse, error) {
	dispute, found := q.GetDisputeByTask(ctx, req.TaskId)
	if !found {
		return nil, types.ErrDisputeNotFound.Wrapf("task %d", req.TaskId)
	}
	return &types.QueryTaskDisputeResponse{Dispute: dispute}, nil
}

func (q queryServer) Reputation(ctx context.Context, req *types.QueryReputationRequest) (*types.QueryReputationResponse, error) {
	if _, err := sdk.AccAddressFromBech32(req.Address); err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("%s", req.Address)
	}
	score := q.GetReputation(ctx, req.Address)
	return &types.QueryReputationResponse{
		Score: score,
		Tier:  types.TierForScore(score.Overall),
	}, nil
}

func (q queryServer) EscrowAccount(ctx context.Context, req *types.QueryEscrowAccountRequest) (*types.QueryEscrowAccountResponse, error) {
	if _, err := sdk.AccAddressFromBech32(req.Address); err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("%s", req.Address)
	}
	acct := q.GetEscrowAccount(ctx, req.Address)

	var withdrawableAt int64
	if !acct.LastWithdrawalAt.IsZero() {
		tier := types.TierForScore(q.GetReputation(ctx, req.Address).Overall)
		if interval := tier.WithdrawalInterval(); interval > 0 {
			withdrawableAt = acct.LastWithdrawalAt.Add(interval).Unix()
		}
	}
	return &types.QueryEscrowAccountResponse{Account: acct, WithdrawableAt: withdrawableAt}, nil
}

func (q queryServer) LedgerTotals(ctx context.Context, _ *types.QueryLedgerTotalsRequest) (*types.QueryLedgerTotalsResponse, error) {
	totals := q.GetLedgerTotals(ctx)
	return &types.QueryLedgerTotalsResponse{
		Totals: totals,
		Held:   totals.TotalDeposited.Sub(totals.TotalWithdrawn),
	}, nil
}

func (q queryServer) Capabilities(ctx context.Context, req *types.QueryCapabilitiesRequest) (*types.QueryCapabilitiesResponse, error) {
	grants := q.GetAllCapabilityGrants(ctx)
	if req.Address == "" {
		return &types.QueryCapabilitiesResponse{Grants: grants}, nil
	}

	filtered := make([]types.CapabilityGrant, 0, len(grants))
	for _, grant := range grants {
		if grant.Address == req.Address {
			filtered = append(filtered, grant)
		}
	}
	return &types.QueryCapabilitiesResponse{Grants: filtered}, nil
}

func (q queryServer) PauseState(ctx context.Context, _ *types.QueryPauseStateRequest) (*types.QueryPauseStateResponse, error) {
	state := q.GetPauseState(ctx)
	return &types.QueryPauseStateResponse{State: state}, nil
}

package keeper

import (
	"context"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the marketplace MsgServer
// interface for the provided Keeper.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

func (m msgServer) CreateTask(ctx context.Context, msg *types.MsgCreateTask) (*types.MsgCreateTaskResponse, error) {
	taskID, err := m.Keeper.CreateTask(
		ctx,
		msg.Requester,
		msg.RequirementsHash,
		msg.Deadline,
		msg.MinReputation,
		msg.MaxRevisions,
		msg.ReviewPeriodSeconds,
		msg.Deposit,
	)
	if err != nil {
		return nil, err
	}
	return &types.MsgCreateTaskResponse{TaskId: taskID}, nil
}

func (m msgServer) ClaimTask(ctx context.Context, msg *types.MsgClaimTask) (*types.MsgClaimTaskResponse, error) {
	if err := m.Keeper.ClaimTask(ctx, msg.Worker, msg.TaskId); err != nil {
		return nil, err
	}
	return &types.MsgClaimTaskResponse{}, nil
}

func (m msgServer) RequestCancellation(ctx context.Context, msg *types.MsgRequestCancellation) (*types.MsgRequestCancellationResponse, error) {
	immediate, err := m.Keeper.RequestCancellation(ctx, msg.Requester, msg.TaskId, msg.ReasonHash)
	if err != nil {
		return nil, err
	}
	return &types.MsgRequestCancellationResponse{Immediate: immediate}, nil
}

func (m msgServer) ApproveCancellation(ctx context.Context, msg *types.MsgApproveCancellation) (*types.MsgApproveCancellationResponse, error) {
	if err := m.Keeper.ApproveCancellation(ctx, msg.Moderator, msg.TaskId); err != nil {
		return nil, err
	}
	return &types.MsgApproveCancellationResponse{}, nil
}

func (m msgServer) RejectCancellation(ctx context.Context, msg *types.MsgRejectCancellation) (*types.MsgRejectCancellationResponse, error) {
	if err := m.Keeper.RejectCancellation(ctx, msg.Moderator, msg.TaskId); err != nil {
		return nil, err
	}
	return &types.MsgRejectCancellationResponse{}, nil
}

// ProcessExpiredCancellation is permissionless. The signing caller pays gas
// but plays no part in the state transition itself.
func (m msgServer) ProcessExpiredCancellation(ctx context.Context, msg *types.MsgProcessExpiredCancellation) (*types.MsgProcessExpiredCancellationResponse, error) {
	if err := m.Keeper.ProcessExpiredCancellation(ctx, msg.TaskId); err != nil {
		return nil, err
	}
	return &types.MsgProcessExpiredCancellationResponse{}, nil
}

func (m msgServer) SubmitWork(ctx context.Context, msg *types.MsgSubmitWork) (*types.MsgSubmitWorkResponse, error) {
	submissionID, late, err := m.Keeper.SubmitWork(ctx, msg.Worker, msg.TaskId, msg.WorkHash)
	if err != nil {
		return nil, err
	}
	return &types.MsgSubmitWorkResponse{SubmissionId: submissionID, Late: late}, nil
}

func (m msgServer) StartReview(ctx context.Context, msg *types.MsgStartReview) (*types.MsgStartReviewResponse, error) {
	if err := m.Keeper.StartReview(ctx, msg.Requester, msg.TaskId); err != nil {
		return nil, err
	}
	return &types.MsgStartReviewResponse{}, nil
}

func (m msgServer) AcceptSubmission(ctx context.Context, msg *types.MsgAcceptSubmission) (*types.MsgAcceptSubmissionResponse, error) {
	if err := m.Keeper.AcceptSubmission(ctx, msg.Requester, msg.TaskId, msg.FeedbackHash); err != nil {
		return nil, err
	}
	return &types.MsgAcceptSubmissionResponse{}, nil
}

func (m msgServer) RejectSubmission(ctx context.Context, msg *types.MsgRejectSubmission) (*types.MsgRejectSubmissionResponse, error) {
	if err := m.Keeper.RejectSubmission(ctx, msg.Requester, msg.TaskId, msg.FeedbackHash); err != nil {
		return nil, err
	}
	return &types.MsgRejectSubmissionResponse{}, nil
}

func (m msgServer) RequestRevision(ctx context.Context, msg *types.MsgRequestRevision) (*types.MsgRequestRevisionResponse, error) {
	count, err := m.Keeper.RequestRevision(ctx, msg.Requester, msg.TaskId, msg.FeedbackHash)
	if err != nil {
		return nil, err
	}
	return &types.MsgRequestRevisionResponse{RevisionCount: count}, nil
}

func (m msgServer) ResubmitWork(ctx context.Context, msg *types.MsgResubmitWork) (*types.MsgResubmitWorkResponse, error) {
	if err := m.Keeper.ResubmitWork(ctx, msg.Worker, msg.TaskId, msg.WorkHash); err != nil {
		return nil, err
	}
	return &types.MsgResubmitWorkResponse{}, nil
}

func (m msgServer) RaiseDispute(ctx context.Context, msg *types.MsgRaiseDispute) (*types.MsgRaiseDisputeResponse, error) {
	disputeID, err := m.Keeper.RaiseDispute(ctx, msg.Initiator, msg.TaskId, msg.Reason, msg.EvidenceHash)
	if err != nil {
		return nil, err
	}
	return &types.MsgRaiseDisputeResponse{DisputeId: disputeID}, nil
}

func (m msgServer) SubmitDisputeAnalysis(ctx context.Context, msg *types.MsgSubmitDisputeAnalysis) (*types.MsgSubmitDisputeAnalysisResponse, error) {
	autoResolved, err := m.Keeper.SubmitDisputeAnalysis(
		ctx,
		msg.Analyst,
		msg.DisputeId,
		msg.Confidence,
		msg.RecommendedOutcome,
		msg.RecommendationHash,
	)
	if err != nil {
		return nil, err
	}
	return &types.MsgSubmitDisputeAnalysisResponse{AutoResolved: autoResolved}, nil
}

func (m msgServer) AssignArbitrator(ctx context.Context, msg *types.MsgAssignArbitrator) (*types.MsgAssignArbitratorResponse, error) {
	if err := m.Keeper.AssignArbitrator(ctx, msg.Authority, msg.DisputeId, msg.Arbitrator); err != nil {
		return nil, err
	}
	return &types.MsgAssignArbitratorResponse{}, nil
}

func (m msgServer) ResolveDispute(ctx context.Context, msg *types.MsgResolveDispute) (*types.MsgResolveDisputeResponse, error) {
	err := m.Keeper.ResolveDispute(
		ctx,
		msg.Arbitrator,
		msg.DisputeId,
		msg.Outcome,
		msg.PaymentPercentage,
		msg.ReasoningHash,
	)
	if err != nil {
		return nil, err
	}
	return &types.MsgResolveDisputeResponse{}, nil
}

func (m msgServer) AppealDispute(ctx context.Context, msg *types.MsgAppealDispute) (*types.MsgAppealDisputeResponse, error) {
	if err := m.Keeper.AppealDispute(ctx, msg.Appellant, msg.DisputeId, msg.EvidenceHash); err != nil {
		return nil, err
	}
	return &types.MsgAppealDisputeResponse{}, nil
}

func (m msgServer) Withdraw(ctx context.Context, msg *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	if err := m.Keeper.Withdraw(ctx, msg.Address, msg.Amount); err != nil {
		return nil, err
	}
	return &types.MsgWithdrawResponse{}, nil
}

func (m msgServer) ApplyScoreUpdate(ctx context.Context, msg *types.MsgApplyScoreUpdate) (*types.MsgApplyScoreUpdateResponse, error) {
	overall, tier, changed, err := m.Keeper.ApplyScoreUpdate(
		ctx,
		msg.Scorer,
		msg.Address,
		msg.Quality,
		msg.Reliability,
		msg.Professionalism,
		msg.Proof,
	)
	if err != nil {
		return nil, err
	}
	return &types.MsgApplyScoreUpdateResponse{Overall: overall, Tier: tier, TierChanged: changed}, nil
}

func (m msgServer) AdminAdjustScore(ctx context.Context, msg *types.MsgAdminAdjustScore) (*types.MsgAdminAdjustScoreResponse, error) {
	if err := m.Keeper.AdminAdjustScore(ctx, msg.Admin, msg.Address, msg.NewOverall, msg.Reason); err != nil {
		return nil, err
	}
	return &types.MsgAdminAdjustScoreResponse{}, nil
}

func (m msgServer) GrantCapability(ctx context.Context, msg *types.MsgGrantCapability) (*types.MsgGrantCapabilityResponse, error) {
	if err := m.Keeper.GrantCapability(ctx, msg.Admin, msg.Address, msg.Capability); err != nil {
		return nil, err
	}
	return &types.MsgGrantCapabilityResponse{}, nil
}

func (m msgServer) RevokeCapability(ctx context.Context, msg *types.MsgRevokeCapability) (*types.MsgRevokeCapabilityResponse, error) {
	if err := m.Keeper.RevokeCapability(ctx, msg.Admin, msg.Address, msg.Capability); err != nil {
		return nil, err
	}
	return &types.MsgRevokeCapabilityResponse{}, nil
}

func (m msgServer) Pause(ctx context.Context, msg *types.MsgPause) (*types.MsgPauseResponse, error) {
	if err := m.Keeper.Pause(ctx, msg.Pauser, msg.Reason); err != nil {
		return nil, err
	}
	return &types.MsgPauseResponse{}, nil
}

func (m msgServer) Unpause(ctx context.Context, msg *types.MsgUnpause) (*types.MsgUnpauseResponse, error) {
	if err := m.Keeper.Unpause(ctx, msg.Pauser, msg.Reason); err != nil {
		return nil, err
	}
	return &types.MsgUnpauseResponse{}, nil
}

func (m msgServer) UpdateParams(ctx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if msg.Authority != m.GetAuthority() {
		return nil, types.ErrUnauthorized.Wrapf("expected authority %s, got %s", m.GetAuthority(), msg.Authority)
	}
	if err := m.Keeper.SetParams(ctx, msg.Params); err != nil {
		return nil, err
	}
	return &types.MsgUpdateParamsResponse{}, nil
}

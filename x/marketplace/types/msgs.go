package types

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/gogoproto/proto"
)

// Message type URLs
const (
	TypeMsgCreateTask                 = "create_task"
	TypeMsgClaimTask                  = "claim_task"
	TypeMsgRequestCancellation        = "request_cancellation"
	TypeMsgApproveCancellation        = "approve_cancellation"
	TypeMsgRejectCancellation         = "reject_cancellation"
	TypeMsgProcessExpiredCancellation = "process_expired_cancellation"
	TypeMsgSubmitWork                 = "submit_work"
	TypeMsgStartReview                = "start_review"
	TypeMsgAcceptSubmission           = "accept_submission"
	TypeMsgRejectSubmission           = "reject_submission"
	TypeMsgRequestRevision            = "request_revision"
	TypeMsgResubmitWork               = "resubmit_work"
	TypeMsgRaiseDispute               = "raise_dispute"
	TypeMsgSubmitDisputeAnalysis      = "submit_dispute_analysis"
	TypeMsgAssignArbitrator           = "assign_arbitrator"
	TypeMsgResolveDispute             = "resolve_dispute"
	TypeMsgAppealDispute              = "appeal_dispute"
	TypeMsgWithdraw                   = "withdraw"
	TypeMsgApplyScoreUpdate           = "apply_score_update"
	TypeMsgAdminAdjustScore           = "admin_adjust_score"
	TypeMsgGrantCapability            = "grant_capability"
	TypeMsgRevokeCapability           = "revoke_capability"
	TypeMsgPause                      = "pause"
	TypeMsgUnpause                    = "unpause"
	TypeMsgUpdateParams               = "update_params"
)

// MsgCreateTask creates a task and escrows its deposit.
type MsgCreateTask struct {
	Requester           string    `json:"requester"`
	RequirementsHash    []byte    `json:"requirements_hash"`
	Deadline            time.Time `json:"deadline"`
	MinReputation       uint32    `json:"min_reputation"`
	MaxRevisions        uint32    `json:"max_revisions"`
	ReviewPeriodSeconds uint64    `json:"review_period_seconds"`
	Deposit             math.Int  `json:"deposit"`
}

type MsgCreateTaskResponse struct {
	TaskId uint64 `json:"task_id"`
}

// MsgClaimTask assigns the calling worker to an open task.
type MsgClaimTask struct {
	Worker string `json:"worker"`
	TaskId uint64 `json:"task_id"`
}

type MsgClaimTaskResponse struct{}

// MsgRequestCancellation opens a moderated cancellation for a task.
type MsgRequestCancellation struct {
	Requester  string `json:"requester"`
	TaskId     uint64 `json:"task_id"`
	ReasonHash []byte `json:"reason_hash"`
}

type MsgRequestCancellationResponse struct {
	// Immediate reports that no moderator was configured and the task was
	// cancelled and refunded right away.
	Immediate bool `json:"immediate"`
}

// MsgApproveCancellation is the moderator's approval of a pending
// cancellation.
type MsgApproveCancellation struct {
	Moderator string `json:"moderator"`
	TaskId    uint64 `json:"task_id"`
}

type MsgApproveCancellationResponse struct{}

// MsgRejectCancellation is the moderator's rejection of a pending
// cancellation.
type MsgRejectCancellation struct {
	Moderator string `json:"moderator"`
	TaskId    uint64 `json:"task_id"`
}

type MsgRejectCancellationResponse struct{}

// MsgProcessExpiredCancellation auto-approves a cancellation whose review
// window elapsed unprocessed. Anyone may send it.
type MsgProcessExpiredCancellation struct {
	Caller string `json:"caller"`
	TaskId uint64 `json:"task_id"`
}

type MsgProcessExpiredCancellationResponse struct{}

// MsgSubmitWork submits a deliverable for an in-progress task.
type MsgSubmitWork struct {
	Worker   string `json:"worker"`
	TaskId   uint64 `json:"task_id"`
	WorkHash []byte `json:"work_hash"`
}

type MsgSubmitWorkResponse struct {
	SubmissionId uint64 `json:"submission_id"`
	Late         bool   `json:"late"`
}

// MsgStartReview moves a pending submission into review.
type MsgStartReview struct {
	Requester string `json:"requester"`
	TaskId    uint64 `json:"task_id"`
}

type MsgStartReviewResponse struct{}

// MsgAcceptSubmission accepts the active submission and releases escrow.
type MsgAcceptSubmission struct {
	Requester    string `json:"requester"`
	TaskId       uint64 `json:"task_id"`
	FeedbackHash []byte `json:"feedback_hash,omitempty"`
}

type MsgAcceptSubmissionResponse struct{}

// MsgRejectSubmission flatly rejects the active submission.
type MsgRejectSubmission struct {
	Requester    string `json:"requester"`
	TaskId       uint64 `json:"task_id"`
	FeedbackHash []byte `json:"feedback_hash"`
}

type MsgRejectSubmissionResponse struct{}

// MsgRequestRevision asks the worker for another revision.
type MsgRequestRevision struct {
	Requester    string `json:"requester"`
	TaskId       uint64 `json:"task_id"`
	FeedbackHash []byte `json:"feedback_hash"`
}

type MsgRequestRevisionResponse struct {
	RevisionCount uint32 `json:"revision_count"`
}

// MsgResubmitWork answers a revision request with new work.
type MsgResubmitWork struct {
	Worker   string `json:"worker"`
	TaskId   uint64 `json:"task_id"`
	WorkHash []byte `json:"work_hash"`
}

type MsgResubmitWorkResponse struct{}

// MsgRaiseDispute opens a dispute over a task's active submission.
type MsgRaiseDispute struct {
	Initiator    string        `json:"initiator"`
	TaskId       uint64        `json:"task_id"`
	Reason       DisputeReason `json:"reason"`
	EvidenceHash []byte        `json:"evidence_hash"`
}

type MsgRaiseDisputeResponse struct {
	DisputeId uint64 `json:"dispute_id"`
}

// MsgSubmitDisputeAnalysis delivers the automated recommendation for an open
// dispute.
type MsgSubmitDisputeAnalysis struct {
	Analyst            string         `json:"analyst"`
	DisputeId          uint64         `json:"dispute_id"`
	Confidence         uint32         `json:"confidence"`
	RecommendedOutcome DisputeOutcome `json:"recommended_outcome"`
	RecommendationHash []byte         `json:"recommendation_hash"`
}

type MsgSubmitDisputeAnalysisResponse struct {
	AutoResolved bool `json:"auto_resolved"`
}

// MsgAssignArbitrator assigns a pre-authorized arbitrator to a dispute.
type MsgAssignArbitrator struct {
	Authority  string `json:"authority"`
	DisputeId  uint64 `json:"dispute_id"`
	Arbitrator string `json:"arbitrator"`
}

type MsgAssignArbitratorResponse struct{}

// MsgResolveDispute is the assigned arbitrator's ruling.
type MsgResolveDispute struct {
	Arbitrator        string         `json:"arbitrator"`
	DisputeId         uint64         `json:"dispute_id"`
	Outcome           DisputeOutcome `json:"outcome"`
	PaymentPercentage uint32         `json:"payment_percentage"`
	ReasoningHash     []byte         `json:"reasoning_hash"`
}

type MsgResolveDisputeResponse struct{}

// MsgAppealDispute appeals a resolved dispute over the appeal value
// threshold.
type MsgAppealDispute struct {
	Appellant    string `json:"appellant"`
	DisputeId    uint64 `json:"dispute_id"`
	EvidenceHash []byte `json:"evidence_hash"`
}

type MsgAppealDisputeResponse struct{}

// MsgWithdraw moves available ledger balance out to the caller's account.
type MsgWithdraw struct {
	Address string   `json:"address"`
	Amount  math.Int `json:"amount"`
}

type MsgWithdrawResponse struct{}

// MsgApplyScoreUpdate applies a signed score triple from the off-chain
// scoring service.
type MsgApplyScoreUpdate struct {
	Scorer          string `json:"scorer"`
	Address         string `json:"address"`
	Quality         uint32 `json:"quality"`
	Reliability     uint32 `json:"reliability"`
	Professionalism uint32 `json:"professionalism"`
	Proof           []byte `json:"proof"`
}

type MsgApplyScoreUpdateResponse struct {
	Overall     uint32 `json:"overall"`
	Tier        Tier   `json:"tier"`
	TierChanged bool   `json:"tier_changed"`
}

// MsgAdminAdjustScore is the bounded emergency override of an overall score.
type MsgAdminAdjustScore struct {
	Admin      string `json:"admin"`
	Address    string `json:"address"`
	NewOverall uint32 `json:"new_overall"`
	Reason     string `json:"reason"`
}

type MsgAdminAdjustScoreResponse struct{}

// MsgGrantCapability grants an authorization capability to an identity.
type MsgGrantCapability struct {
	Admin      string     `json:"admin"`
	Address    string     `json:"address"`
	Capability Capability `json:"capability"`
}

type MsgGrantCapabilityResponse struct{}

// MsgRevokeCapability revokes a previously granted capability.
type MsgRevokeCapability struct {
	Admin      string     `json:"admin"`
	Address    string     `json:"address"`
	Capability Capability `json:"capability"`
}

type MsgRevokeCapabilityResponse struct{}

// MsgPause halts all state-mutating marketplace operations.
type MsgPause struct {
	Pauser string `json:"pauser"`
	Reason string `json:"reason"`
}

type MsgPauseResponse struct{}

// MsgUnpause resumes marketplace operations.
type MsgUnpause struct {
	Pauser string `json:"pauser"`
	Reason string `json:"reason"`
}

type MsgUnpauseResponse struct{}

// MsgUpdateParams replaces the module parameters. Authority-gated.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

type MsgUpdateParamsResponse struct{}

var (
	_ sdk.Msg = &MsgCreateTask{}
	_ sdk.Msg = &MsgClaimTask{}
	_ sdk.Msg = &MsgRequestCancellation{}
	_ sdk.Msg = &MsgApproveCancellation{}
	_ sdk.Msg = &MsgRejectCancellation{}
	_ sdk.Msg = &MsgProcessExpiredCancellation{}
	_ sdk.Msg = &MsgSubmitWork{}
	_ sdk.Msg = &MsgStartReview{}
	_ sdk.Msg = &MsgAcceptSubmission{}
	_ sdk.Msg = &MsgRejectSubmission{}
	_ sdk.Msg = &MsgRequestRevision{}
	_ sdk.Msg = &MsgResubmitWork{}
	_ sdk.Msg = &MsgRaiseDispute{}
	_ sdk.Msg = &MsgSubmitDisputeAnalysis{}
	_ sdk.Msg = &MsgAssignArbitrator{}
	_ sdk.Msg = &MsgResolveDispute{}
	_ sdk.Msg = &MsgAppealDispute{}
	_ sdk.Msg = &MsgWithdraw{}
	_ sdk.Msg = &MsgApplyScoreUpdate{}
	_ sdk.Msg = &MsgAdminAdjustScore{}
	_ sdk.Msg = &MsgGrantCapability{}
	_ sdk.Msg = &MsgRevokeCapability{}
	_ sdk.Msg = &MsgPause{}
	_ sdk.Msg = &MsgUnpause{}
	_ sdk.Msg = &MsgUpdateParams{}

	_ proto.Message = &MsgCreateTask{}
)

// proto.Message plumbing for hand-rolled message types.

func (msg *MsgCreateTask) Reset()         { *msg = MsgCreateTask{} }
func (msg *MsgCreateTask) ProtoMessage()  {}
func (msg *MsgCreateTask) String() string { return fmt.Sprintf("%s%+v", TypeMsgCreateTask, *msg) }

func (msg *MsgClaimTask) Reset()         { *msg = MsgClaimTask{} }
func (msg *MsgClaimTask) ProtoMessage()  {}
func (msg *MsgClaimTask) String() string { return fmt.Sprintf("%s%+v", TypeMsgClaimTask, *msg) }

func (msg *MsgRequestCancellation) Reset()        { *msg = MsgRequestCancellation{} }
func (msg *MsgRequestCancellation) ProtoMessage() {}
func (msg *MsgRequestCancellation) String() string {
	return fmt.Sprintf("%s%+v", TypeMsgRequestCancellation, *msg)
}

func (msg *MsgApproveCancellation) Reset()        { *msg = MsgApproveCancellation{} }
func (msg *MsgApproveCancellation) ProtoMessage() {}
func (msg *MsgApproveCancellation) String() string {
	return fmt.Sprintf("%s%+v", TypeMsgApproveCancellation, *msg)
}

func (msg *MsgRejectCancellation) Reset()        { *msg = MsgRejectCancellation{} }
func (msg *MsgRejectCancellation) ProtoMessage() {}
func (msg *MsgRejectCancellation) String() string {
	return fmt.Sprintf("%s%+v", TypeMsgRejectCancellation, *msg)
}

func (msg *MsgProcessExpiredCancellation) Reset()        { *msg = MsgProcessExpiredCancellation{} }
func (msg *MsgProcessExpiredCancellation) ProtoMessage() {}
func (msg *MsgProcessExpiredCancellation) String() string {
	return fmt.Sprintf("%s%+v", TypeMsgProcessExpiredCancellation, *msg)
}

func (msg *MsgSubmitWork) Reset()         { *msg = MsgSubmitWork{} }
func (msg *MsgSubmitWork) ProtoMessage()  {}
func (msg *MsgSubmitWork) String() string { return fmt.Sprintf("%s%+v", TypeMsgSubmitWork, *msg) }

func (msg *MsgStartReview) Reset()         { *msg = MsgStartReview{} }
func (msg *MsgStartReview) ProtoMessage()  {}
func (msg *MsgStartReview) String() string { return fmt.Sprintf("%s%+v", TypeMsgStartReview, *msg) }

func (msg *MsgAcceptSubmission) Reset()        { *msg = MsgAcceptSubmission{} }
func (msg *MsgAcceptSubmission) ProtoMessage() {}
func (msg *MsgAcceptSubmission) String() string {
	return fmt.Sprintf("%s%+v", TypeMsgAcceptSubmission, *msg)
}

func (msg *MsgRejectSubmission) Reset()        { *msg = MsgRejectSubmission{} }
func (msg *MsgRejectSubmission) ProtoMessage() {}
func (msg *MsgRejectSubmission) String() string {
	return fmt.Sprintf("%s%+v", TypeMsgRejectSubmission, *msg)
}

func (msg *MsgRequestRevision) Reset()        { *msg = MsgRequestRevision{} }
func (msg *MsgRequestRevision) ProtoMessage() {}
func (msg *MsgRequestRevision) String() string {
	return fmt.Sprintf("%s%+v", TypeMsgRequestRevision, *msg)
}

func (msg *MsgResubmitWork) Reset()         { *msg = MsgResubmitWork{} }
func (msg *MsgResubmitWork) ProtoMessage()  {}
func (msg *MsgResubmitWork) String() string { return fmt.Sprintf("%s%+v", TypeMsgResubmitWork, *msg) }

func (msg *MsgRaiseDispute) Reset()         { *msg = MsgRaiseDispute{} }
func (msg *MsgRaiseDispute) ProtoMessage()  {}
func (msg *MsgRaiseDispute) String() string { return fmt.Sprintf("%s%+v", TypeMsgRaiseDispute, *msg) }

func (msg *MsgSubmitDisputeAnalysis) Reset()        { *msg = MsgSubmitDisputeAnalysis{} }
func (msg *MsgSubmitDisputeAnalysis) ProtoMessage() {}
func (msg *MsgSubmitDisputeAnalysis) String() string {
	return fmt.Sprintf("%s%+v", TypeMsgSubmitDisputeAnalysis, *msg)
}

func (msg *MsgAssignArbitrator) Reset()        { *msg = MsgAssignArbitrator{} }
func (msg *MsgAssignArbitrator) ProtoMessage() {}
func (msg *MsgAssignArbitrator) String() string {
	return fmt.Sprintf("%s%+v", TypeMsgAssignArbitrator, *msg)
}

func (msg *MsgResolveDispute) Reset()        { *msg = MsgResolveDispute{} }
func (msg *MsgResolveDispute) ProtoMessage() {}
func (msg *MsgResolveDispute) String() string {
	return fmt.Sprintf("%s%+v", TypeMsgResolveDispute, *msg)
}

func (msg *MsgAppealDispute) Reset()        { *msg = MsgAppealDispute{} }
func (msg *MsgAppealDispute) ProtoMessage() {}
func (msg *MsgAppealDispute) String() string {
	return fmt.Sprintf("%s%+v", TypeMsgAppealDispute, *msg)
}

func (msg *MsgWithdraw) Reset()         { *msg = MsgWithdraw{} }
func (msg *MsgWithdraw) ProtoMessage()  {}
func (msg *MsgWithdraw) String() string { return fmt.Sprintf("%s%+v", TypeMsgWithdraw, *msg) }

func (msg *MsgApplyScoreUpdate) Reset()        { *msg = MsgApplyScoreUpdate{} }
func (msg *MsgApplyScoreUpdate) ProtoMessage() {}
func (msg *MsgApplyScoreUpdate) String() string {
	return fmt.Sprintf("%s%+v", TypeMsgApplyScoreUpdate, *msg)
}

func (msg *MsgAdminAdjustScore) Reset()        { *msg = MsgAdminAdjustScore{} }
func (msg *MsgAdminAdjustScore) ProtoMessage() {}
func (msg *MsgAdminAdjustScore) String() string {
	return fmt.Sprintf("%s%+v", TypeMsgAdminAdjustScore, *msg)
}

func (msg *MsgGrantCapability) Reset()        { *msg = MsgGrantCapability{} }
func (msg *MsgGrantCapability) ProtoMessage() {}
func (msg *MsgGrantCapability) String() string {
	return fmt.Sprintf("%s%+v", TypeMsgGrantCapability, *msg)
}

func (msg *MsgRevokeCapability) Reset()        { *msg = MsgRevokeCapability{} }
func (msg *MsgRevokeCapability) ProtoMessage() {}
func (msg *MsgRevokeCapability) String() string {
	return fmt.Sprintf("%s%+v", TypeMsgRevokeCapability, *msg)
}

func (msg *MsgPause) Reset()         { *msg = MsgPause{} }
func (msg *MsgPause) ProtoMessage()  {}
func (msg *MsgPause) String() string { return fmt.Sprintf("%s%+v", TypeMsgPause, *msg) }

func (msg *MsgUnpause) Reset()         { *msg = MsgUnpause{} }
func (msg *MsgUnpause) ProtoMessage()  {}
func (msg *MsgUnpause) String() string { return fmt.Sprintf("%s%+v", TypeMsgUnpause, *msg) }

func (msg *MsgUpdateParams) Reset()         { *msg = MsgUpdateParams{} }
func (msg *MsgUpdateParams) ProtoMessage()  {}
func (msg *MsgUpdateParams) String() string { return fmt.Sprintf("%s%+v", TypeMsgUpdateParams, *msg) }

// GetSigners implementations - these assume addresses are valid (validated in ValidateBasic)

func (msg *MsgCreateTask) GetSigners() []sdk.AccAddress {
	requester, _ := sdk.AccAddressFromBech32(msg.Requester)
	return []sdk.AccAddress{requester}
}

func (msg *MsgClaimTask) GetSigners() []sdk.AccAddress {
	worker, _ := sdk.AccAddressFromBech32(msg.Worker)
	return []sdk.AccAddress{worker}
}

func (msg *MsgRequestCancellation) GetSigners() []sdk.AccAddress {
	requester, _ := sdk.AccAddressFromBech32(msg.Requester)
	return []sdk.AccAddress{requester}
}

func (msg *MsgApproveCancellation) GetSigners() []sdk.AccAddress {
	moderator, _ := sdk.AccAddressFromBech32(msg.Moderator)
	return []sdk.AccAddress{moderator}
}

func (msg *MsgRejectCancellation) GetSigners() []sdk.AccAddress {
	moderator, _ := sdk.AccAddressFromBech32(msg.Moderator)
	return []sdk.AccAddress{moderator}
}

func (msg *MsgProcessExpiredCancellation) GetSigners() []sdk.AccAddress {
	caller, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{caller}
}

func (msg *MsgSubmitWork) GetSigners() []sdk.AccAddress {
	worker, _ := sdk.AccAddressFromBech32(msg.Worker)
	return []sdk.AccAddress{worker}
}

func (msg *MsgStartReview) GetSigners() []sdk.AccAddress {
	requester, _ := sdk.AccAddressFromBech32(msg.Requester)
	return []sdk.AccAddress{requester}
}

func (msg *MsgAcceptSubmission) GetSigners() []sdk.AccAddress {
	requester, _ := sdk.AccAddressFromBech32(msg.Requester)
	return []sdk.AccAddress{requester}
}

func (msg *MsgRejectSubmission) GetSigners() []sdk.AccAddress {
	requester, _ := sdk.AccAddressFromBech32(msg.Requester)
	return []sdk.AccAddress{requester}
}

func (msg *MsgRequestRevision) GetSigners() []sdk.AccAddress {
	requester, _ := sdk.AccAddressFromBech32(msg.Requester)
	return []sdk.AccAddress{requester}
}

func (msg *MsgResubmitWork) GetSigners() []sdk.AccAddress {
	worker, _ := sdk.AccAddressFromBech32(msg.Worker)
	return []sdk.AccAddress{worker}
}

func (msg *MsgRaiseDispute) GetSigners() []sdk.AccAddress {
	initiator, _ := sdk.AccAddressFromBech32(msg.Initiator)
	return []sdk.AccAddress{initiator}
}

func (msg *MsgSubmitDisputeAnalysis) GetSigners() []sdk.AccAddress {
	analyst, _ := sdk.AccAddressFromBech32(msg.Analyst)
	return []sdk.AccAddress{analyst}
}

func (msg *MsgAssignArbitrator) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

func (msg *MsgResolveDispute) GetSigners() []sdk.AccAddress {
	arbitrator, _ := sdk.AccAddressFromBech32(msg.Arbitrator)
	return []sdk.AccAddress{arbitrator}
}

func (msg *MsgAppealDispute) GetSigners() []sdk.AccAddress {
	appellant, _ := sdk.AccAddressFromBech32(msg.Appellant)
	return []sdk.AccAddress{appellant}
}

func (msg *MsgWithdraw) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Address)
	return []sdk.AccAddress{addr}
}

func (msg *MsgApplyScoreUpdate) GetSigners() []sdk.AccAddress {
	scorer, _ := sdk.AccAddressFromBech32(msg.Scorer)
	return []sdk.AccAddress{scorer}
}

func (msg *MsgAdminAdjustScore) GetSigners() []sdk.AccAddress {
	admin, _ := sdk.AccAddressFromBech32(msg.Admin)
	return []sdk.AccAddress{admin}
}

func (msg *MsgGrantCapability) GetSigners() []sdk.AccAddress {
	admin, _ := sdk.AccAddressFromBech32(msg.Admin)
	return []sdk.AccAddress{admin}
}

func (msg *MsgRevokeCapability) GetSigners() []sdk.AccAddress {
	admin, _ := sdk.AccAddressFromBech32(msg.Admin)
	return []sdk.AccAddress{admin}
}

func (msg *MsgPause) GetSigners() []sdk.AccAddress {
	pauser, _ := sdk.AccAddressFromBech32(msg.Pauser)
	return []sdk.AccAddress{pauser}
}

func (msg *MsgUnpause) GetSigners() []sdk.AccAddress {
	pauser, _ := sdk.AccAddressFromBech32(msg.Pauser)
	return []sdk.AccAddress{pauser}
}

func (msg *MsgUpdateParams) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// ValidateBasic implementations.

func (msg *MsgCreateTask) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Requester); err != nil {
		return ErrInvalidAddress.Wrapf("invalid requester address: %v", err)
	}
	if !ValidContentHash(msg.RequirementsHash) {
		return ErrInvalidContentHash.Wrap("requirements hash")
	}
	if msg.Deposit.IsNil() || !msg.Deposit.IsPositive() {
		return ErrZeroAmount.Wrap("deposit")
	}
	if msg.MinReputation > MaxScore {
		return ErrInvalidReputationFloor.Wrapf("%d > %d", msg.MinReputation, MaxScore)
	}
	if msg.Deadline.IsZero() {
		return ErrInvalidDeadline.Wrap("deadline not set")
	}
	return nil
}

func (msg *MsgClaimTask) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Worker); err != nil {
		return ErrInvalidAddress.Wrapf("invalid worker address: %v", err)
	}
	if msg.TaskId == 0 {
		return ErrValidationFailed.Wrap("task id cannot be zero")
	}
	return nil
}

func (msg *MsgRequestCancellation) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Requester); err != nil {
		return ErrInvalidAddress.Wrapf("invalid requester address: %v", err)
	}
	if msg.TaskId == 0 {
		return ErrValidationFailed.Wrap("task id cannot be zero")
	}
	if !ValidContentHash(msg.ReasonHash) {
		return ErrInvalidContentHash.Wrap("reason hash")
	}
	return nil
}

func (msg *MsgApproveCancellation) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Moderator); err != nil {
		return ErrInvalidAddress.Wrapf("invalid moderator address: %v", err)
	}
	if msg.TaskId == 0 {
		return ErrValidationFailed.Wrap("task id cannot be zero")
	}
	return nil
}

func (msg *MsgRejectCancellation) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Moderator); err != nil {
		return ErrInvalidAddress.Wrapf("invalid moderator address: %v", err)
	}
	if msg.TaskId == 0 {
		return ErrValidationFailed.Wrap("task id cannot be zero")
	}
	return nil
}

func (msg *MsgProcessExpiredCancellation) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrInvalidAddress.Wrapf("invalid caller address: %v", err)
	}
	if msg.TaskId == 0 {
		return ErrValidationFailed.Wrap("task id cannot be zero")
	}
	return nil
}

func (msg *MsgSubmitWork) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Worker); err != nil {
		return ErrInvalidAddress.Wrapf("invalid worker address: %v", err)
	}
	if msg.TaskId == 0 {
		return ErrValidationFailed.Wrap("task id cannot be zero")
	}
	if !ValidContentHash(msg.WorkHash) {
		return ErrInvalidContentHash.Wrap("work hash")
	}
	return nil
}

func (msg *MsgStartReview) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Requester); err != nil {
		return ErrInvalidAddress.Wrapf("invalid requester address: %v", err)
	}
	if msg.TaskId == 0 {
		return ErrValidationFailed.Wrap("task id cannot be zero")
	}
	return nil
}

func (msg *MsgAcceptSubmission) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Requester); err != nil {
		return ErrInvalidAddress.Wrapf("invalid requester address: %v", err)
	}
	if msg.TaskId == 0 {
		return ErrValidationFailed.Wrap("task id cannot be zero")
	}
	// Feedback is optional on acceptance.
	if len(msg.FeedbackHash) > 0 && !ValidContentHash(msg.FeedbackHash) {
		return ErrInvalidContentHash.Wrap("feedback hash")
	}
	return nil
}

func (msg *MsgRejectSubmission) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Requester); err != nil {
		return ErrInvalidAddress.Wrapf("invalid requester address: %v", err)
	}
	if msg.TaskId == 0 {
		return ErrValidationFailed.Wrap("task id cannot be zero")
	}
	if !ValidContentHash(msg.FeedbackHash) {
		return ErrFeedbackRequired
	}
	return nil
}

func (msg *MsgRequestRevision) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Requester); err != nil {
		return ErrInvalidAddress.Wrapf("invalid requester address: %v", err)
	}
	if msg.TaskId == 0 {
		return ErrValidationFailed.Wrap("task id cannot be zero")
	}
	if !ValidContentHash(msg.FeedbackHash) {
		return ErrFeedbackRequired
	}
	return nil
}

func (msg *MsgResubmitWork) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Worker); err != nil {
		return ErrInvalidAddress.Wrapf("invalid worker address: %v", err)
	}
	if msg.TaskId == 0 {
		return ErrValidationFailed.Wrap("task id cannot be zero")
	}
	if !ValidContentHash(msg.WorkHash) {
		return ErrInvalidContentHash.Wrap("work hash")
	}
	return nil
}

func (msg *MsgRaiseDispute) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Initiator); err != nil {
		return ErrInvalidAddress.Wrapf("invalid initiator address: %v", err)
	}
	if msg.TaskId == 0 {
		return ErrValidationFailed.Wrap("task id cannot be zero")
	}
	if msg.Reason == DISPUTE_REASON_UNSPECIFIED {
		return ErrValidationFailed.Wrap("dispute reason required")
	}
	if !ValidContentHash(msg.EvidenceHash) {
		return ErrInvalidContentHash.Wrap("evidence hash")
	}
	return nil
}

func (msg *MsgSubmitDisputeAnalysis) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Analyst); err != nil {
		return ErrInvalidAddress.Wrapf("invalid analyst address: %v", err)
	}
	if msg.DisputeId == 0 {
		return ErrValidationFailed.Wrap("dispute id cannot be zero")
	}
	if msg.Confidence == 0 || msg.Confidence > 100 {
		return ErrInvalidConfidence
	}
	if msg.RecommendedOutcome == DISPUTE_OUTCOME_UNSPECIFIED {
		return ErrValidationFailed.Wrap("recommended outcome required")
	}
	if !ValidContentHash(msg.RecommendationHash) {
		return ErrInvalidContentHash.Wrap("recommendation hash")
	}
	return nil
}

func (msg *MsgAssignArbitrator) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrInvalidAddress.Wrapf("invalid authority address: %v", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Arbitrator); err != nil {
		return ErrInvalidAddress.Wrapf("invalid arbitrator address: %v", err)
	}
	if msg.DisputeId == 0 {
		return ErrValidationFailed.Wrap("dispute id cannot be zero")
	}
	return nil
}

func (msg *MsgResolveDispute) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Arbitrator); err != nil {
		return ErrInvalidAddress.Wrapf("invalid arbitrator address: %v", err)
	}
	if msg.DisputeId == 0 {
		return ErrValidationFailed.Wrap("dispute id cannot be zero")
	}
	if msg.Outcome == DISPUTE_OUTCOME_UNSPECIFIED {
		return ErrValidationFailed.Wrap("outcome required")
	}
	if msg.PaymentPercentage > 100 {
		return ErrInvalidPercentage
	}
	if !ValidContentHash(msg.ReasoningHash) {
		return ErrInvalidContentHash.Wrap("reasoning hash")
	}
	return nil
}

func (msg *MsgAppealDispute) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Appellant); err != nil {
		return ErrInvalidAddress.Wrapf("invalid appellant address: %v", err)
	}
	if msg.DisputeId == 0 {
		return ErrValidationFailed.Wrap("dispute id cannot be zero")
	}
	if !ValidContentHash(msg.EvidenceHash) {
		return ErrInvalidContentHash.Wrap("evidence hash")
	}
	return nil
}

func (msg *MsgWithdraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Address); err != nil {
		return ErrInvalidAddress.Wrapf("invalid address: %v", err)
	}
	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return ErrZeroAmount.Wrap("withdrawal amount")
	}
	return nil
}

func (msg *MsgApplyScoreUpdate) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Scorer); err != nil {
		return ErrInvalidAddress.Wrapf("invalid scorer address: %v", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Address); err != nil {
		return ErrInvalidAddress.Wrapf("invalid subject address: %v", err)
	}
	if msg.Quality > MaxScore || msg.Reliability > MaxScore || msg.Professionalism > MaxScore {
		return ErrInvalidScore
	}
	if len(msg.Proof) == 0 {
		return ErrInvalidScoreProof.Wrap("proof required")
	}
	return nil
}

func (msg *MsgAdminAdjustScore) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Admin); err != nil {
		return ErrInvalidAddress.Wrapf("invalid admin address: %v", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Address); err != nil {
		return ErrInvalidAddress.Wrapf("invalid subject address: %v", err)
	}
	if msg.NewOverall > MaxScore {
		return ErrInvalidScore
	}
	if msg.Reason == "" {
		return ErrValidationFailed.Wrap("reason required")
	}
	return nil
}

func (msg *MsgGrantCapability) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Admin); err != nil {
		return ErrInvalidAddress.Wrapf("invalid admin address: %v", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Address); err != nil {
		return ErrInvalidAddress.Wrapf("invalid grantee address: %v", err)
	}
	if msg.Capability == CAPABILITY_UNSPECIFIED {
		return ErrValidationFailed.Wrap("capability required")
	}
	return nil
}

func (msg *MsgRevokeCapability) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Admin); err != nil {
		return ErrInvalidAddress.Wrapf("invalid admin address: %v", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Address); err != nil {
		return ErrInvalidAddress.Wrapf("invalid grantee address: %v", err)
	}
	if msg.Capability == CAPABILITY_UNSPECIFIED {
		return ErrValidationFailed.Wrap("capability required")
	}
	return nil
}

func (msg *MsgPause) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Pauser); err != nil {
		return ErrInvalidAddress.Wrapf("invalid pauser address: %v", err)
	}
	return nil
}

func (msg *MsgUnpause) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Pauser); err != nil {
		return ErrInvalidAddress.Wrapf("invalid pauser address: %v", err)
	}
	return nil
}

func (msg *MsgUpdateParams) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrInvalidAddress.Wrapf("invalid authority address: %v", err)
	}
	return msg.Params.Validate()
}

// MsgServer is the transaction-handling surface of the marketplace module.
type MsgServer interface {
	CreateTask(context.Context, *MsgCreateTask) (*MsgCreateTaskResponse, error)
	ClaimTask(context.Context, *MsgClaimTask) (*MsgClaimTaskResponse, error)
	RequestCancellation(context.Context, *MsgRequestCancellation) (*MsgRequestCancellationResponse, error)
	ApproveCancellation(context.Context, *MsgApproveCancellation) (*MsgApproveCancellationResponse, error)
	RejectCancellation(context.Context, *MsgRejectCancellation) (*MsgRejectCancellationResponse, error)
	ProcessExpiredCancellation(context.Context, *MsgProcessExpiredCancellation) (*MsgProcessExpiredCancellationResponse, error)
	SubmitWork(context.Context, *MsgSubmitWork) (*MsgSubmitWorkResponse, error)
	StartReview(context.Context, *MsgStartReview) (*MsgStartReviewResponse, error)
	AcceptSubmission(context.Context, *MsgAcceptSubmission) (*MsgAcceptSubmissionResponse, error)
	RejectSubmission(context.Context, *MsgRejectSubmission) (*MsgRejectSubmissionResponse, error)
	RequestRevision(context.Context, *MsgRequestRevision) (*MsgRequestRevisionResponse, error)
	ResubmitWork(context.Context, *MsgResubmitWork) (*MsgResubmitWorkResponse, error)
	RaiseDispute(context.Context, *MsgRaiseDispute) (*MsgRaiseDisputeResponse, error)
	SubmitDisputeAnalysis(context.Context, *MsgSubmitDisputeAnalysis) (*MsgSubmitDisputeAnalysisResponse, error)
	AssignArbitrator(context.Context, *MsgAssignArbitrator) (*MsgAssignArbitratorResponse, error)
	ResolveDispute(context.Context, *MsgResolveDispute) (*MsgResolveDisputeResponse, error)
	AppealDispute(context.Context, *MsgAppealDispute) (*MsgAppealDisputeResponse, error)
	Withdraw(context.Context, *MsgWithdraw) (*MsgWithdrawResponse, error)
	ApplyScoreUpdate(context.Context, *MsgApplyScoreUpdate) (*MsgApplyScoreUpdateResponse, error)
	AdminAdjustScore(context.Context, *MsgAdminAdjustScore) (*MsgAdminAdjustScoreResponse, error)
	GrantCapability(context.Context, *MsgGrantCapability) (*MsgGrantCapabilityResponse, error)
	RevokeCapability(context.Context, *MsgRevokeCapability) (*MsgRevokeCapabilityResponse, error)
	Pause(context.Context, *MsgPause) (*MsgPauseResponse, error)
	Unpause(context.Context, *MsgUnpause) (*MsgUnpauseResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

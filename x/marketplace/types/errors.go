package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Marketplace module sentinel errors. Grouped by failure category: validation,
// authorization, state, not-found, economic. Economic errors should never be
// reachable by a well-formed caller; hitting one indicates a ledger
// inconsistency and is surfaced by the module invariants rather than retried.

var (
	// Validation errors
	ErrValidationFailed       = sdkerrors.Register(ModuleName, 2, "message validation failed")
	ErrInvalidAddress         = sdkerrors.Register(ModuleName, 3, "invalid address")
	ErrInvalidDeposit         = sdkerrors.Register(ModuleName, 4, "deposit below required minimum")
	ErrInvalidDeadline        = sdkerrors.Register(ModuleName, 5, "deadline must be in the future")
	ErrInvalidReputationFloor = sdkerrors.Register(ModuleName, 6, "reputation floor exceeds maximum score")
	ErrInvalidContentHash     = sdkerrors.Register(ModuleName, 7, "content hash must be 32 bytes")
	ErrZeroAmount             = sdkerrors.Register(ModuleName, 8, "amount must be positive")
	ErrInvalidPercentage      = sdkerrors.Register(ModuleName, 9, "percentage must not exceed 100")
	ErrInvalidConfidence      = sdkerrors.Register(ModuleName, 10, "confidence must be between 1 and 100")
	ErrInvalidScore           = sdkerrors.Register(ModuleName, 11, "score exceeds maximum")
	ErrFeedbackRequired       = sdkerrors.Register(ModuleName, 12, "feedback hash required")

	// Authorization errors
	ErrUnauthorized           = sdkerrors.Register(ModuleName, 20, "unauthorized operation")
	ErrNotClient              = sdkerrors.Register(ModuleName, 21, "caller is not the task requester")
	ErrNotAssignedWorker      = sdkerrors.Register(ModuleName, 22, "caller is not the assigned worker")
	ErrNotParty               = sdkerrors.Register(ModuleName, 23, "caller is not a party to the task")
	ErrNotAssignedArbitrator  = sdkerrors.Register(ModuleName, 24, "caller is not the assigned arbitrator")
	ErrUnauthorizedArbitrator = sdkerrors.Register(ModuleName, 25, "arbitrator is not pre-authorized")
	ErrUnauthorizedScorer     = sdkerrors.Register(ModuleName, 26, "caller is not an authorized scorer")
	ErrInvalidScoreProof      = sdkerrors.Register(ModuleName, 27, "score update proof verification failed")
	ErrModulePaused           = sdkerrors.Register(ModuleName, 28, "marketplace operations are paused")
	ErrAlreadyPaused          = sdkerrors.Register(ModuleName, 29, "marketplace already paused")
	ErrNotPaused              = sdkerrors.Register(ModuleName, 30, "marketplace not paused")

	// State errors
	ErrTaskNotOpen            = sdkerrors.Register(ModuleName, 40, "task is not open")
	ErrAlreadyClaimed         = sdkerrors.Register(ModuleName, 41, "task already claimed")
	ErrInvalidTransition      = sdkerrors.Register(ModuleName, 42, "task status transition not permitted")
	ErrInvalidTaskState       = sdkerrors.Register(ModuleName, 43, "operation invalid for current task state")
	ErrNotUnderReview         = sdkerrors.Register(ModuleName, 44, "submission is not under review")
	ErrCancellationPending    = sdkerrors.Register(ModuleName, 45, "unresolved cancellation request exists")
	ErrNoCancellationPending  = sdkerrors.Register(ModuleName, 46, "no pending cancellation request")
	ErrAlreadyProcessed       = sdkerrors.Register(ModuleName, 47, "cancellation request already processed")
	ErrWindowNotElapsed       = sdkerrors.Register(ModuleName, 48, "review window has not elapsed")
	ErrReviewPeriodNotElapsed = sdkerrors.Register(ModuleName, 49, "review period has not elapsed")
	ErrMaxRevisionsExceeded   = sdkerrors.Register(ModuleName, 50, "maximum revision count reached")
	ErrQualityTooLow          = sdkerrors.Register(ModuleName, 51, "quality score below resubmission floor")
	ErrSubmissionActive       = sdkerrors.Register(ModuleName, 52, "task already has an active submission")
	ErrDisputeExists          = sdkerrors.Register(ModuleName, 53, "task already has a dispute")
	ErrAbusePrevention        = sdkerrors.Register(ModuleName, 54, "dispute initiation blocked by abuse guard")
	ErrProfessionalismTooLow  = sdkerrors.Register(ModuleName, 55, "professionalism score below dispute floor")
	ErrAppealNotAllowed       = sdkerrors.Register(ModuleName, 56, "dispute not eligible for appeal")

	// Not-found errors
	ErrTaskNotFound       = sdkerrors.Register(ModuleName, 60, "task not found")
	ErrSubmissionNotFound = sdkerrors.Register(ModuleName, 61, "submission not found")
	ErrDisputeNotFound    = sdkerrors.Register(ModuleName, 62, "dispute not found")
	ErrEscrowNotFound     = sdkerrors.Register(ModuleName, 63, "task escrow not found")
	ErrRequestNotFound    = sdkerrors.Register(ModuleName, 64, "cancellation request not found")

	// Economic errors
	ErrInsufficientReputation = sdkerrors.Register(ModuleName, 70, "reputation below task floor")
	ErrCapacityExceeded       = sdkerrors.Register(ModuleName, 71, "concurrent task cap reached for tier")
	ErrValueExceedsTierLimit  = sdkerrors.Register(ModuleName, 72, "task value exceeds tier ceiling")
	ErrInsufficientBalance    = sdkerrors.Register(ModuleName, 73, "insufficient available balance")
	ErrWithdrawalTooFrequent  = sdkerrors.Register(ModuleName, 74, "withdrawal interval for tier not elapsed")
	ErrAmountMismatch         = sdkerrors.Register(ModuleName, 75, "release amount does not match task balance")
	ErrScoreUpdateTooFrequent = sdkerrors.Register(ModuleName, 76, "score update interval not elapsed")
	ErrAdjustmentTooLarge     = sdkerrors.Register(ModuleName, 77, "admin adjustment exceeds allowed delta")
	ErrLedgerInconsistency    = sdkerrors.Register(ModuleName, 78, "escrow ledger inconsistency detected")
)

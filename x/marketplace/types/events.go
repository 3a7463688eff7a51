package types

// Event types for the marketplace module.
// All event types use lowercase with underscore separator (module_action format)
const (
	// Task events
	EventTypeTaskCreated   = "marketplace_task_created"
	EventTypeTaskClaimed   = "marketplace_task_claimed"
	EventTypeTaskExpired   = "marketplace_task_expired"
	EventTypeTaskCompleted = "marketplace_task_completed"
	EventTypeTaskStatus    = "marketplace_task_status"

	// Cancellation events
	EventTypeCancellationRequested   = "marketplace_cancellation_requested"
	EventTypeCancellationApproved    = "marketplace_cancellation_approved"
	EventTypeCancellationRejected    = "marketplace_cancellation_rejected"
	EventTypeCancellationAutoApproved = "marketplace_cancellation_auto_approved"

	// Escrow events
	EventTypeEscrowDeposited       = "marketplace_escrow_deposited"
	EventTypeEscrowReleased        = "marketplace_escrow_released"
	EventTypeEscrowRefunded        = "marketplace_escrow_refunded"
	EventTypeEscrowPartialReleased = "marketplace_escrow_partial_released"
	EventTypeWithdrawal            = "marketplace_withdrawal"

	// Submission events
	EventTypeWorkSubmitted     = "marketplace_work_submitted"
	EventTypeReviewStarted     = "marketplace_review_started"
	EventTypeSubmissionAccepted = "marketplace_submission_accepted"
	EventTypeSubmissionRejected = "marketplace_submission_rejected"
	EventTypeRevisionRequested = "marketplace_revision_requested"
	EventTypeWorkResubmitted   = "marketplace_work_resubmitted"
	EventTypeAutoAccepted      = "marketplace_submission_auto_accepted"

	// Dispute events
	EventTypeDisputeRaised       = "marketplace_dispute_raised"
	EventTypeDisputeAnalyzed     = "marketplace_dispute_analyzed"
	EventTypeArbitratorAssigned  = "marketplace_arbitrator_assigned"
	EventTypeDisputeResolved     = "marketplace_dispute_resolved"
	EventTypeDisputeAppealed     = "marketplace_dispute_appealed"

	// Reputation events
	EventTypeScoreUpdated   = "marketplace_score_updated"
	EventTypeTierChanged    = "marketplace_tier_changed"
	EventTypeScoreDecayed   = "marketplace_score_decayed"
	EventTypeScoreAdjusted  = "marketplace_score_adjusted"
	EventTypeLateSubmission = "marketplace_late_submission"

	// Authorization events
	EventTypeCapabilityGranted = "marketplace_capability_granted"
	EventTypeCapabilityRevoked = "marketplace_capability_revoked"

	// Pause events
	EventTypePaused   = "marketplace_paused"
	EventTypeUnpaused = "marketplace_unpaused"
)

// Event attribute keys for the marketplace module.
const (
	AttributeKeyTaskID         = "task_id"
	AttributeKeySubmissionID   = "submission_id"
	AttributeKeyDisputeID      = "dispute_id"
	AttributeKeyRequester      = "requester"
	AttributeKeyWorker         = "worker"
	AttributeKeyInitiator      = "initiator"
	AttributeKeyArbitrator     = "arbitrator"
	AttributeKeyModerator      = "moderator"
	AttributeKeyAmount         = "amount"
	AttributeKeyFee            = "fee"
	AttributeKeyDeadline       = "deadline"
	AttributeKeyStatus         = "status"
	AttributeKeyPriorStatus    = "prior_status"
	AttributeKeyOutcome        = "outcome"
	AttributeKeyConfidence     = "confidence"
	AttributeKeyPercentage     = "percentage"
	AttributeKeyReason         = "reason"
	AttributeKeyAddress        = "address"
	AttributeKeyOverallScore   = "overall_score"
	AttributeKeyTier           = "tier"
	AttributeKeyPriorTier      = "prior_tier"
	AttributeKeyCapability     = "capability"
	AttributeKeyActor          = "actor"
	AttributeKeyRevisionCount  = "revision_count"
	AttributeKeyReviewDeadline = "review_deadline"
	AttributeKeyLate           = "late"
)

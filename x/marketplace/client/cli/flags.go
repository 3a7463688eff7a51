package cli

// Flag constants for marketplace CLI commands
const (
	// Task flags
	FlagRequirementsHash = "requirements-hash"
	FlagDeadline         = "deadline"
	FlagMinReputation    = "min-reputation"
	FlagMaxRevisions     = "max-revisions"
	FlagReviewPeriod     = "review-period"
	FlagDeposit          = "deposit"

	// Submission flags
	FlagWorkHash     = "work-hash"
	FlagFeedbackHash = "feedback-hash"

	// Cancellation flags
	FlagReasonHash = "reason-hash"

	// Dispute flags
	FlagReason             = "reason"
	FlagEvidenceHash       = "evidence-hash"
	FlagConfidence         = "confidence"
	FlagRecommendedOutcome = "recommended-outcome"
	FlagRecommendationHash = "recommendation-hash"
	FlagOutcome            = "outcome"
	FlagPaymentPercentage  = "payment-percentage"
	FlagReasoningHash      = "reasoning-hash"

	// Reputation flags
	FlagQuality         = "quality"
	FlagReliability     = "reliability"
	FlagProfessionalism = "professionalism"
	FlagProof           = "proof"
	FlagNewOverall      = "new-overall"
	FlagAdjustReason    = "adjust-reason"

	// Query flags
	FlagStatus    = "status"
	FlagRequester = "requester"
	FlagWorker    = "worker"
	FlagAddress   = "address"
)

package types

import (
	"time"

	"cosmossdk.io/math"
)

// ContentHashLength is the fixed length of all opaque content references
// (task requirements, deliverables, feedback, evidence). The module never
// interprets hash contents.
const ContentHashLength = 32

// MaxScore is the upper bound for every reputation sub-score and the overall
// composite score.
const MaxScore = 2000

// Overall score composite weights, in percent. Quality 40, reliability 35,
// professionalism 25.
const (
	QualityWeight         = 40
	ReliabilityWeight     = 35
	ProfessionalismWeight = 25
)

// TaskStatus defines the lifecycle status of a task
type TaskStatus int32

const (
	TASK_STATUS_UNSPECIFIED          TaskStatus = 0
	TASK_STATUS_OPEN                 TaskStatus = 1
	TASK_STATUS_IN_PROGRESS          TaskStatus = 2
	TASK_STATUS_UNDER_REVIEW         TaskStatus = 3
	TASK_STATUS_COMPLETED            TaskStatus = 4
	TASK_STATUS_CANCELLED            TaskStatus = 5
	TASK_STATUS_EXPIRED              TaskStatus = 6
	TASK_STATUS_DISPUTED             TaskStatus = 7
	TASK_STATUS_PENDING_CANCELLATION TaskStatus = 8
)

var taskStatusNames = map[TaskStatus]string{
	TASK_STATUS_UNSPECIFIED:          "unspecified",
	TASK_STATUS_OPEN:                 "open",
	TASK_STATUS_IN_PROGRESS:          "in_progress",
	TASK_STATUS_UNDER_REVIEW:         "under_review",
	TASK_STATUS_COMPLETED:            "completed",
	TASK_STATUS_CANCELLED:            "cancelled",
	TASK_STATUS_EXPIRED:              "expired",
	TASK_STATUS_DISPUTED:             "disputed",
	TASK_STATUS_PENDING_CANCELLATION: "pending_cancellation",
}

func (s TaskStatus) String() string {
	if name, ok := taskStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether a task status is final. Terminal tasks are never
// deleted and never transition again.
func (s TaskStatus) IsTerminal() bool {
	return s == TASK_STATUS_COMPLETED || s == TASK_STATUS_CANCELLED || s == TASK_STATUS_EXPIRED
}

// taskTransitions is the fixed task lifecycle transition table. The
// under_review -> under_review entry is a deliberate named no-op: a fresh
// submission superseding a rejected one re-enters review without a status
// change, and must not be treated as an invalid transition.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TASK_STATUS_OPEN: {
		TASK_STATUS_IN_PROGRESS,
		TASK_STATUS_CANCELLED,
		TASK_STATUS_EXPIRED,
		TASK_STATUS_PENDING_CANCELLATION,
	},
	TASK_STATUS_IN_PROGRESS: {
		TASK_STATUS_UNDER_REVIEW,
		TASK_STATUS_CANCELLED,
		TASK_STATUS_EXPIRED,
		TASK_STATUS_PENDING_CANCELLATION,
	},
	TASK_STATUS_UNDER_REVIEW: {
		TASK_STATUS_COMPLETED,
		TASK_STATUS_DISPUTED,
		TASK_STATUS_UNDER_REVIEW,
	},
	TASK_STATUS_DISPUTED: {
		TASK_STATUS_COMPLETED,
		TASK_STATUS_CANCELLED,
	},
	TASK_STATUS_PENDING_CANCELLATION: {
		TASK_STATUS_CANCELLED,
		TASK_STATUS_OPEN,
		TASK_STATUS_IN_PROGRESS,
	},
}

// CanTransition reports whether from -> to is permitted by the transition
// table.
func CanTransition(from, to TaskStatus) bool {
	for _, allowed := range taskTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsRedundantTransition reports whether from -> to is one of the explicitly
// allowed same-state no-ops.
func IsRedundantTransition(from, to TaskStatus) bool {
	return from == TASK_STATUS_UNDER_REVIEW && to == TASK_STATUS_UNDER_REVIEW
}

// Task is a unit of escrowed work. Created by the requester on funding and
// mutated only through status transitions; terminal states are final.
type Task struct {
	Id                  uint64     `json:"id"`
	Requester           string     `json:"requester"`
	Worker              string     `json:"worker,omitempty"`
	MinReputation       uint32     `json:"min_reputation"`
	Status              TaskStatus `json:"status"`
	MaxRevisions        uint32     `json:"max_revisions"`
	EscrowAmount        math.Int   `json:"escrow_amount"`
	PlatformFee         math.Int   `json:"platform_fee"`
	Deadline            time.Time  `json:"deadline"`
	CreatedAt           time.Time  `json:"created_at"`
	ReviewPeriodSeconds uint64     `json:"review_period_seconds"`
	RequirementsHash    []byte     `json:"requirements_hash"`
}

// CancellationRequest tracks a moderated cancellation. At most one unresolved
// request exists per task; once processed the record is immutable.
type CancellationRequest struct {
	TaskId         uint64    `json:"task_id"`
	Requester      string    `json:"requester"`
	RequestedAt    time.Time `json:"requested_at"`
	ReviewDeadline time.Time `json:"review_deadline"`
	ReasonHash     []byte    `json:"reason_hash"`
	Processed      bool      `json:"processed"`
	Approved       bool      `json:"approved"`
}

// SubmissionStatus defines the review status of a submission
type SubmissionStatus int32

const (
	SUBMISSION_STATUS_UNSPECIFIED        SubmissionStatus = 0
	SUBMISSION_STATUS_PENDING            SubmissionStatus = 1
	SUBMISSION_STATUS_UNDER_REVIEW       SubmissionStatus = 2
	SUBMISSION_STATUS_ACCEPTED           SubmissionStatus = 3
	SUBMISSION_STATUS_REJECTED           SubmissionStatus = 4
	SUBMISSION_STATUS_REVISION_REQUESTED SubmissionStatus = 5
)

var submissionStatusNames = map[SubmissionStatus]string{
	SUBMISSION_STATUS_UNSPECIFIED:        "unspecified",
	SUBMISSION_STATUS_PENDING:            "pending",
	SUBMISSION_STATUS_UNDER_REVIEW:       "under_review",
	SUBMISSION_STATUS_ACCEPTED:           "accepted",
	SUBMISSION_STATUS_REJECTED:           "rejected",
	SUBMISSION_STATUS_REVISION_REQUESTED: "revision_requested",
}

func (s SubmissionStatus) String() string {
	if name, ok := submissionStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether a submission status is final. A rejected
// submission is terminal but its review slot can be reopened by a fresh
// submission from the worker.
func (s SubmissionStatus) IsTerminal() bool {
	return s == SUBMISSION_STATUS_ACCEPTED || s == SUBMISSION_STATUS_REJECTED
}

// Submission is a unit of delivered work under review.
type Submission struct {
	Id              uint64           `json:"id"`
	TaskId          uint64           `json:"task_id"`
	Worker          string           `json:"worker"`
	Status          SubmissionStatus `json:"status"`
	RevisionCount   uint32           `json:"revision_count"`
	SubmittedAt     time.Time        `json:"submitted_at"`
	ReviewStartedAt *time.Time       `json:"review_started_at,omitempty"`
	ReviewDeadline  time.Time        `json:"review_deadline"`
	WorkHash        []byte           `json:"work_hash"`
	FeedbackHash    []byte           `json:"feedback_hash,omitempty"`
}

// DisputeStatus defines the lifecycle status of a dispute
type DisputeStatus int32

const (
	DISPUTE_STATUS_UNSPECIFIED          DisputeStatus = 0
	DISPUTE_STATUS_OPEN                 DisputeStatus = 1
	DISPUTE_STATUS_UNDER_REVIEW         DisputeStatus = 2
	DISPUTE_STATUS_AWAITING_ARBITRATION DisputeStatus = 3
	DISPUTE_STATUS_RESOLVED             DisputeStatus = 4
	DISPUTE_STATUS_APPEALED             DisputeStatus = 5
)

var disputeStatusNames = map[DisputeStatus]string{
	DISPUTE_STATUS_UNSPECIFIED:          "unspecified",
	DISPUTE_STATUS_OPEN:                 "open",
	DISPUTE_STATUS_UNDER_REVIEW:         "under_review",
	DISPUTE_STATUS_AWAITING_ARBITRATION: "awaiting_arbitration",
	DISPUTE_STATUS_RESOLVED:             "resolved",
	DISPUTE_STATUS_APPEALED:             "appealed",
}

func (s DisputeStatus) String() string {
	if name, ok := disputeStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// DisputeReason categorizes why a dispute was raised
type DisputeReason int32

const (
	DISPUTE_REASON_UNSPECIFIED  DisputeReason = 0
	DISPUTE_REASON_QUALITY      DisputeReason = 1
	DISPUTE_REASON_NON_DELIVERY DisputeReason = 2
	DISPUTE_REASON_LATE         DisputeReason = 3
	DISPUTE_REASON_PAYMENT      DisputeReason = 4
	DISPUTE_REASON_OTHER        DisputeReason = 5
)

// DisputeOutcome defines how escrowed funds are settled on resolution
type DisputeOutcome int32

const (
	DISPUTE_OUTCOME_UNSPECIFIED              DisputeOutcome = 0
	DISPUTE_OUTCOME_FULL_PAYMENT_TO_WORKER   DisputeOutcome = 1
	DISPUTE_OUTCOME_FULL_REFUND_TO_REQUESTER DisputeOutcome = 2
	DISPUTE_OUTCOME_PARTIAL_PAYMENT          DisputeOutcome = 3
	DISPUTE_OUTCOME_SPLIT                    DisputeOutcome = 4
)

var disputeOutcomeNames = map[DisputeOutcome]string{
	DISPUTE_OUTCOME_UNSPECIFIED:              "unspecified",
	DISPUTE_OUTCOME_FULL_PAYMENT_TO_WORKER:   "full_payment_to_worker",
	DISPUTE_OUTCOME_FULL_REFUND_TO_REQUESTER: "full_refund_to_requester",
	DISPUTE_OUTCOME_PARTIAL_PAYMENT:          "partial_payment",
	DISPUTE_OUTCOME_SPLIT:                    "split",
}

func (o DisputeOutcome) String() string {
	if name, ok := disputeOutcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

// Dispute tracks a disagreement over a submission, resolved either by the
// automated analysis service or by an assigned arbitrator. High-value
// resolutions defer fund settlement for one appeal window; Settled marks
// that escrow has actually moved.
type Dispute struct {
	Id                 uint64         `json:"id"`
	TaskId             uint64         `json:"task_id"`
	SubmissionId       uint64         `json:"submission_id"`
	Initiator          string         `json:"initiator"`
	Reason             DisputeReason  `json:"reason"`
	Status             DisputeStatus  `json:"status"`
	Outcome            DisputeOutcome `json:"outcome"`
	Confidence         uint32         `json:"confidence"`
	Arbitrator         string         `json:"arbitrator,omitempty"`
	PaymentPercentage  uint32         `json:"payment_percentage"`
	CreatedAt          time.Time      `json:"created_at"`
	ResolvedAt         *time.Time     `json:"resolved_at,omitempty"`
	AppealDeadline     *time.Time     `json:"appeal_deadline,omitempty"`
	Appealed           bool           `json:"appealed,omitempty"`
	Settled            bool           `json:"settled,omitempty"`
	EvidenceHash       []byte         `json:"evidence_hash"`
	RecommendationHash []byte         `json:"recommendation_hash,omitempty"`
}

// Tier is the ordinal reputation bracket derived from the overall score.
type Tier int32

const (
	TIER_BRONZE   Tier = 0
	TIER_SILVER   Tier = 1
	TIER_GOLD     Tier = 2
	TIER_PLATINUM Tier = 3
)

var tierNames = map[Tier]string{
	TIER_BRONZE:   "bronze",
	TIER_SILVER:   "silver",
	TIER_GOLD:     "gold",
	TIER_PLATINUM: "platinum",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// TierForScore maps an overall score to its tier bracket:
// bronze [0,800), silver [800,1400), gold [1400,1800), platinum [1800,2000].
func TierForScore(overall uint32) Tier {
	switch {
	case overall >= 1800:
		return TIER_PLATINUM
	case overall >= 1400:
		return TIER_GOLD
	case overall >= 800:
		return TIER_SILVER
	default:
		return TIER_BRONZE
	}
}

// MaxConcurrentTasks returns the tier-derived cap on concurrently claimed
// tasks.
func (t Tier) MaxConcurrentTasks() uint32 {
	switch t {
	case TIER_PLATINUM:
		return 20
	case TIER_GOLD:
		return 10
	case TIER_SILVER:
		return 5
	default:
		return 2
	}
}

// WithdrawalInterval returns the tier-derived minimum time between
// withdrawals. Platinum withdraws instantly.
func (t Tier) WithdrawalInterval() time.Duration {
	switch t {
	case TIER_PLATINUM:
		return 0
	case TIER_GOLD:
		return 24 * time.Hour
	case TIER_SILVER:
		return 3 * 24 * time.Hour
	default:
		return 7 * 24 * time.Hour
	}
}

// ComputeOverallScore returns the weighted composite of the three sub-scores.
func ComputeOverallScore(quality, reliability, professionalism uint32) uint32 {
	return (quality*QualityWeight + reliability*ReliabilityWeight + professionalism*ProfessionalismWeight) / 100
}

// ReputationScore holds the per-identity scoring state. Sub-scores and the
// overall composite are bounded [0, MaxScore]; tier is always consistent with
// the overall score.
type ReputationScore struct {
	Address            string    `json:"address"`
	Quality            uint32    `json:"quality"`
	Reliability        uint32    `json:"reliability"`
	Professionalism    uint32    `json:"professionalism"`
	Overall            uint32    `json:"overall"`
	Tier               Tier      `json:"tier"`
	CompletedTasks     uint64    `json:"completed_tasks"`
	TotalEarnings      math.Int  `json:"total_earnings"`
	DisputesInitiated  uint64    `json:"disputes_initiated"`
	DisputesWon        uint64    `json:"disputes_won"`
	DisputesLost       uint64    `json:"disputes_lost"`
	LateSubmissions    uint64    `json:"late_submissions"`
	ActiveTasks        uint32    `json:"active_tasks"`
	LastActivityAt     time.Time `json:"last_activity_at"`
	LastScoreUpdateAt  time.Time `json:"last_score_update_at"`
	LastDecayAppliedAt time.Time `json:"last_decay_applied_at"`
}

// EscrowAccount tracks the per-identity view of the ledger: value locked in
// that identity's open tasks and value withdrawable to their bank account.
type EscrowAccount struct {
	Address          string    `json:"address"`
	Locked           math.Int  `json:"locked"`
	Available        math.Int  `json:"available"`
	LastWithdrawalAt time.Time `json:"last_withdrawal_at"`
}

// TaskEscrow is the custodial balance scoped to one task.
type TaskEscrow struct {
	TaskId  uint64   `json:"task_id"`
	Balance math.Int `json:"balance"`
}

// LedgerTotals carries the running conservation counters. After every
// operation: sum(task balances) + sum(available) + FeePool ==
// TotalDeposited - TotalWithdrawn.
type LedgerTotals struct {
	TotalDeposited math.Int `json:"total_deposited"`
	TotalWithdrawn math.Int `json:"total_withdrawn"`
	FeePool        math.Int `json:"fee_pool"`
}

// Capability is an explicit authorization bit granted to an identity.
// Grants are provisioned at genesis or by the admin; each privileged
// operation checks the caller's capability with a pure predicate.
type Capability int32

const (
	CAPABILITY_UNSPECIFIED           Capability = 0
	CAPABILITY_ADMIN                 Capability = 1
	CAPABILITY_PAUSER                Capability = 2
	CAPABILITY_MODERATOR             Capability = 3
	CAPABILITY_ARBITRATOR_AUTHORIZER Capability = 4
	CAPABILITY_SCORER                Capability = 5
	CAPABILITY_ARBITRATOR            Capability = 6
	CAPABILITY_ANALYSIS              Capability = 7
)

var capabilityNames = map[Capability]string{
	CAPABILITY_UNSPECIFIED:           "unspecified",
	CAPABILITY_ADMIN:                 "admin",
	CAPABILITY_PAUSER:                "pauser",
	CAPABILITY_MODERATOR:             "moderator",
	CAPABILITY_ARBITRATOR_AUTHORIZER: "arbitrator_authorizer",
	CAPABILITY_SCORER:                "scorer",
	CAPABILITY_ARBITRATOR:            "arbitrator",
	CAPABILITY_ANALYSIS:              "analysis",
}

func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return "unknown"
}

// CapabilityGrant records a capability held by an identity.
type CapabilityGrant struct {
	Address    string     `json:"address"`
	Capability Capability `json:"capability"`
}

// PauseState records the global pause. While paused all state-mutating
// operations are rejected except time-triggered cleanups, which must remain
// safe to run.
type PauseState struct {
	Paused         bool   `json:"paused"`
	PausedBy       string `json:"paused_by,omitempty"`
	Reason         string `json:"reason,omitempty"`
	PausedAtHeight int64  `json:"paused_at_height,omitempty"`
}

// ValidContentHash reports whether h is a well-formed opaque content
// reference.
func ValidContentHash(h []byte) bool {
	return len(h) == ContentHashLength
}

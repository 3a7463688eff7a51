package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Params defines the configurable marketplace parameters. Tier thresholds,
// concurrent task caps and withdrawal cadences are fixed policy on Tier;
// everything value-denominated or window-shaped lives here.
type Params struct {
	// Denom is the single fungible value denom handled by the escrow ledger.
	Denom string `json:"denom"`

	// PlatformFeeRate is the fraction of every release credited to the fee
	// pool.
	PlatformFeeRate math.LegacyDec `json:"platform_fee_rate"`

	// MinTaskDeposit is the minimum escrow deposit accepted at task creation.
	MinTaskDeposit math.Int `json:"min_task_deposit"`

	// DefaultReviewPeriodSeconds is applied when a task is created with a
	// zero or invalid review period.
	DefaultReviewPeriodSeconds uint64 `json:"default_review_period_seconds"`

	// DefaultMaxRevisions is applied when a task is created with zero max
	// revisions.
	DefaultMaxRevisions uint32 `json:"default_max_revisions"`

	// CancellationWindowSeconds is the moderation window for cancellation
	// requests; elapsed unprocessed requests auto-approve.
	CancellationWindowSeconds uint64 `json:"cancellation_window_seconds"`

	// Tier value ceilings for claimable task escrow. Platinum is unlimited.
	BronzeTaskValueLimit math.Int `json:"bronze_task_value_limit"`
	SilverTaskValueLimit math.Int `json:"silver_task_value_limit"`
	GoldTaskValueLimit   math.Int `json:"gold_task_value_limit"`

	// AutoResolveConfidenceThreshold gates automated dispute resolution.
	AutoResolveConfidenceThreshold uint32 `json:"auto_resolve_confidence_threshold"`

	// DefaultDisputeSplitPercentage is the worker share applied by automated
	// resolution and by the split outcome.
	DefaultDisputeSplitPercentage uint32 `json:"default_dispute_split_percentage"`

	// AppealValueThreshold is the minimum task escrow amount for an appeal.
	AppealValueThreshold math.Int `json:"appeal_value_threshold"`

	// AppealWindowSeconds is how long an appealable resolution holds its
	// escrow before the outcome settles unchallenged.
	AppealWindowSeconds uint64 `json:"appeal_window_seconds"`

	// ResubmissionQualityFloor gates repeat submissions by the same worker.
	ResubmissionQualityFloor uint32 `json:"resubmission_quality_floor"`

	// DisputeProfessionalismFloor gates dispute initiation for identities
	// with more than FrequentDisputerThreshold prior disputes.
	DisputeProfessionalismFloor uint32 `json:"dispute_professionalism_floor"`

	// MinScoreUpdateIntervalSeconds rate-limits signed score updates per
	// identity.
	MinScoreUpdateIntervalSeconds uint64 `json:"min_score_update_interval_seconds"`

	// ScoreProofWindowSeconds is the coarse time window a score proof is
	// bound to.
	ScoreProofWindowSeconds uint64 `json:"score_proof_window_seconds"`

	// InitialScore seeds the three sub-scores of a previously unseen
	// identity.
	InitialScore uint32 `json:"initial_score"`

	// DecayInactivitySeconds is the inactivity span after which score decay
	// begins; DecayPeriodSeconds is the span per decayed point.
	DecayInactivitySeconds uint64 `json:"decay_inactivity_seconds"`
	DecayPeriodSeconds     uint64 `json:"decay_period_seconds"`

	// AdminAdjustMaxDelta bounds a single emergency score adjustment.
	AdminAdjustMaxDelta uint32 `json:"admin_adjust_max_delta"`
}

// Abuse guard constants for dispute initiation. An identity with at least
// AbuseDisputeThreshold initiated disputes and a win rate below
// AbuseWinRatePercent cannot initiate new ones; an identity past
// FrequentDisputerThreshold additionally needs the professionalism floor.
const (
	AbuseDisputeThreshold     = 3
	AbuseWinRatePercent       = 30
	FrequentDisputerThreshold = 5
)

// DefaultDenom is the chain's base task token denom.
const DefaultDenom = "utask"

// DefaultParams returns the default marketplace parameters.
func DefaultParams() Params {
	return Params{
		Denom:                          DefaultDenom,
		PlatformFeeRate:                math.LegacyNewDecWithPrec(5, 2), // 5%
		MinTaskDeposit:                 math.NewInt(10000),              // 0.01 TASK
		DefaultReviewPeriodSeconds:     3 * 24 * 60 * 60,
		DefaultMaxRevisions:            3,
		CancellationWindowSeconds:      7 * 24 * 60 * 60,
		BronzeTaskValueLimit:           math.NewInt(100_000_000),    // 100 TASK
		SilverTaskValueLimit:           math.NewInt(1_000_000_000),  // 1k TASK
		GoldTaskValueLimit:             math.NewInt(10_000_000_000), // 10k TASK
		AutoResolveConfidenceThreshold: 70,
		DefaultDisputeSplitPercentage:  50,
		AppealValueThreshold:           math.NewInt(500_000_000),
		AppealWindowSeconds:            3 * 24 * 60 * 60,
		ResubmissionQualityFloor:       400,
		DisputeProfessionalismFloor:    500,
		MinScoreUpdateIntervalSeconds:  24 * 60 * 60,
		ScoreProofWindowSeconds:        60 * 60,
		InitialScore:                   1000,
		DecayInactivitySeconds:         90 * 24 * 60 * 60,
		DecayPeriodSeconds:             30 * 24 * 60 * 60,
		AdminAdjustMaxDelta:            100,
	}
}

// Validate performs basic sanity checks on the parameter set.
func (p Params) Validate() error {
	if p.Denom == "" {
		return fmt.Errorf("denom cannot be empty")
	}
	if p.PlatformFeeRate.IsNil() || p.PlatformFeeRate.IsNegative() || p.PlatformFeeRate.GTE(math.LegacyOneDec()) {
		return fmt.Errorf("platform fee rate must be in [0, 1): %s", p.PlatformFeeRate)
	}
	if p.MinTaskDeposit.IsNil() || !p.MinTaskDeposit.IsPositive() {
		return fmt.Errorf("minimum task deposit must be positive")
	}
	if p.DefaultReviewPeriodSeconds == 0 {
		return fmt.Errorf("default review period must be positive")
	}
	if p.DefaultMaxRevisions == 0 {
		return fmt.Errorf("default max revisions must be positive")
	}
	if p.CancellationWindowSeconds == 0 {
		return fmt.Errorf("cancellation window must be positive")
	}
	for name, limit := range map[string]math.Int{
		"bronze": p.BronzeTaskValueLimit,
		"silver": p.SilverTaskValueLimit,
		"gold":   p.GoldTaskValueLimit,
	} {
		if limit.IsNil() || !limit.IsPositive() {
			return fmt.Errorf("%s task value limit must be positive", name)
		}
	}
	if p.BronzeTaskValueLimit.GT(p.SilverTaskValueLimit) || p.SilverTaskValueLimit.GT(p.GoldTaskValueLimit) {
		return fmt.Errorf("tier value limits must be non-decreasing")
	}
	if p.AutoResolveConfidenceThreshold == 0 || p.AutoResolveConfidenceThreshold > 100 {
		return fmt.Errorf("auto-resolve confidence threshold must be in (0, 100]")
	}
	if p.DefaultDisputeSplitPercentage > 100 {
		return fmt.Errorf("default dispute split percentage must not exceed 100")
	}
	if p.AppealValueThreshold.IsNil() || p.AppealValueThreshold.IsNegative() {
		return fmt.Errorf("appeal value threshold must be non-negative")
	}
	if p.AppealWindowSeconds == 0 {
		return fmt.Errorf("appeal window must be positive")
	}
	if p.ResubmissionQualityFloor > MaxScore {
		return fmt.Errorf("resubmission quality floor exceeds max score")
	}
	if p.DisputeProfessionalismFloor > MaxScore {
		return fmt.Errorf("dispute professionalism floor exceeds max score")
	}
	if p.ScoreProofWindowSeconds == 0 {
		return fmt.Errorf("score proof window must be positive")
	}
	if p.InitialScore > MaxScore {
		return fmt.Errorf("initial score exceeds max score")
	}
	if p.DecayInactivitySeconds == 0 || p.DecayPeriodSeconds == 0 {
		return fmt.Errorf("decay windows must be positive")
	}
	if p.AdminAdjustMaxDelta == 0 || p.AdminAdjustMaxDelta > MaxScore {
		return fmt.Errorf("admin adjust max delta must be in (0, %d]", MaxScore)
	}
	return nil
}

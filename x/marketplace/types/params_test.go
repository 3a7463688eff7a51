package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

func TestDefaultParamsValidate(t *testing.T) {
	require.NoError(t, types.DefaultParams().Validate())
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *types.Params)
		errMsg string
	}{
		{
			name:   "empty denom",
			mutate: func(p *types.Params) { p.Denom = "" },
			errMsg: "denom",
		},
		{
			name:   "fee rate at one",
			mutate: func(p *types.Params) { p.PlatformFeeRate = math.LegacyOneDec() },
			errMsg: "platform fee rate",
		},
		{
			name:   "negative fee rate",
			mutate: func(p *types.Params) { p.PlatformFeeRate = math.LegacyNewDec(-1) },
			errMsg: "platform fee rate",
		},
		{
			name:   "zero min deposit",
			mutate: func(p *types.Params) { p.MinTaskDeposit = math.ZeroInt() },
			errMsg: "minimum task deposit",
		},
		{
			name:   "zero review period",
			mutate: func(p *types.Params) { p.DefaultReviewPeriodSeconds = 0 },
			errMsg: "review period",
		},
		{
			name:   "zero max revisions",
			mutate: func(p *types.Params) { p.DefaultMaxRevisions = 0 },
			errMsg: "max revisions",
		},
		{
			name:   "zero cancellation window",
			mutate: func(p *types.Params) { p.CancellationWindowSeconds = 0 },
			errMsg: "cancellation window",
		},
		{
			name:   "zero bronze limit",
			mutate: func(p *types.Params) { p.BronzeTaskValueLimit = math.ZeroInt() },
			errMsg: "task value limit",
		},
		{
			name: "decreasing tier limits",
			mutate: func(p *types.Params) {
				p.SilverTaskValueLimit = p.GoldTaskValueLimit.AddRaw(1)
			},
			errMsg: "non-decreasing",
		},
		{
			name:   "confidence threshold over 100",
			mutate: func(p *types.Params) { p.AutoResolveConfidenceThreshold = 101 },
			errMsg: "confidence threshold",
		},
		{
			name:   "split over 100",
			mutate: func(p *types.Params) { p.DefaultDisputeSplitPercentage = 101 },
			errMsg: "split percentage",
		},
		{
			name:   "negative appeal threshold",
			mutate: func(p *types.Params) { p.AppealValueThreshold = math.NewInt(-1) },
			errMsg: "appeal value threshold",
		},
		{
			name:   "zero appeal window",
			mutate: func(p *types.Params) { p.AppealWindowSeconds = 0 },
			errMsg: "appeal window",
		},
		{
			name:   "quality floor over max",
			mutate: func(p *types.Params) { p.ResubmissionQualityFloor = types.MaxScore + 1 },
			errMsg: "quality floor",
		},
		{
			name:   "professionalism floor over max",
			mutate: func(p *types.Params) { p.DisputeProfessionalismFloor = types.MaxScore + 1 },
			errMsg: "professionalism floor",
		},
		{
			name:   "zero proof window",
			mutate: func(p *types.Params) { p.ScoreProofWindowSeconds = 0 },
			errMsg: "proof window",
		},
		{
			name:   "initial score over max",
			mutate: func(p *types.Params) { p.InitialScore = types.MaxScore + 1 },
			errMsg: "initial score",
		},
		{
			name:   "zero decay period",
			mutate: func(p *types.Params) { p.DecayPeriodSeconds = 0 },
			errMsg: "decay windows",
		},
		{
			name:   "zero adjust delta",
			mutate: func(p *types.Params) { p.AdminAdjustMaxDelta = 0 },
			errMsg: "adjust max delta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := types.DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDefaultParamsValues(t *testing.T) {
	p := types.DefaultParams()

	require.Equal(t, types.DefaultDenom, p.Denom)
	require.Equal(t, math.LegacyNewDecWithPrec(5, 2), p.PlatformFeeRate)
	require.True(t, p.BronzeTaskValueLimit.LT(p.SilverTaskValueLimit))
	require.True(t, p.SilverTaskValueLimit.LT(p.GoldTaskValueLimit))
	require.EqualValues(t, 1000, p.InitialScore)
	// A fresh identity starts in silver.
	require.Equal(t, types.TIER_SILVER, types.TierForScore(types.ComputeOverallScore(p.InitialScore, p.InitialScore, p.InitialScore)))
}

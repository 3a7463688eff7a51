package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	"github.com/stretchr/testify/require"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

type rejectAllVerifier struct{}

func (rejectAllVerifier) Verify([]byte, types.ScorePayload) bool { return false }

func TestGetReputationSeedsDefaults(t *testing.T) {
	f := newMarketFixture(t)
	addr := testAddr().String()

	rep := f.k.GetReputation(f.ctx, addr)
	require.EqualValues(t, 1000, rep.Overall)
	require.EqualValues(t, 1000, rep.Quality)
	require.EqualValues(t, 1000, rep.Reliability)
	require.EqualValues(t, 1000, rep.Professionalism)
	require.Equal(t, types.TIER_SILVER, rep.Tier)

	// Reading alone writes nothing.
	require.Empty(t, f.k.GetAllReputations(f.ctx))
}

func TestApplyScoreUpdate(t *testing.T) {
	f := newMarketFixture(t)
	scorer := f.grantCap(t, types.CAPABILITY_SCORER)
	addr := testAddr().String()

	overall, tier, tierChanged, err := f.k.ApplyScoreUpdate(f.ctx, scorer.String(), addr, 1600, 1500, 1400, []byte{0x01})
	require.NoError(t, err)
	// (1600*40 + 1500*35 + 1400*25) / 100 = 1515.
	require.EqualValues(t, 1515, overall)
	require.Equal(t, types.TIER_GOLD, tier)
	require.True(t, tierChanged)

	rep := f.k.GetReputation(f.ctx, addr)
	require.EqualValues(t, 1600, rep.Quality)
	require.Equal(t, f.ctx.BlockTime(), rep.LastScoreUpdateAt)
}

func TestApplyScoreUpdateGuards(t *testing.T) {
	f := newMarketFixture(t)
	scorer := f.grantCap(t, types.CAPABILITY_SCORER)
	addr := testAddr().String()

	t.Run("scorer capability required", func(t *testing.T) {
		_, _, _, err := f.k.ApplyScoreUpdate(f.ctx, testAddr().String(), addr, 1000, 1000, 1000, []byte{0x01})
		require.ErrorIs(t, err, types.ErrUnauthorizedScorer)
	})

	t.Run("scores capped", func(t *testing.T) {
		_, _, _, err := f.k.ApplyScoreUpdate(f.ctx, scorer.String(), addr, types.MaxScore+1, 1000, 1000, []byte{0x01})
		require.ErrorIs(t, err, types.ErrInvalidScore)
	})

	t.Run("empty proof rejected", func(t *testing.T) {
		_, _, _, err := f.k.ApplyScoreUpdate(f.ctx, scorer.String(), addr, 1000, 1000, 1000, nil)
		require.ErrorIs(t, err, types.ErrInvalidScoreProof)
	})
}

func TestApplyScoreUpdateRateLimit(t *testing.T) {
	f := newMarketFixture(t)
	scorer := f.grantCap(t, types.CAPABILITY_SCORER)
	addr := testAddr().String()

	_, _, _, err := f.k.ApplyScoreUpdate(f.ctx, scorer.String(), addr, 1100, 1100, 1100, []byte{0x01})
	require.NoError(t, err)

	f.advance(12 * time.Hour)
	_, _, _, err = f.k.ApplyScoreUpdate(f.ctx, scorer.String(), addr, 1200, 1200, 1200, []byte{0x01})
	require.ErrorIs(t, err, types.ErrScoreUpdateTooFrequent)

	f.advance(12*time.Hour + time.Second)
	_, _, _, err = f.k.ApplyScoreUpdate(f.ctx, scorer.String(), addr, 1200, 1200, 1200, []byte{0x01})
	require.NoError(t, err)
}

func TestApplyScoreUpdateVerifierRejects(t *testing.T) {
	f := newMarketFixture(t)
	scorer := f.grantCap(t, types.CAPABILITY_SCORER)
	f.k.SetVerifier(rejectAllVerifier{})

	_, _, _, err := f.k.ApplyScoreUpdate(f.ctx, scorer.String(), testAddr().String(), 1000, 1000, 1000, []byte{0x01})
	require.ErrorIs(t, err, types.ErrInvalidScoreProof)
}

func TestApplyScoreUpdateSignedProof(t *testing.T) {
	f := newMarketFixture(t)
	scorer := f.grantCap(t, types.CAPABILITY_SCORER)
	addr := testAddr().String()

	priv := secp256k1.GenPrivKey()
	f.k.SetVerifier(types.NewPubKeyScoreVerifier(map[string]cryptotypes.PubKey{
		scorer.String(): priv.PubKey(),
	}))

	now := f.ctx.BlockTime()
	window := time.Unix(now.Unix()-now.Unix()%3600, 0).UTC()
	payload := types.ScorePayload{
		Address:         addr,
		Quality:         1200,
		Reliability:     1100,
		Professionalism: 1000,
		Window:          window,
	}
	proof, err := priv.Sign(payload.Bytes())
	require.NoError(t, err)

	overall, _, _, err := f.k.ApplyScoreUpdate(f.ctx, scorer.String(), addr, 1200, 1100, 1000, proof)
	require.NoError(t, err)
	require.EqualValues(t, 1115, overall)

	// A signature over different scores does not transfer.
	other := testAddr().String()
	_, _, _, err = f.k.ApplyScoreUpdate(f.ctx, scorer.String(), other, 1200, 1100, 1000, proof)
	require.ErrorIs(t, err, types.ErrInvalidScoreProof)
}

func TestAdminAdjustScore(t *testing.T) {
	f := newMarketFixture(t)
	admin := f.grantCap(t, types.CAPABILITY_ADMIN)
	addr := testAddr().String()

	t.Run("admin capability required", func(t *testing.T) {
		err := f.k.AdminAdjustScore(f.ctx, testAddr().String(), addr, 1050, "fraud review")
		require.ErrorIs(t, err, types.ErrUnauthorized)
	})

	t.Run("delta bounded", func(t *testing.T) {
		err := f.k.AdminAdjustScore(f.ctx, admin.String(), addr, 1200, "fraud review")
		require.ErrorIs(t, err, types.ErrAdjustmentTooLarge)
	})

	t.Run("adjustment leaves sub-scores alone", func(t *testing.T) {
		require.NoError(t, f.k.AdminAdjustScore(f.ctx, admin.String(), addr, 920, "fraud review"))

		rep := f.k.GetReputation(f.ctx, addr)
		require.EqualValues(t, 920, rep.Overall)
		require.EqualValues(t, 1000, rep.Quality)
		require.Equal(t, types.TIER_SILVER, rep.Tier)
	})
}

func TestApplyDecay(t *testing.T) {
	f := newMarketFixture(t)
	addr := testAddr().String()

	genesis := types.DefaultGenesis()
	genesis.Reputations = []types.ReputationScore{{
		Address:         addr,
		Quality:         1000,
		Reliability:     1000,
		Professionalism: 1000,
		Overall:         1000,
		Tier:            types.TIER_SILVER,
		TotalEarnings:   math.ZeroInt(),
		LastActivityAt:  f.ctx.BlockTime(),
	}}
	f.k.InitGenesis(f.ctx, *genesis)

	t.Run("no decay within the inactivity span", func(t *testing.T) {
		f.k.ApplyDecay(f.ctx, f.ctx.BlockTime().Add(89*24*time.Hour))
		rep := f.k.GetReputation(f.ctx, addr)
		require.EqualValues(t, 1000, rep.Overall)
	})

	t.Run("one point per period past the span", func(t *testing.T) {
		f.k.ApplyDecay(f.ctx, f.ctx.BlockTime().Add((90+65)*24*time.Hour))
		rep := f.k.GetReputation(f.ctx, addr)
		require.EqualValues(t, 998, rep.Overall)
		require.EqualValues(t, 998, rep.Quality)
		require.EqualValues(t, 998, rep.Reliability)
		// Professionalism never decays.
		require.EqualValues(t, 1000, rep.Professionalism)
	})

	t.Run("decay does not reapply for the same periods", func(t *testing.T) {
		f.k.ApplyDecay(f.ctx, f.ctx.BlockTime().Add((90+65)*24*time.Hour))
		rep := f.k.GetReputation(f.ctx, addr)
		require.EqualValues(t, 998, rep.Overall)
	})
}

func TestTaskCompletionFreesSlotAndBooksEarnings(t *testing.T) {
	f := newMarketFixture(t)
	taskID, _ := f.taskUnderReview(t, math.NewInt(1_000_000))

	require.EqualValues(t, 1, f.k.GetReputation(f.ctx, f.worker.String()).ActiveTasks)
	require.NoError(t, f.k.AcceptSubmission(f.ctx, f.requester.String(), taskID, nil))

	rep := f.k.GetReputation(f.ctx, f.worker.String())
	require.Zero(t, rep.ActiveTasks)
	require.EqualValues(t, 1, rep.CompletedTasks)
	require.True(t, rep.TotalEarnings.Equal(math.NewInt(950_000)))
	require.Equal(t, f.ctx.BlockTime(), rep.LastActivityAt)
}

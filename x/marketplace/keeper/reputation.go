package keeper

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

// GetReputation returns an identity's scoring state. Previously unseen
// identities are seeded at the configured initial score without being
// persisted; first mutation writes them.
func (k Keeper) GetReputation(ctx context.Context, address string) types.ReputationScore {
	addr, err := sdk.AccAddressFromBech32(address)
	if err != nil {
		return k.seedReputation(ctx, address)
	}

	store := k.getStore(ctx)
	bz := store.Get(ReputationKey(addr))
	if bz == nil {
		return k.seedReputation(ctx, address)
	}

	var rep types.ReputationScore
	k.mustUnmarshal(bz, &rep)
	return rep
}

func (k Keeper) seedReputation(ctx context.Context, address string) types.ReputationScore {
	initial := k.GetParams(ctx).InitialScore
	overall := types.ComputeOverallScore(initial, initial, initial)
	return types.ReputationScore{
		Address:         address,
		Quality:         initial,
		Reliability:     initial,
		Professionalism: initial,
		Overall:         overall,
		Tier:            types.TierForScore(overall),
		TotalEarnings:   math.ZeroInt(),
	}
}

func (k Keeper) setReputation(ctx context.Context, rep types.ReputationScore) {
	addr, err := sdk.AccAddressFromBech32(rep.Address)
	if err != nil {
		panic(fmt.Sprintf("reputation with malformed address %q", rep.Address))
	}

	store := k.getStore(ctx)
	store.Set(ReputationKey(addr), k.mustMarshal(rep))
}

// touchActivity stamps an identity's last activity, resetting its decay
// clock.
func (k Keeper) touchActivity(ctx context.Context, address string, now time.Time) {
	rep := k.GetReputation(ctx, address)
	rep.LastActivityAt = now
	k.setReputation(ctx, rep)
}

// recordTaskCompletion books a settled task against the worker's record and
// frees their concurrency slot.
func (k Keeper) recordTaskCompletion(ctx context.Context, worker string, earnings math.Int) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	rep := k.GetReputation(ctx, worker)
	rep.CompletedTasks++
	if rep.TotalEarnings.IsNil() {
		rep.TotalEarnings = math.ZeroInt()
	}
	rep.TotalEarnings = rep.TotalEarnings.Add(earnings)
	if rep.ActiveTasks > 0 {
		rep.ActiveTasks--
	}
	rep.LastActivityAt = sdkCtx.BlockTime()
	k.setReputation(ctx, rep)
}

// ApplyScoreUpdate applies a signed sub-score triple from the off-chain
// scoring service. Updates are rate-limited per identity and must carry a
// proof over the canonical payload for the current or previous proof window.
func (k Keeper) ApplyScoreUpdate(
	ctx context.Context,
	scorer string,
	address string,
	quality, reliability, professionalism uint32,
	proof []byte,
) (uint32, types.Tier, bool, error) {
	if err := k.checkNotPaused(ctx); err != nil {
		return 0, 0, false, err
	}
	if !k.HasCapability(ctx, scorer, types.CAPABILITY_SCORER) {
		return 0, 0, false, types.ErrUnauthorizedScorer.Wrapf("%s", scorer)
	}
	if quality > types.MaxScore || reliability > types.MaxScore || professionalism > types.MaxScore {
		return 0, 0, false, types.ErrInvalidScore
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()
	params := k.GetParams(ctx)

	rep := k.GetReputation(ctx, address)
	if !rep.LastScoreUpdateAt.IsZero() {
		nextAllowed := rep.LastScoreUpdateAt.Add(time.Duration(params.MinScoreUpdateIntervalSeconds) * time.Second)
		if now.Before(nextAllowed) {
			return 0, 0, false, types.ErrScoreUpdateTooFrequent.Wrapf("next update at %s", nextAllowed.UTC())
		}
	}

	if !k.verifyScoreProof(proof, address, quality, reliability, professionalism, now, params.ScoreProofWindowSeconds) {
		return 0, 0, false, types.ErrInvalidScoreProof
	}

	oldTier := rep.Tier

	rep.Quality = quality
	rep.Reliability = reliability
	rep.Professionalism = professionalism
	rep.Overall = types.ComputeOverallScore(quality, reliability, professionalism)
	rep.Tier = types.TierForScore(rep.Overall)
	rep.LastScoreUpdateAt = now
	rep.LastActivityAt = now
	k.setReputation(ctx, rep)

	tierChanged := rep.Tier != oldTier

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeScoreUpdated,
			sdk.NewAttribute(types.AttributeKeyAddress, address),
			sdk.NewAttribute(types.AttributeKeyOverallScore, fmt.Sprintf("%d", rep.Overall)),
			sdk.NewAttribute(types.AttributeKeyTier, rep.Tier.String()),
		),
	)
	if tierChanged {
		k.notifyTierChange(ctx, address, oldTier, rep.Tier)
	}
	return rep.Overall, rep.Tier, tierChanged, nil
}

// verifyScoreProof checks the proof against the canonical payload for the
// current window, falling back to the previous window to tolerate boundary
// crossings.
func (k Keeper) verifyScoreProof(proof []byte, address string, quality, reliability, professionalism uint32, now time.Time, windowSeconds uint64) bool {
	if k.verifier == nil {
		return false
	}

	window := time.Unix(now.Unix()-now.Unix()%int64(windowSeconds), 0).UTC()
	payload := types.ScorePayload{
		Address:         address,
		Quality:         quality,
		Reliability:     reliability,
		Professionalism: professionalism,
		Window:          window,
	}
	if k.verifier.Verify(proof, payload) {
		return true
	}

	payload.Window = window.Add(-time.Duration(windowSeconds) * time.Second)
	return k.verifier.Verify(proof, payload)
}

// AdminAdjustScore is the bounded emergency override of an overall score.
// Sub-scores are untouched; the next signed update recomputes the composite.
func (k Keeper) AdminAdjustScore(ctx context.Context, admin string, address string, newOverall uint32, reason string) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}
	if !k.HasCapability(ctx, admin, types.CAPABILITY_ADMIN) {
		return types.ErrUnauthorized.Wrap("admin capability required")
	}
	if newOverall > types.MaxScore {
		return types.ErrInvalidScore
	}

	params := k.GetParams(ctx)
	rep := k.GetReputation(ctx, address)

	delta := int64(newOverall) - int64(rep.Overall)
	if delta < 0 {
		delta = -delta
	}
	if delta > int64(params.AdminAdjustMaxDelta) {
		return types.ErrAdjustmentTooLarge.Wrapf(
			"delta %d exceeds limit %d", delta, params.AdminAdjustMaxDelta)
	}

	oldTier := rep.Tier
	rep.Overall = newOverall
	rep.Tier = types.TierForScore(newOverall)
	k.setReputation(ctx, rep)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.Logger().Info("admin score adjustment",
		"admin", admin, "address", address, "overall", newOverall, "reason", reason)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeScoreAdjusted,
			sdk.NewAttribute(types.AttributeKeyActor, admin),
			sdk.NewAttribute(types.AttributeKeyAddress, address),
			sdk.NewAttribute(types.AttributeKeyOverallScore, fmt.Sprintf("%d", newOverall)),
			sdk.NewAttribute(types.AttributeKeyReason, reason),
		),
	)
	if rep.Tier != oldTier {
		k.notifyTierChange(ctx, address, oldTier, rep.Tier)
	}
	return nil
}

// ApplyDecay walks all reputations and decays idle ones: after the
// inactivity span, one point per decay period comes off the overall score
// and the quality and reliability sub-scores. Runs from the end blocker and
// stays safe under pause.
func (k Keeper) ApplyDecay(ctx context.Context, now time.Time) {
	params := k.GetParams(ctx)
	inactivity := time.Duration(params.DecayInactivitySeconds) * time.Second
	period := time.Duration(params.DecayPeriodSeconds) * time.Second

	store := k.getStore(ctx)
	iterator := store.Iterator(ReputationKeyPrefix, endOfPrefix(ReputationKeyPrefix))

	type decayedRep struct {
		rep     types.ReputationScore
		oldTier types.Tier
	}
	var decayed []decayedRep
	for ; iterator.Valid(); iterator.Next() {
		var rep types.ReputationScore
		k.mustUnmarshal(iterator.Value(), &rep)

		if rep.LastActivityAt.IsZero() || now.Sub(rep.LastActivityAt) < inactivity {
			continue
		}

		start := rep.LastActivityAt.Add(inactivity)
		if rep.LastDecayAppliedAt.After(start) {
			start = rep.LastDecayAppliedAt
		}
		periods := int64(now.Sub(start) / period)
		if periods <= 0 {
			continue
		}

		points := uint32(periods)
		rep.Overall = saturatingSub(rep.Overall, points)
		rep.Quality = saturatingSub(rep.Quality, points)
		rep.Reliability = saturatingSub(rep.Reliability, points)
		rep.LastDecayAppliedAt = start.Add(time.Duration(periods) * period)

		oldTier := rep.Tier
		rep.Tier = types.TierForScore(rep.Overall)
		decayed = append(decayed, decayedRep{rep: rep, oldTier: oldTier})
	}
	iterator.Close()

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	for _, d := range decayed {
		k.setReputation(ctx, d.rep)
		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeScoreDecayed,
				sdk.NewAttribute(types.AttributeKeyAddress, d.rep.Address),
				sdk.NewAttribute(types.AttributeKeyOverallScore, fmt.Sprintf("%d", d.rep.Overall)),
			),
		)
		if d.rep.Tier != d.oldTier {
			k.notifyTierChange(ctx, d.rep.Address, d.oldTier, d.rep.Tier)
		}
	}
}

func saturatingSub(v, points uint32) uint32 {
	if points >= v {
		return 0
	}
	return v - points
}

// notifyTierChange emits the tier event and fires the hook.
func (k Keeper) notifyTierChange(ctx context.Context, address string, oldTier, newTier types.Tier) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTierChanged,
			sdk.NewAttribute(types.AttributeKeyAddress, address),
			sdk.NewAttribute(types.AttributeKeyPriorTier, oldTier.String()),
			sdk.NewAttribute(types.AttributeKeyTier, newTier.String()),
		),
	)

	if k.hooks != nil {
		addr, err := sdk.AccAddressFromBech32(address)
		if err != nil {
			return
		}
		if err := k.hooks.AfterTierChanged(ctx, addr, oldTier, newTier); err != nil {
			sdkCtx.Logger().Error("tier change hook failed", "address", address, "error", err)
		}
	}
}

// GetAllReputations returns every stored reputation record. Used by genesis
// export and invariants.
func (k Keeper) GetAllReputations(ctx context.Context) []types.ReputationScore {
	store := k.getStore(ctx)
	iterator := store.Iterator(ReputationKeyPrefix, endOfPrefix(ReputationKeyPrefix))
	defer iterator.Close()

	var reps []types.ReputationScore
	for ; iterator.Valid(); iterator.Next() {
		var rep types.ReputationScore
		k.mustUnmarshal(iterator.Value(), &rep)
		reps = append(reps, rep)
	}
	return reps
}

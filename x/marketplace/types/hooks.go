package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MarketplaceHooks defines callbacks for modules that want to react to
// marketplace events.
type MarketplaceHooks interface {
	// AfterTierChanged is called whenever an identity's tier bracket moves,
	// in either direction.
	AfterTierChanged(ctx context.Context, addr sdk.AccAddress, oldTier, newTier Tier) error

	// AfterTaskCompleted is called when escrow is fully settled and a task
	// reaches the completed status.
	AfterTaskCompleted(ctx context.Context, taskID uint64, worker sdk.AccAddress, payout sdkmath.Int) error

	// AfterDisputeResolved is called when a dispute reaches a terminal
	// outcome, whether automated or arbitrated.
	AfterDisputeResolved(ctx context.Context, disputeID uint64, outcome DisputeOutcome) error
}

// MultiMarketplaceHooks combines multiple hooks, calling each in order.
type MultiMarketplaceHooks []MarketplaceHooks

func NewMultiMarketplaceHooks(hooks ...MarketplaceHooks) MultiMarketplaceHooks {
	return hooks
}

func (h MultiMarketplaceHooks) AfterTierChanged(ctx context.Context, addr sdk.AccAddress, oldTier, newTier Tier) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterTierChanged(ctx, addr, oldTier, newTier); err != nil {
			return err
		}
	}
	return nil
}

func (h MultiMarketplaceHooks) AfterTaskCompleted(ctx context.Context, taskID uint64, worker sdk.AccAddress, payout sdkmath.Int) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterTaskCompleted(ctx, taskID, worker, payout); err != nil {
			return err
		}
	}
	return nil
}

func (h MultiMarketplaceHooks) AfterDisputeResolved(ctx context.Context, disputeID uint64, outcome DisputeOutcome) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterDisputeResolved(ctx, disputeID, outcome); err != nil {
			return err
		}
	}
	return nil
}

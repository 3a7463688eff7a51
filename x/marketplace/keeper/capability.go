package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

// HasCapability reports whether address holds the given capability. The
// module authority implicitly holds every capability so a freshly started
// chain can bootstrap grants.
func (k Keeper) HasCapability(ctx context.Context, address string, capability types.Capability) bool {
	if address == k.authority {
		return true
	}

	addr, err := sdk.AccAddressFromBech32(address)
	if err != nil {
		return false
	}

	store := k.getStore(ctx)
	return store.Has(CapabilityKey(addr, int32(capability)))
}

// GrantCapability grants a capability to an identity. The granter must hold
// the admin capability.
func (k Keeper) GrantCapability(ctx context.Context, admin string, address string, capability types.Capability) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}
	if !k.HasCapability(ctx, admin, types.CAPABILITY_ADMIN) {
		return types.ErrUnauthorized.Wrap("admin capability required")
	}

	addr, err := sdk.AccAddressFromBech32(address)
	if err != nil {
		return types.ErrInvalidAddress.Wrapf("grantee: %v", err)
	}

	store := k.getStore(ctx)
	grant := types.CapabilityGrant{Address: address, Capability: capability}
	store.Set(CapabilityKey(addr, int32(capability)), k.mustMarshal(grant))

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCapabilityGranted,
			sdk.NewAttribute(types.AttributeKeyActor, admin),
			sdk.NewAttribute(types.AttributeKeyAddress, address),
			sdk.NewAttribute(types.AttributeKeyCapability, capability.String()),
		),
	)
	return nil
}

// RevokeCapability revokes an identity's capability. The revoker must hold
// the admin capability. Revoking an absent grant is a no-op.
func (k Keeper) RevokeCapability(ctx context.Context, admin string, address string, capability types.Capability) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}
	if !k.HasCapability(ctx, admin, types.CAPABILITY_ADMIN) {
		return types.ErrUnauthorized.Wrap("admin capability required")
	}

	addr, err := sdk.AccAddressFromBech32(address)
	if err != nil {
		return types.ErrInvalidAddress.Wrapf("grantee: %v", err)
	}

	store := k.getStore(ctx)
	store.Delete(CapabilityKey(addr, int32(capability)))

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCapabilityRevoked,
			sdk.NewAttribute(types.AttributeKeyActor, admin),
			sdk.NewAttribute(types.AttributeKeyAddress, address),
			sdk.NewAttribute(types.AttributeKeyCapability, capability.String()),
		),
	)
	return nil
}

// GetAllCapabilityGrants returns every stored capability grant. Used by
// genesis export.
func (k Keeper) GetAllCapabilityGrants(ctx context.Context) []types.CapabilityGrant {
	store := k.getStore(ctx)
	iterator := store.Iterator(CapabilityKeyPrefix, endOfPrefix(CapabilityKeyPrefix))
	defer iterator.Close()

	var grants []types.CapabilityGrant
	for ; iterator.Valid(); iterator.Next() {
		var grant types.CapabilityGrant
		k.mustUnmarshal(iterator.Value(), &grant)
		grants = append(grants, grant)
	}
	return grants
}

// anyModeratorExists reports whether any identity holds the moderator
// capability. All capability grants share a prefix, so this scans grants and
// inspects the trailing capability bytes.
func (k Keeper) anyModeratorExists(ctx context.Context) bool {
	store := k.getStore(ctx)
	iterator := store.Iterator(CapabilityKeyPrefix, endOfPrefix(CapabilityKeyPrefix))
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var grant types.CapabilityGrant
		k.mustUnmarshal(iterator.Value(), &grant)
		if grant.Capability == types.CAPABILITY_MODERATOR {
			return true
		}
	}
	return false
}

// endOfPrefix returns the exclusive upper bound for iterating a key prefix.
func endOfPrefix(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

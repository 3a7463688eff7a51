package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

func TestGrantCapability(t *testing.T) {
	f := newMarketFixture(t)
	grantee := testAddr()

	require.False(t, f.k.HasCapability(f.ctx, grantee.String(), types.CAPABILITY_MODERATOR))
	require.NoError(t, f.k.GrantCapability(f.ctx, f.k.GetAuthority(), grantee.String(), types.CAPABILITY_MODERATOR))
	require.True(t, f.k.HasCapability(f.ctx, grantee.String(), types.CAPABILITY_MODERATOR))

	// The grant is capability-scoped.
	require.False(t, f.k.HasCapability(f.ctx, grantee.String(), types.CAPABILITY_SCORER))

	grants := f.k.GetAllCapabilityGrants(f.ctx)
	require.Len(t, grants, 1)
	require.Equal(t, grantee.String(), grants[0].Address)
	require.Equal(t, types.CAPABILITY_MODERATOR, grants[0].Capability)
}

func TestGrantCapabilityRequiresAdmin(t *testing.T) {
	f := newMarketFixture(t)
	grantee := testAddr()

	err := f.k.GrantCapability(f.ctx, testAddr().String(), grantee.String(), types.CAPABILITY_MODERATOR)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	// A granted admin can grant further capabilities.
	admin := testAddr()
	require.NoError(t, f.k.GrantCapability(f.ctx, f.k.GetAuthority(), admin.String(), types.CAPABILITY_ADMIN))
	require.NoError(t, f.k.GrantCapability(f.ctx, admin.String(), grantee.String(), types.CAPABILITY_MODERATOR))
}

func TestRevokeCapability(t *testing.T) {
	f := newMarketFixture(t)
	grantee := testAddr()
	require.NoError(t, f.k.GrantCapability(f.ctx, f.k.GetAuthority(), grantee.String(), types.CAPABILITY_SCORER))

	require.ErrorIs(t, f.k.RevokeCapability(f.ctx, testAddr().String(), grantee.String(), types.CAPABILITY_SCORER), types.ErrUnauthorized)

	require.NoError(t, f.k.RevokeCapability(f.ctx, f.k.GetAuthority(), grantee.String(), types.CAPABILITY_SCORER))
	require.False(t, f.k.HasCapability(f.ctx, grantee.String(), types.CAPABILITY_SCORER))
}

func TestAuthorityHoldsEveryCapability(t *testing.T) {
	f := newMarketFixture(t)
	authority := f.k.GetAuthority()

	for _, capability := range []types.Capability{
		types.CAPABILITY_ADMIN,
		types.CAPABILITY_PAUSER,
		types.CAPABILITY_MODERATOR,
		types.CAPABILITY_ARBITRATOR_AUTHORIZER,
		types.CAPABILITY_SCORER,
		types.CAPABILITY_ARBITRATOR,
		types.CAPABILITY_ANALYSIS,
	} {
		require.True(t, f.k.HasCapability(f.ctx, authority, capability), capability.String())
	}
}

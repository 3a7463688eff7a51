package keeper

import (
	"context"

	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

// Keeper of the marketplace store
type Keeper struct {
	storeKey      storetypes.StoreKey
	cdc           *codec.LegacyAmino
	bankKeeper    types.BankKeeper
	accountKeeper types.AccountKeeper
	authority     string
	verifier      types.ScoreVerifier
	hooks         types.MarketplaceHooks
}

type kvStoreProvider interface {
	KVStore(key storetypes.StoreKey) storetypes.KVStore
}

// NewKeeper creates a new marketplace Keeper instance
func NewKeeper(
	cdc *codec.LegacyAmino,
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	accountKeeper types.AccountKeeper,
	authority string,
	verifier types.ScoreVerifier,
) *Keeper {
	return &Keeper{
		storeKey:      key,
		cdc:           cdc,
		bankKeeper:    bankKeeper,
		accountKeeper: accountKeeper,
		authority:     authority,
		verifier:      verifier,
	}
}

// GetAuthority returns the module's configured authority address
func (k Keeper) GetAuthority() string {
	return k.authority
}

// SetHooks sets the marketplace hooks. Panics if called more than once.
func (k *Keeper) SetHooks(h types.MarketplaceHooks) *Keeper {
	if k.hooks != nil {
		panic("cannot set marketplace hooks twice")
	}
	k.hooks = h
	return k
}

// SetVerifier replaces the score proof verifier. Used by the app wiring and
// by tests.
func (k *Keeper) SetVerifier(v types.ScoreVerifier) {
	k.verifier = v
}

// getStore returns the KVStore for the marketplace module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	if provider, ok := ctx.(kvStoreProvider); ok {
		return provider.KVStore(k.storeKey)
	}

	unwrapped := sdk.UnwrapSDKContext(ctx)
	return unwrapped.KVStore(k.storeKey)
}

// mustMarshal encodes a state object with the module codec. State objects are
// module-defined and always marshalable; failure indicates programmer error.
func (k Keeper) mustMarshal(v interface{}) []byte {
	bz, err := k.cdc.MarshalJSON(v)
	if err != nil {
		panic(err)
	}
	return bz
}

func (k Keeper) mustUnmarshal(bz []byte, v interface{}) {
	if err := k.cdc.UnmarshalJSON(bz, v); err != nil {
		panic(err)
	}
}

// moduleAddress returns the marketplace module account address
func (k Keeper) moduleAddress() sdk.AccAddress {
	return k.accountKeeper.GetModuleAddress(types.ModuleName)
}

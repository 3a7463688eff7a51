package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	minttypes "github.com/cosmos/cosmos-sdk/x/mint/types"
	"github.com/stretchr/testify/require"

	"github.com/taskchain-labs/taskchain/x/marketplace/keeper"
	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

// AcceptAllVerifier treats every non-empty proof as valid. Tests that
// exercise proof rejection install their own verifier.
type AcceptAllVerifier struct{}

func (AcceptAllVerifier) Verify(proof []byte, _ types.ScorePayload) bool {
	return len(proof) > 0
}

// MarketplaceKeeper creates a test keeper for the marketplace module backed
// by real auth and bank keepers over an in-memory store.
func MarketplaceKeeper(t testing.TB) (*keeper.Keeper, sdk.Context) {
	k, _, ctx := MarketplaceKeeperWithBank(t)
	return k, ctx
}

// MarketplaceKeeperWithBank also exposes the bank keeper so tests can fund
// accounts and inspect module custody.
func MarketplaceKeeperWithBank(t testing.TB) (*keeper.Keeper, bankkeeper.BaseKeeper, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	authStoreKey := storetypes.NewKVStoreKey(authtypes.StoreKey)
	bankStoreKey := storetypes.NewKVStoreKey(banktypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(authStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(bankStoreKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	registry := codectypes.NewInterfaceRegistry()
	authtypes.RegisterInterfaces(registry)
	banktypes.RegisterInterfaces(registry)
	cdc := codec.NewProtoCodec(registry)
	authority := authtypes.NewModuleAddress(govtypes.ModuleName)

	maccPerms := map[string][]string{
		authtypes.FeeCollectorName: nil,
		minttypes.ModuleName:       {authtypes.Minter},
		types.ModuleName:           nil,
	}

	accountKeeper := authkeeper.NewAccountKeeper(
		cdc,
		runtime.NewKVStoreService(authStoreKey),
		authtypes.ProtoBaseAccount,
		maccPerms,
		address.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix()),
		sdk.GetConfig().GetBech32AccountAddrPrefix(),
		authority.String(),
	)

	bankKeeper := bankkeeper.NewBaseKeeper(
		cdc,
		runtime.NewKVStoreService(bankStoreKey),
		accountKeeper,
		map[string]bool{},
		authority.String(),
		log.NewNopLogger(),
	)

	k := keeper.NewKeeper(
		codec.NewLegacyAmino(),
		storeKey,
		bankKeeper,
		accountKeeper,
		authority.String(),
		AcceptAllVerifier{},
	)

	header := cmtproto.Header{Time: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	ctx := sdk.NewContext(stateStore, header, false, log.NewNopLogger())

	require.NoError(t, k.SetParams(ctx, types.DefaultParams()))

	return k, bankKeeper, ctx
}

// FundAccount mints test denom to an account through the mint module.
func FundAccount(t testing.TB, ctx sdk.Context, bk bankkeeper.BaseKeeper, addr sdk.AccAddress, amount math.Int) {
	coins := sdk.NewCoins(sdk.NewCoin(types.DefaultDenom, amount))
	require.NoError(t, bk.MintCoins(ctx, minttypes.ModuleName, coins))
	require.NoError(t, bk.SendCoinsFromModuleToAccount(ctx, minttypes.ModuleName, addr, coins))
}

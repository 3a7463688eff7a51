package marketplace

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/taskchain-labs/taskchain/x/marketplace/client/cli"
	"github.com/taskchain-labs/taskchain/x/marketplace/keeper"
	markettypes "github.com/taskchain-labs/taskchain/x/marketplace/types"
)

// AppModuleBasic defines the basic application module for the marketplace
// module.
type AppModuleBasic struct {
	cdc codec.Codec
}

// Name returns the marketplace module's name.
func (AppModuleBasic) Name() string {
	return markettypes.ModuleName
}

// RegisterLegacyAminoCodec registers the marketplace module's types on the
// LegacyAmino codec.
func (AppModuleBasic) RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	markettypes.RegisterLegacyAminoCodec(cdc)
}

// RegisterInterfaces registers the marketplace module's interface types
func (AppModuleBasic) RegisterInterfaces(registry codectypes.InterfaceRegistry) {
	markettypes.RegisterInterfaces(registry)
}

// DefaultGenesis returns default genesis state as raw bytes for the
// marketplace module.
func (AppModuleBasic) DefaultGenesis(codec.JSONCodec) json.RawMessage {
	return markettypes.ModuleCdc.MustMarshalJSON(markettypes.DefaultGenesis())
}

// ValidateGenesis performs genesis state validation for the marketplace
// module.
func (AppModuleBasic) ValidateGenesis(_ codec.JSONCodec, _ client.TxEncodingConfig, bz json.RawMessage) error {
	var genState markettypes.GenesisState
	if err := markettypes.ModuleCdc.UnmarshalJSON(bz, &genState); err != nil {
		return fmt.Errorf("failed to unmarshal %s genesis state: %w", markettypes.ModuleName, err)
	}
	return genState.Validate()
}

// GetTxCmd returns the root tx command for the marketplace module.
func (AppModuleBasic) GetTxCmd() *cobra.Command {
	return cli.GetTxCmd()
}

// GetQueryCmd returns the root query command for the marketplace module.
func (AppModuleBasic) GetQueryCmd() *cobra.Command {
	return cli.GetQueryCmd()
}

// AppModule implements an application module for the marketplace module.
type AppModule struct {
	AppModuleBasic
	keeper *keeper.Keeper
}

// NewAppModule creates a new AppModule object
func NewAppModule(cdc codec.Codec, keeper *keeper.Keeper) AppModule {
	return AppModule{
		AppModuleBasic: AppModuleBasic{cdc: cdc},
		keeper:         keeper,
	}
}

// IsAppModule implements the appmodule.AppModule interface.
func (am AppModule) IsAppModule() {}

// IsOnePerModuleType implements the appmodule.AppModule interface.
func (am AppModule) IsOnePerModuleType() {}

// RegisterInvariants registers the marketplace module's invariants.
func (am AppModule) RegisterInvariants(ir sdk.InvariantRegistry) {
	keeper.RegisterInvariants(ir, *am.keeper)
}

// MsgServer returns the module's transaction surface.
func (am AppModule) MsgServer() markettypes.MsgServer {
	return keeper.NewMsgServerImpl(*am.keeper)
}

// QueryServer returns the module's read-only surface.
func (am AppModule) QueryServer() markettypes.QueryServer {
	return keeper.NewQueryServerImpl(*am.keeper)
}

// ConsensusVersion implements AppModule/ConsensusVersion.
func (AppModule) ConsensusVersion() uint64 { return 1 }

// InitGenesis performs genesis initialization for the marketplace module.
func (am AppModule) InitGenesis(ctx sdk.Context, _ codec.JSONCodec, gs json.RawMessage) {
	var genState markettypes.GenesisState
	markettypes.ModuleCdc.MustUnmarshalJSON(gs, &genState)
	am.keeper.InitGenesis(ctx, genState)
}

// ExportGenesis returns the exported genesis state as raw bytes for the
// marketplace module.
func (am AppModule) ExportGenesis(ctx sdk.Context, _ codec.JSONCodec) json.RawMessage {
	genState := am.keeper.ExportGenesis(ctx)
	return markettypes.ModuleCdc.MustMarshalJSON(genState)
}

// EndBlock runs the marketplace module's time-triggered transitions. This is
// called at the end of every block.
func (am AppModule) EndBlock(ctx context.Context) error {
	return am.keeper.EndBlocker(ctx)
}

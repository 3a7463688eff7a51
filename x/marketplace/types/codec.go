package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterLegacyAminoCodec registers the marketplace concrete message types on
// the provided LegacyAmino codec. These types are used for Amino JSON
// serialization.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgCreateTask{}, "taskchain/marketplace/MsgCreateTask", nil)
	cdc.RegisterConcrete(&MsgClaimTask{}, "taskchain/marketplace/MsgClaimTask", nil)
	cdc.RegisterConcrete(&MsgRequestCancellation{}, "taskchain/marketplace/MsgRequestCancellation", nil)
	cdc.RegisterConcrete(&MsgApproveCancellation{}, "taskchain/marketplace/MsgApproveCancellation", nil)
	cdc.RegisterConcrete(&MsgRejectCancellation{}, "taskchain/marketplace/MsgRejectCancellation", nil)
	cdc.RegisterConcrete(&MsgProcessExpiredCancellation{}, "taskchain/marketplace/MsgProcessExpiredCancellation", nil)
	cdc.RegisterConcrete(&MsgSubmitWork{}, "taskchain/marketplace/MsgSubmitWork", nil)
	cdc.RegisterConcrete(&MsgStartReview{}, "taskchain/marketplace/MsgStartReview", nil)
	cdc.RegisterConcrete(&MsgAcceptSubmission{}, "taskchain/marketplace/MsgAcceptSubmission", nil)
	cdc.RegisterConcrete(&MsgRejectSubmission{}, "taskchain/marketplace/MsgRejectSubmission", nil)
	cdc.RegisterConcrete(&MsgRequestRevision{}, "taskchain/marketplace/MsgRequestRevision", nil)
	cdc.RegisterConcrete(&MsgResubmitWork{}, "taskchain/marketplace/MsgResubmitWork", nil)
	cdc.RegisterConcrete(&MsgRaiseDispute{}, "taskchain/marketplace/MsgRaiseDispute", nil)
	cdc.RegisterConcrete(&MsgSubmitDisputeAnalysis{}, "taskchain/marketplace/MsgSubmitDisputeAnalysis", nil)
	cdc.RegisterConcrete(&MsgAssignArbitrator{}, "taskchain/marketplace/MsgAssignArbitrator", nil)
	cdc.RegisterConcrete(&MsgResolveDispute{}, "taskchain/marketplace/MsgResolveDispute", nil)
	cdc.RegisterConcrete(&MsgAppealDispute{}, "taskchain/marketplace/MsgAppealDispute", nil)
	cdc.RegisterConcrete(&MsgWithdraw{}, "taskchain/marketplace/MsgWithdraw", nil)
	cdc.RegisterConcrete(&MsgApplyScoreUpdate{}, "taskchain/marketplace/MsgApplyScoreUpdate", nil)
	cdc.RegisterConcrete(&MsgAdminAdjustScore{}, "taskchain/marketplace/MsgAdminAdjustScore", nil)
	cdc.RegisterConcrete(&MsgGrantCapability{}, "taskchain/marketplace/MsgGrantCapability", nil)
	cdc.RegisterConcrete(&MsgRevokeCapability{}, "taskchain/marketplace/MsgRevokeCapability", nil)
	cdc.RegisterConcrete(&MsgPause{}, "taskchain/marketplace/MsgPause", nil)
	cdc.RegisterConcrete(&MsgUnpause{}, "taskchain/marketplace/MsgUnpause", nil)
	cdc.RegisterConcrete(&MsgUpdateParams{}, "taskchain/marketplace/MsgUpdateParams", nil)
}

// RegisterInterfaces registers the marketplace message types with the
// interface registry.
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgCreateTask{},
		&MsgClaimTask{},
		&MsgRequestCancellation{},
		&MsgApproveCancellation{},
		&MsgRejectCancellation{},
		&MsgProcessExpiredCancellation{},
		&MsgSubmitWork{},
		&MsgStartReview{},
		&MsgAcceptSubmission{},
		&MsgRejectSubmission{},
		&MsgRequestRevision{},
		&MsgResubmitWork{},
		&MsgRaiseDispute{},
		&MsgSubmitDisputeAnalysis{},
		&MsgAssignArbitrator{},
		&MsgResolveDispute{},
		&MsgAppealDispute{},
		&MsgWithdraw{},
		&MsgApplyScoreUpdate{},
		&MsgAdminAdjustScore{},
		&MsgGrantCapability{},
		&MsgRevokeCapability{},
		&MsgPause{},
		&MsgUnpause{},
		&MsgUpdateParams{},
	)
}

var (
	amino = codec.NewLegacyAmino()

	// ModuleCdc is the module's Amino codec. Genesis and stored state are
	// serialized with it.
	ModuleCdc = amino
)

func init() {
	RegisterLegacyAminoCodec(amino)
}

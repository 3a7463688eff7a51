package types_test

import (
	"bytes"
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

func sampleAddress() string {
	return sdk.AccAddress(secp256k1.GenPrivKey().PubKey().Address()).String()
}

func sampleHash() []byte {
	return bytes.Repeat([]byte{0x42}, types.ContentHashLength)
}

func TestMsgCreateTaskValidateBasic(t *testing.T) {
	addr := sampleAddress()
	deadline := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		msg     types.MsgCreateTask
		wantErr error
	}{
		{
			name: "valid",
			msg: types.MsgCreateTask{
				Requester:        addr,
				RequirementsHash: sampleHash(),
				Deadline:         deadline,
				Deposit:          math.NewInt(10000),
			},
		},
		{
			name: "bad requester",
			msg: types.MsgCreateTask{
				Requester:        "not-an-address",
				RequirementsHash: sampleHash(),
				Deadline:         deadline,
				Deposit:          math.NewInt(10000),
			},
			wantErr: types.ErrInvalidAddress,
		},
		{
			name: "short requirements hash",
			msg: types.MsgCreateTask{
				Requester:        addr,
				RequirementsHash: []byte{0x01},
				Deadline:         deadline,
				Deposit:          math.NewInt(10000),
			},
			wantErr: types.ErrInvalidContentHash,
		},
		{
			name: "nil deposit",
			msg: types.MsgCreateTask{
				Requester:        addr,
				RequirementsHash: sampleHash(),
				Deadline:         deadline,
			},
			wantErr: types.ErrZeroAmount,
		},
		{
			name: "reputation floor over max",
			msg: types.MsgCreateTask{
				Requester:        addr,
				RequirementsHash: sampleHash(),
				Deadline:         deadline,
				MinReputation:    types.MaxScore + 1,
				Deposit:          math.NewInt(10000),
			},
			wantErr: types.ErrInvalidReputationFloor,
		},
		{
			name: "missing deadline",
			msg: types.MsgCreateTask{
				Requester:        addr,
				RequirementsHash: sampleHash(),
				Deposit:          math.NewInt(10000),
			},
			wantErr: types.ErrInvalidDeadline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.ValidateBasic()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestMsgClaimTaskValidateBasic(t *testing.T) {
	require.NoError(t, (&types.MsgClaimTask{Worker: sampleAddress(), TaskId: 1}).ValidateBasic())
	require.ErrorIs(t, (&types.MsgClaimTask{Worker: "bad", TaskId: 1}).ValidateBasic(), types.ErrInvalidAddress)
	require.ErrorIs(t, (&types.MsgClaimTask{Worker: sampleAddress()}).ValidateBasic(), types.ErrValidationFailed)
}

func TestMsgSubmitWorkValidateBasic(t *testing.T) {
	addr := sampleAddress()
	require.NoError(t, (&types.MsgSubmitWork{Worker: addr, TaskId: 1, WorkHash: sampleHash()}).ValidateBasic())
	require.ErrorIs(t, (&types.MsgSubmitWork{Worker: addr, TaskId: 0, WorkHash: sampleHash()}).ValidateBasic(), types.ErrValidationFailed)
	require.ErrorIs(t, (&types.MsgSubmitWork{Worker: addr, TaskId: 1, WorkHash: []byte("short")}).ValidateBasic(), types.ErrInvalidContentHash)
}

func TestMsgAcceptSubmissionValidateBasic(t *testing.T) {
	addr := sampleAddress()
	// Feedback is optional on acceptance, but malformed feedback is rejected.
	require.NoError(t, (&types.MsgAcceptSubmission{Requester: addr, TaskId: 1}).ValidateBasic())
	require.NoError(t, (&types.MsgAcceptSubmission{Requester: addr, TaskId: 1, FeedbackHash: sampleHash()}).ValidateBasic())
	require.ErrorIs(t, (&types.MsgAcceptSubmission{Requester: addr, TaskId: 1, FeedbackHash: []byte{1}}).ValidateBasic(), types.ErrInvalidContentHash)
}

func TestMsgRejectSubmissionValidateBasic(t *testing.T) {
	addr := sampleAddress()
	require.NoError(t, (&types.MsgRejectSubmission{Requester: addr, TaskId: 1, FeedbackHash: sampleHash()}).ValidateBasic())
	require.ErrorIs(t, (&types.MsgRejectSubmission{Requester: addr, TaskId: 1}).ValidateBasic(), types.ErrFeedbackRequired)
}

func TestMsgRaiseDisputeValidateBasic(t *testing.T) {
	addr := sampleAddress()
	valid := types.MsgRaiseDispute{
		Initiator:    addr,
		TaskId:       1,
		Reason:       types.DISPUTE_REASON_QUALITY,
		EvidenceHash: sampleHash(),
	}
	require.NoError(t, valid.ValidateBasic())

	missingReason := valid
	missingReason.Reason = types.DISPUTE_REASON_UNSPECIFIED
	require.ErrorIs(t, missingReason.ValidateBasic(), types.ErrValidationFailed)

	badEvidence := valid
	badEvidence.EvidenceHash = nil
	require.ErrorIs(t, badEvidence.ValidateBasic(), types.ErrInvalidContentHash)
}

func TestMsgSubmitDisputeAnalysisValidateBasic(t *testing.T) {
	addr := sampleAddress()
	valid := types.MsgSubmitDisputeAnalysis{
		Analyst:            addr,
		DisputeId:          1,
		Confidence:         85,
		RecommendedOutcome: types.DISPUTE_OUTCOME_FULL_PAYMENT_TO_WORKER,
		RecommendationHash: sampleHash(),
	}
	require.NoError(t, valid.ValidateBasic())

	zeroConfidence := valid
	zeroConfidence.Confidence = 0
	require.ErrorIs(t, zeroConfidence.ValidateBasic(), types.ErrInvalidConfidence)

	overConfidence := valid
	overConfidence.Confidence = 101
	require.ErrorIs(t, overConfidence.ValidateBasic(), types.ErrInvalidConfidence)

	noOutcome := valid
	noOutcome.RecommendedOutcome = types.DISPUTE_OUTCOME_UNSPECIFIED
	require.ErrorIs(t, noOutcome.ValidateBasic(), types.ErrValidationFailed)
}

func TestMsgResolveDisputeValidateBasic(t *testing.T) {
	addr := sampleAddress()
	valid := types.MsgResolveDispute{
		Arbitrator:    addr,
		DisputeId:     1,
		Outcome:       types.DISPUTE_OUTCOME_PARTIAL_PAYMENT,
		ReasoningHash: sampleHash(),
	}
	require.NoError(t, valid.ValidateBasic())

	overSplit := valid
	overSplit.PaymentPercentage = 101
	require.ErrorIs(t, overSplit.ValidateBasic(), types.ErrInvalidPercentage)
}

func TestMsgWithdrawValidateBasic(t *testing.T) {
	addr := sampleAddress()
	require.NoError(t, (&types.MsgWithdraw{Address: addr, Amount: math.NewInt(1)}).ValidateBasic())
	require.ErrorIs(t, (&types.MsgWithdraw{Address: addr, Amount: math.ZeroInt()}).ValidateBasic(), types.ErrZeroAmount)
	require.ErrorIs(t, (&types.MsgWithdraw{Address: addr}).ValidateBasic(), types.ErrZeroAmount)
}

func TestMsgApplyScoreUpdateValidateBasic(t *testing.T) {
	scorer, subject := sampleAddress(), sampleAddress()
	valid := types.MsgApplyScoreUpdate{
		Scorer:          scorer,
		Address:         subject,
		Quality:         1200,
		Reliability:     1100,
		Professionalism: 900,
		Proof:           []byte{0x01},
	}
	require.NoError(t, valid.ValidateBasic())

	overScore := valid
	overScore.Quality = types.MaxScore + 1
	require.ErrorIs(t, overScore.ValidateBasic(), types.ErrInvalidScore)

	noProof := valid
	noProof.Proof = nil
	require.ErrorIs(t, noProof.ValidateBasic(), types.ErrInvalidScoreProof)
}

func TestMsgAdminAdjustScoreValidateBasic(t *testing.T) {
	admin, subject := sampleAddress(), sampleAddress()
	require.NoError(t, (&types.MsgAdminAdjustScore{Admin: admin, Address: subject, NewOverall: 900, Reason: "manual review"}).ValidateBasic())
	require.ErrorIs(t, (&types.MsgAdminAdjustScore{Admin: admin, Address: subject, NewOverall: 900}).ValidateBasic(), types.ErrValidationFailed)
	require.ErrorIs(t, (&types.MsgAdminAdjustScore{Admin: admin, Address: subject, NewOverall: types.MaxScore + 1, Reason: "x"}).ValidateBasic(), types.ErrInvalidScore)
}

func TestMsgGrantCapabilityValidateBasic(t *testing.T) {
	admin, grantee := sampleAddress(), sampleAddress()
	require.NoError(t, (&types.MsgGrantCapability{Admin: admin, Address: grantee, Capability: types.CAPABILITY_MODERATOR}).ValidateBasic())
	require.ErrorIs(t, (&types.MsgGrantCapability{Admin: admin, Address: grantee}).ValidateBasic(), types.ErrValidationFailed)
	require.ErrorIs(t, (&types.MsgRevokeCapability{Admin: admin, Address: grantee}).ValidateBasic(), types.ErrValidationFailed)
}

func TestMsgUpdateParamsValidateBasic(t *testing.T) {
	addr := sampleAddress()
	require.NoError(t, (&types.MsgUpdateParams{Authority: addr, Params: types.DefaultParams()}).ValidateBasic())

	bad := types.DefaultParams()
	bad.Denom = ""
	require.Error(t, (&types.MsgUpdateParams{Authority: addr, Params: bad}).ValidateBasic())
}

func TestMsgGetSigners(t *testing.T) {
	addr := sdk.AccAddress(secp256k1.GenPrivKey().PubKey().Address())

	require.Equal(t, []sdk.AccAddress{addr}, (&types.MsgCreateTask{Requester: addr.String()}).GetSigners())
	require.Equal(t, []sdk.AccAddress{addr}, (&types.MsgClaimTask{Worker: addr.String()}).GetSigners())
	require.Equal(t, []sdk.AccAddress{addr}, (&types.MsgWithdraw{Address: addr.String()}).GetSigners())
	require.Equal(t, []sdk.AccAddress{addr}, (&types.MsgPause{Pauser: addr.String()}).GetSigners())
}

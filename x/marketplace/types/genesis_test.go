package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

func validGenesisTask(id uint64) types.Task {
	return types.Task{
		Id:               id,
		Requester:        sampleAddress(),
		Status:           types.TASK_STATUS_OPEN,
		EscrowAmount:     math.NewInt(10000),
		PlatformFee:      math.NewInt(500),
		RequirementsHash: sampleHash(),
	}
}

func TestDefaultGenesisValidate(t *testing.T) {
	require.NoError(t, types.DefaultGenesis().Validate())
}

func TestGenesisValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(gs *types.GenesisState)
		errMsg string
	}{
		{
			name: "invalid params",
			mutate: func(gs *types.GenesisState) {
				gs.Params.Denom = ""
			},
			errMsg: "invalid params",
		},
		{
			name: "zero task id",
			mutate: func(gs *types.GenesisState) {
				gs.Tasks = []types.Task{validGenesisTask(0)}
			},
			errMsg: "task id cannot be zero",
		},
		{
			name: "duplicate task id",
			mutate: func(gs *types.GenesisState) {
				gs.Tasks = []types.Task{validGenesisTask(1), validGenesisTask(1)}
			},
			errMsg: "duplicate task id",
		},
		{
			name: "malformed requirements hash",
			mutate: func(gs *types.GenesisState) {
				task := validGenesisTask(1)
				task.RequirementsHash = []byte{0x01}
				gs.Tasks = []types.Task{task}
			},
			errMsg: "requirements hash",
		},
		{
			name: "cancellation for unknown task",
			mutate: func(gs *types.GenesisState) {
				gs.CancellationRequests = []types.CancellationRequest{{TaskId: 9}}
			},
			errMsg: "unknown task",
		},
		{
			name: "submission for unknown task",
			mutate: func(gs *types.GenesisState) {
				gs.Submissions = []types.Submission{{Id: 1, TaskId: 9}}
			},
			errMsg: "unknown task",
		},
		{
			name: "two active submissions on one task",
			mutate: func(gs *types.GenesisState) {
				gs.Tasks = []types.Task{validGenesisTask(1)}
				gs.Submissions = []types.Submission{
					{Id: 1, TaskId: 1, Status: types.SUBMISSION_STATUS_PENDING},
					{Id: 2, TaskId: 1, Status: types.SUBMISSION_STATUS_UNDER_REVIEW},
				}
			},
			errMsg: "multiple active submissions",
		},
		{
			name: "two disputes on one task",
			mutate: func(gs *types.GenesisState) {
				gs.Tasks = []types.Task{validGenesisTask(1)}
				gs.Disputes = []types.Dispute{
					{Id: 1, TaskId: 1},
					{Id: 2, TaskId: 1},
				}
			},
			errMsg: "multiple disputes",
		},
		{
			name: "duplicate escrow account",
			mutate: func(gs *types.GenesisState) {
				addr := sampleAddress()
				acct := types.EscrowAccount{Address: addr, Locked: math.ZeroInt(), Available: math.ZeroInt()}
				gs.EscrowAccounts = []types.EscrowAccount{acct, acct}
			},
			errMsg: "duplicate escrow account",
		},
		{
			name: "negative escrow balance",
			mutate: func(gs *types.GenesisState) {
				gs.EscrowAccounts = []types.EscrowAccount{{
					Address:   sampleAddress(),
					Locked:    math.NewInt(-1),
					Available: math.ZeroInt(),
				}}
			},
			errMsg: "negative balances",
		},
		{
			name: "task escrow for unknown task",
			mutate: func(gs *types.GenesisState) {
				gs.TaskEscrows = []types.TaskEscrow{{TaskId: 9, Balance: math.NewInt(1)}}
			},
			errMsg: "unknown task",
		},
		{
			name: "negative ledger total",
			mutate: func(gs *types.GenesisState) {
				gs.LedgerTotals.FeePool = math.NewInt(-1)
			},
			errMsg: "ledger totals",
		},
		{
			name: "unspecified capability grant",
			mutate: func(gs *types.GenesisState) {
				gs.CapabilityGrants = []types.CapabilityGrant{{Address: sampleAddress()}}
			},
			errMsg: "unspecified capability",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := types.DefaultGenesis()
			tt.mutate(gs)
			err := gs.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGenesisValidateAcceptsPopulatedState(t *testing.T) {
	gs := types.DefaultGenesis()
	task := validGenesisTask(1)
	gs.Tasks = []types.Task{task}
	gs.Submissions = []types.Submission{
		{Id: 1, TaskId: 1, Status: types.SUBMISSION_STATUS_REJECTED},
		{Id: 2, TaskId: 1, Status: types.SUBMISSION_STATUS_PENDING},
	}
	gs.Disputes = []types.Dispute{{Id: 1, TaskId: 1}}
	gs.TaskEscrows = []types.TaskEscrow{{TaskId: 1, Balance: task.EscrowAmount}}
	gs.CapabilityGrants = []types.CapabilityGrant{
		{Address: sampleAddress(), Capability: types.CAPABILITY_MODERATOR},
	}
	gs.NextTaskId = 2
	gs.NextSubmissionId = 3
	gs.NextDisputeId = 2

	require.NoError(t, gs.Validate())
}

package keeper

import (
	"context"
	"encoding/binary"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

// InitGenesis initializes the marketplace module state from genesis, wiring
// every secondary index back up from the flat record lists.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) {
	if err := k.SetParams(ctx, genState.Params); err != nil {
		panic(fmt.Sprintf("failed to set marketplace params: %v", err))
	}

	k.setNextID(ctx, NextTaskIDKey, genState.NextTaskId)
	k.setNextID(ctx, NextSubmissionIDKey, genState.NextSubmissionId)
	k.setNextID(ctx, NextDisputeIDKey, genState.NextDisputeId)

	k.setLedgerTotals(ctx, genState.LedgerTotals)
	k.setPauseState(ctx, genState.PauseState)

	store := k.getStore(ctx)

	for _, task := range genState.Tasks {
		k.setTask(ctx, task)
		store.Set(TaskByStatusKey(uint32(task.Status), task.Id), []byte{1})

		requester, err := sdk.AccAddressFromBech32(task.Requester)
		if err != nil {
			panic(fmt.Sprintf("task %d has malformed requester: %v", task.Id, err))
		}
		store.Set(TaskByRequesterKey(requester, task.Id), []byte{1})

		if task.Worker != "" {
			worker, err := sdk.AccAddressFromBech32(task.Worker)
			if err != nil {
				panic(fmt.Sprintf("task %d has malformed worker: %v", task.Id, err))
			}
			store.Set(TaskByWorkerKey(worker, task.Id), []byte{1})
		}
		if !task.Status.IsTerminal() {
			store.Set(TaskByDeadlineKey(task.Deadline.Unix(), task.Id), []byte{1})
		}
	}

	for _, req := range genState.CancellationRequests {
		k.setCancellationRequest(ctx, req)
		if !req.Processed {
			store.Set(PendingCancellationKey(req.ReviewDeadline.Unix(), req.TaskId), []byte{1})
		}
	}

	for _, sub := range genState.Submissions {
		k.setSubmission(ctx, sub)
		store.Set(SubmissionByTaskKey(sub.TaskId, sub.Id), []byte{1})
		if !sub.Status.IsTerminal() {
			k.setActiveSubmission(ctx, sub.TaskId, sub.Id)
		}
		if sub.Status == types.SUBMISSION_STATUS_PENDING || sub.Status == types.SUBMISSION_STATUS_UNDER_REVIEW {
			store.Set(ReviewDeadlineKey(sub.ReviewDeadline.Unix(), sub.Id), []byte{1})
		}
	}

	for _, dispute := range genState.Disputes {
		k.setDispute(ctx, dispute)
		idBz := make([]byte, 8)
		binary.BigEndian.PutUint64(idBz, dispute.Id)
		store.Set(DisputeByTaskKey(dispute.TaskId), idBz)
		store.Set(DisputeByStatusKey(uint32(dispute.Status), dispute.Id), []byte{1})

		if dispute.Status == types.DISPUTE_STATUS_RESOLVED && !dispute.Settled && dispute.AppealDeadline != nil {
			store.Set(UnsettledDisputeKey(dispute.AppealDeadline.Unix(), dispute.Id), []byte{1})
		}
	}

	for _, rep := range genState.Reputations {
		k.setReputation(ctx, rep)
	}
	for _, acct := range genState.EscrowAccounts {
		k.setEscrowAccount(ctx, acct)
	}
	for _, escrow := range genState.TaskEscrows {
		k.setTaskEscrow(ctx, escrow)
	}

	for _, grant := range genState.CapabilityGrants {
		addr, err := sdk.AccAddressFromBech32(grant.Address)
		if err != nil {
			panic(fmt.Sprintf("capability grant has malformed address %q: %v", grant.Address, err))
		}
		store.Set(CapabilityKey(addr, int32(grant.Capability)), k.mustMarshal(grant))
	}
}

// ExportGenesis returns the marketplace module's full state.
func (k Keeper) ExportGenesis(ctx context.Context) *types.GenesisState {
	return &types.GenesisState{
		Params:               k.GetParams(ctx),
		Tasks:                k.GetAllTasks(ctx),
		CancellationRequests: k.GetAllCancellationRequests(ctx),
		Submissions:          k.GetAllSubmissions(ctx),
		Disputes:             k.GetAllDisputes(ctx),
		Reputations:          k.GetAllReputations(ctx),
		EscrowAccounts:       k.GetAllEscrowAccounts(ctx),
		TaskEscrows:          k.GetAllTaskEscrows(ctx),
		LedgerTotals:         k.GetLedgerTotals(ctx),
		CapabilityGrants:     k.GetAllCapabilityGrants(ctx),
		PauseState:           k.GetPauseState(ctx),
		NextTaskId:           k.peekNextID(ctx, NextTaskIDKey),
		NextSubmissionId:     k.peekNextID(ctx, NextSubmissionIDKey),
		NextDisputeId:        k.peekNextID(ctx, NextDisputeIDKey),
	}
}

package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// GenesisState defines the marketplace module's genesis state.
type GenesisState struct {
	Params               Params                `json:"params"`
	Tasks                []Task                `json:"tasks,omitempty"`
	CancellationRequests []CancellationRequest `json:"cancellation_requests,omitempty"`
	Submissions          []Submission          `json:"submissions,omitempty"`
	Disputes             []Dispute             `json:"disputes,omitempty"`
	Reputations          []ReputationScore     `json:"reputations,omitempty"`
	EscrowAccounts       []EscrowAccount       `json:"escrow_accounts,omitempty"`
	TaskEscrows          []TaskEscrow          `json:"task_escrows,omitempty"`
	LedgerTotals         LedgerTotals          `json:"ledger_totals"`
	CapabilityGrants     []CapabilityGrant     `json:"capability_grants,omitempty"`
	PauseState           PauseState            `json:"pause_state"`
	NextTaskId           uint64                `json:"next_task_id"`
	NextSubmissionId     uint64                `json:"next_submission_id"`
	NextDisputeId        uint64                `json:"next_dispute_id"`
}

// DefaultGenesis returns the default genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
		LedgerTotals: LedgerTotals{
			TotalDeposited: math.ZeroInt(),
			TotalWithdrawn: math.ZeroInt(),
			FeePool:        math.ZeroInt(),
		},
		NextTaskId:       1,
		NextSubmissionId: 1,
		NextDisputeId:    1,
	}
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	taskIDs := make(map[uint64]struct{}, len(gs.Tasks))
	for _, task := range gs.Tasks {
		if task.Id == 0 {
			return fmt.Errorf("task id cannot be zero")
		}
		if _, ok := taskIDs[task.Id]; ok {
			return fmt.Errorf("duplicate task id %d", task.Id)
		}
		taskIDs[task.Id] = struct{}{}
		if !ValidContentHash(task.RequirementsHash) {
			return fmt.Errorf("task %d has malformed requirements hash", task.Id)
		}
		if task.EscrowAmount.IsNil() || task.EscrowAmount.IsNegative() {
			return fmt.Errorf("task %d has invalid escrow amount", task.Id)
		}
	}

	for _, req := range gs.CancellationRequests {
		if _, ok := taskIDs[req.TaskId]; !ok {
			return fmt.Errorf("cancellation request references unknown task %d", req.TaskId)
		}
	}

	submissionIDs := make(map[uint64]struct{}, len(gs.Submissions))
	activePerTask := make(map[uint64]int)
	for _, sub := range gs.Submissions {
		if _, ok := submissionIDs[sub.Id]; ok {
			return fmt.Errorf("duplicate submission id %d", sub.Id)
		}
		submissionIDs[sub.Id] = struct{}{}
		if _, ok := taskIDs[sub.TaskId]; !ok {
			return fmt.Errorf("submission %d references unknown task %d", sub.Id, sub.TaskId)
		}
		if !sub.Status.IsTerminal() {
			activePerTask[sub.TaskId]++
			if activePerTask[sub.TaskId] > 1 {
				return fmt.Errorf("task %d has multiple active submissions", sub.TaskId)
			}
		}
	}

	disputeIDs := make(map[uint64]struct{}, len(gs.Disputes))
	disputePerTask := make(map[uint64]int)
	for _, dispute := range gs.Disputes {
		if _, ok := disputeIDs[dispute.Id]; ok {
			return fmt.Errorf("duplicate dispute id %d", dispute.Id)
		}
		disputeIDs[dispute.Id] = struct{}{}
		if _, ok := taskIDs[dispute.TaskId]; !ok {
			return fmt.Errorf("dispute %d references unknown task %d", dispute.Id, dispute.TaskId)
		}
		disputePerTask[dispute.TaskId]++
		if disputePerTask[dispute.TaskId] > 1 {
			return fmt.Errorf("task %d has multiple disputes", dispute.TaskId)
		}
	}

	seenAccounts := make(map[string]struct{}, len(gs.EscrowAccounts))
	for _, acct := range gs.EscrowAccounts {
		if _, ok := seenAccounts[acct.Address]; ok {
			return fmt.Errorf("duplicate escrow account %s", acct.Address)
		}
		seenAccounts[acct.Address] = struct{}{}
		if acct.Locked.IsNil() || acct.Locked.IsNegative() || acct.Available.IsNil() || acct.Available.IsNegative() {
			return fmt.Errorf("escrow account %s has negative balances", acct.Address)
		}
	}

	for _, escrow := range gs.TaskEscrows {
		if _, ok := taskIDs[escrow.TaskId]; !ok {
			return fmt.Errorf("task escrow references unknown task %d", escrow.TaskId)
		}
		if escrow.Balance.IsNil() || escrow.Balance.IsNegative() {
			return fmt.Errorf("task escrow %d has negative balance", escrow.TaskId)
		}
	}

	totals := gs.LedgerTotals
	if totals.TotalDeposited.IsNil() || totals.TotalWithdrawn.IsNil() || totals.FeePool.IsNil() {
		return fmt.Errorf("ledger totals must be initialized")
	}
	if totals.TotalDeposited.IsNegative() || totals.TotalWithdrawn.IsNegative() || totals.FeePool.IsNegative() {
		return fmt.Errorf("ledger totals cannot be negative")
	}

	for _, grant := range gs.CapabilityGrants {
		if grant.Capability == CAPABILITY_UNSPECIFIED {
			return fmt.Errorf("capability grant for %s has unspecified capability", grant.Address)
		}
		if grant.Address == "" {
			return fmt.Errorf("capability grant has empty address")
		}
	}

	return nil
}

package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

// RegisterInvariants registers all marketplace invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "ledger-conservation", LedgerConservationInvariant(k))
	ir.RegisterRoute(types.ModuleName, "module-balance", ModuleBalanceInvariant(k))
	ir.RegisterRoute(types.ModuleName, "terminal-task-balance", TerminalTaskBalanceInvariant(k))
	ir.RegisterRoute(types.ModuleName, "locked-consistency", LockedConsistencyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "single-active-submission", SingleActiveSubmissionInvariant(k))
	ir.RegisterRoute(types.ModuleName, "single-dispute-per-task", SingleDisputePerTaskInvariant(k))
	ir.RegisterRoute(types.ModuleName, "score-bounds", ScoreBoundsInvariant(k))
	ir.RegisterRoute(types.ModuleName, "counters-ahead", CountersAheadInvariant(k))
}

// AllInvariants runs all invariants of the marketplace module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, inv := range []sdk.Invariant{
			LedgerConservationInvariant(k),
			ModuleBalanceInvariant(k),
			TerminalTaskBalanceInvariant(k),
			LockedConsistencyInvariant(k),
			SingleActiveSubmissionInvariant(k),
			SingleDisputePerTaskInvariant(k),
			ScoreBoundsInvariant(k),
			CountersAheadInvariant(k),
		} {
			if msg, broken := inv(ctx); broken {
				return msg, true
			}
		}
		return "", false
	}
}

// LedgerConservationInvariant checks that after every operation the value in
// the ledger is fully accounted for:
//
//	sum(task balances) + sum(available) + fee pool == deposited - withdrawn
func LedgerConservationInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		totals := k.GetLedgerTotals(ctx)

		held := math.ZeroInt()
		for _, escrow := range k.GetAllTaskEscrows(ctx) {
			if escrow.Balance.IsNegative() {
				return sdk.FormatInvariant(types.ModuleName, "ledger-conservation",
					fmt.Sprintf("task %d has negative balance %s", escrow.TaskId, escrow.Balance)), true
			}
			held = held.Add(escrow.Balance)
		}
		for _, acct := range k.GetAllEscrowAccounts(ctx) {
			if acct.Available.IsNegative() || acct.Locked.IsNegative() {
				return sdk.FormatInvariant(types.ModuleName, "ledger-conservation",
					fmt.Sprintf("account %s has negative balances", acct.Address)), true
			}
			held = held.Add(acct.Available)
		}
		held = held.Add(totals.FeePool)

		expected := totals.TotalDeposited.Sub(totals.TotalWithdrawn)
		broken := !held.Equal(expected)
		return sdk.FormatInvariant(types.ModuleName, "ledger-conservation",
			fmt.Sprintf("held %s, expected %s (deposited %s, withdrawn %s)",
				held, expected, totals.TotalDeposited, totals.TotalWithdrawn)), broken
	}
}

// ModuleBalanceInvariant checks the module account's bank balance covers the
// value the ledger says it custodies.
func ModuleBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		totals := k.GetLedgerTotals(ctx)
		expected := totals.TotalDeposited.Sub(totals.TotalWithdrawn)

		params := k.GetParams(ctx)
		balance := k.bankKeeper.GetBalance(ctx, k.moduleAddress(), params.Denom)

		broken := balance.Amount.LT(expected)
		return sdk.FormatInvariant(types.ModuleName, "module-balance",
			fmt.Sprintf("module holds %s, ledger custodies %s", balance.Amount, expected)), broken
	}
}

// TerminalTaskBalanceInvariant checks that no terminal task still holds
// escrow.
func TerminalTaskBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, task := range k.GetAllTasks(ctx) {
			if !task.Status.IsTerminal() {
				continue
			}
			if escrow, found := k.GetTaskEscrow(ctx, task.Id); found {
				return sdk.FormatInvariant(types.ModuleName, "terminal-task-balance",
					fmt.Sprintf("terminal task %d (%s) still holds %s",
						task.Id, task.Status, escrow.Balance)), true
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "terminal-task-balance", "no terminal task holds escrow"), false
	}
}

// LockedConsistencyInvariant checks each identity's locked total equals the
// sum of balances across their live tasks.
func LockedConsistencyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		lockedByRequester := map[string]math.Int{}
		for _, task := range k.GetAllTasks(ctx) {
			escrow, found := k.GetTaskEscrow(ctx, task.Id)
			if !found {
				continue
			}
			cur, ok := lockedByRequester[task.Requester]
			if !ok {
				cur = math.ZeroInt()
			}
			lockedByRequester[task.Requester] = cur.Add(escrow.Balance)
		}

		for _, acct := range k.GetAllEscrowAccounts(ctx) {
			expected, ok := lockedByRequester[acct.Address]
			if !ok {
				expected = math.ZeroInt()
			}
			if !acct.Locked.Equal(expected) {
				return sdk.FormatInvariant(types.ModuleName, "locked-consistency",
					fmt.Sprintf("account %s locked %s, live task balances %s",
						acct.Address, acct.Locked, expected)), true
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "locked-consistency", "locked totals match task balances"), false
	}
}

// SingleActiveSubmissionInvariant checks each task has at most one
// non-terminal submission.
func SingleActiveSubmissionInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		active := map[uint64]uint64{}
		for _, sub := range k.GetAllSubmissions(ctx) {
			if sub.Status.IsTerminal() {
				continue
			}
			if prior, ok := active[sub.TaskId]; ok {
				return sdk.FormatInvariant(types.ModuleName, "single-active-submission",
					fmt.Sprintf("task %d has active submissions %d and %d",
						sub.TaskId, prior, sub.Id)), true
			}
			active[sub.TaskId] = sub.Id
		}
		return sdk.FormatInvariant(types.ModuleName, "single-active-submission", "one active submission per task"), false
	}
}

// SingleDisputePerTaskInvariant checks a task carries at most one dispute for
// its lifetime.
func SingleDisputePerTaskInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		seen := map[uint64]uint64{}
		for _, dispute := range k.GetAllDisputes(ctx) {
			if prior, ok := seen[dispute.TaskId]; ok {
				return sdk.FormatInvariant(types.ModuleName, "single-dispute-per-task",
					fmt.Sprintf("task %d has disputes %d and %d",
						dispute.TaskId, prior, dispute.Id)), true
			}
			seen[dispute.TaskId] = dispute.Id
		}
		return sdk.FormatInvariant(types.ModuleName, "single-dispute-per-task", "one dispute per task"), false
	}
}

// ScoreBoundsInvariant checks every stored score is within bounds and every
// tier matches its overall score.
func ScoreBoundsInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, rep := range k.GetAllReputations(ctx) {
			if rep.Overall > types.MaxScore || rep.Quality > types.MaxScore ||
				rep.Reliability > types.MaxScore || rep.Professionalism > types.MaxScore {
				return sdk.FormatInvariant(types.ModuleName, "score-bounds",
					fmt.Sprintf("identity %s has out-of-bounds scores", rep.Address)), true
			}
			if rep.Tier != types.TierForScore(rep.Overall) {
				return sdk.FormatInvariant(types.ModuleName, "score-bounds",
					fmt.Sprintf("identity %s tier %s inconsistent with overall %d",
						rep.Address, rep.Tier, rep.Overall)), true
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "score-bounds", "scores bounded and tiers consistent"), false
	}
}

// CountersAheadInvariant checks the ID counters sit strictly beyond every
// stored record.
func CountersAheadInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		nextTask := k.peekNextID(ctx, NextTaskIDKey)
		for _, task := range k.GetAllTasks(ctx) {
			if task.Id >= nextTask {
				return sdk.FormatInvariant(types.ModuleName, "counters-ahead",
					fmt.Sprintf("task %d at or beyond counter %d", task.Id, nextTask)), true
			}
		}
		nextSub := k.peekNextID(ctx, NextSubmissionIDKey)
		for _, sub := range k.GetAllSubmissions(ctx) {
			if sub.Id >= nextSub {
				return sdk.FormatInvariant(types.ModuleName, "counters-ahead",
					fmt.Sprintf("submission %d at or beyond counter %d", sub.Id, nextSub)), true
			}
		}
		nextDispute := k.peekNextID(ctx, NextDisputeIDKey)
		for _, dispute := range k.GetAllDisputes(ctx) {
			if dispute.Id >= nextDispute {
				return sdk.FormatInvariant(types.ModuleName, "counters-ahead",
					fmt.Sprintf("dispute %d at or beyond counter %d", dispute.Id, nextDispute)), true
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "counters-ahead", "counters ahead of stored records"), false
	}
}

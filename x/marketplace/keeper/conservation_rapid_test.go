package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"pgregory.net/rapid"

	"github.com/taskchain-labs/taskchain/x/marketplace/keeper"
)

// TestLedgerConservationRapid drives random operation sequences against a
// fresh keeper and checks that every invariant holds after every step,
// whatever mix of successes and rejections the sequence produces.
func TestLedgerConservationRapid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := newMarketFixture(t)
		inv := keeper.AllInvariants(*f.k)

		var taskIDs []uint64
		randomTask := func() uint64 {
			if len(taskIDs) == 0 {
				return 1
			}
			return taskIDs[rapid.IntRange(0, len(taskIDs)-1).Draw(rt, "task_index")]
		}

		steps := rapid.IntRange(1, 25).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 9).Draw(rt, "op") {
			case 0:
				deposit := math.NewInt(rapid.Int64Range(10_000, 50_000_000).Draw(rt, "deposit"))
				id, err := f.k.CreateTask(
					f.ctx, f.requester.String(), testHash(0x01),
					f.ctx.BlockTime().Add(10*24*time.Hour), 0, 0, 0, deposit,
				)
				if err == nil {
					taskIDs = append(taskIDs, id)
				}
			case 1:
				_ = f.k.ClaimTask(f.ctx, f.worker.String(), randomTask())
			case 2:
				_, _, _ = f.k.SubmitWork(f.ctx, f.worker.String(), randomTask(), testHash(0x05))
			case 3:
				_ = f.k.StartReview(f.ctx, f.requester.String(), randomTask())
			case 4:
				_ = f.k.AcceptSubmission(f.ctx, f.requester.String(), randomTask(), nil)
			case 5:
				_ = f.k.RejectSubmission(f.ctx, f.requester.String(), randomTask(), testHash(0x07))
			case 6:
				_, _ = f.k.RequestCancellation(f.ctx, f.requester.String(), randomTask(), testHash(0x03))
			case 7:
				amount := math.NewInt(rapid.Int64Range(1, 1_000_000).Draw(rt, "withdrawal"))
				_ = f.k.Withdraw(f.ctx, f.worker.String(), amount)
			case 8:
				f.advance(time.Duration(rapid.Int64Range(1, 4*24*3600).Draw(rt, "advance")) * time.Second)
			case 9:
				if err := f.k.EndBlocker(f.ctx); err != nil {
					rt.Fatalf("end blocker: %v", err)
				}
			}

			if msg, broken := inv(f.ctx); broken {
				rt.Fatalf("invariant broken after step %d: %s", i, msg)
			}
		}

		// Terminal sweep: everything left over expires and settles.
		f.advance(30 * 24 * time.Hour)
		if err := f.k.EndBlocker(f.ctx); err != nil {
			rt.Fatalf("final end blocker: %v", err)
		}
		if msg, broken := inv(f.ctx); broken {
			rt.Fatalf("invariant broken after final sweep: %s", msg)
		}

		totals := f.k.GetLedgerTotals(f.ctx)
		if totals.TotalDeposited.LT(totals.TotalWithdrawn) {
			rt.Fatalf("withdrawn %s exceeds deposited %s", totals.TotalWithdrawn, totals.TotalDeposited)
		}
	})
}

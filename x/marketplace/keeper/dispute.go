package keeper

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

// GetDispute returns a dispute by ID.
func (k Keeper) GetDispute(ctx context.Context, disputeID uint64) (types.Dispute, bool) {
	store := k.getStore(ctx)
	bz := store.Get(DisputeKey(disputeID))
	if bz == nil {
		return types.Dispute{}, false
	}

	var dispute types.Dispute
	k.mustUnmarshal(bz, &dispute)
	return dispute, true
}

func (k Keeper) setDispute(ctx context.Context, dispute types.Dispute) {
	store := k.getStore(ctx)
	store.Set(DisputeKey(dispute.Id), k.mustMarshal(dispute))
}

// GetDisputeByTask returns the dispute attached to a task, if any.
func (k Keeper) GetDisputeByTask(ctx context.Context, taskID uint64) (types.Dispute, bool) {
	store := k.getStore(ctx)
	bz := store.Get(DisputeByTaskKey(taskID))
	if bz == nil {
		return types.Dispute{}, false
	}
	return k.GetDispute(ctx, binary.BigEndian.Uint64(bz))
}

// setDisputeStatus moves a dispute between statuses, maintaining the
// by-status index.
func (k Keeper) setDisputeStatus(ctx context.Context, dispute *types.Dispute, to types.DisputeStatus) {
	store := k.getStore(ctx)
	store.Delete(DisputeByStatusKey(uint32(dispute.Status), dispute.Id))
	store.Set(DisputeByStatusKey(uint32(to), dispute.Id), []byte{1})
	dispute.Status = to
	k.setDispute(ctx, *dispute)
}

// RaiseDispute opens a dispute over a task under review. A task carries at
// most one dispute for its lifetime. Initiation is gated by the abuse guard:
// serial losers are blocked outright, frequent disputers additionally need a
// professionalism floor.
func (k Keeper) RaiseDispute(ctx context.Context, initiator string, taskID uint64, reason types.DisputeReason, evidenceHash []byte) (uint64, error) {
	if err := k.checkNotPaused(ctx); err != nil {
		return 0, err
	}

	task, found := k.GetTask(ctx, taskID)
	if !found {
		return 0, types.ErrTaskNotFound.Wrapf("task %d", taskID)
	}
	if initiator != task.Requester && initiator != task.Worker {
		return 0, types.ErrNotParty.Wrapf("task %d", taskID)
	}
	if task.Status != types.TASK_STATUS_UNDER_REVIEW {
		return 0, types.ErrInvalidTaskState.Wrapf("task %d is %s", taskID, task.Status)
	}
	if _, exists := k.GetDisputeByTask(ctx, taskID); exists {
		return 0, types.ErrDisputeExists.Wrapf("task %d", taskID)
	}
	if !types.ValidContentHash(evidenceHash) {
		return 0, types.ErrInvalidContentHash.Wrap("evidence hash")
	}

	rep := k.GetReputation(ctx, initiator)
	if rep.DisputesInitiated >= types.AbuseDisputeThreshold {
		winRate := rep.DisputesWon * 100 / rep.DisputesInitiated
		if winRate < types.AbuseWinRatePercent {
			return 0, types.ErrAbusePrevention.Wrapf(
				"%d disputes initiated, win rate %d%%", rep.DisputesInitiated, winRate)
		}
	}
	params := k.GetParams(ctx)
	if rep.DisputesInitiated > types.FrequentDisputerThreshold && rep.Professionalism < params.DisputeProfessionalismFloor {
		return 0, types.ErrProfessionalismTooLow.Wrapf(
			"professionalism %d below floor %d", rep.Professionalism, params.DisputeProfessionalismFloor)
	}

	// The dispute subject is the active submission, or the latest one when
	// the worker is contesting a flat rejection.
	subjectID := uint64(0)
	if sub, ok := k.GetActiveSubmission(ctx, taskID); ok {
		subjectID = sub.Id
	} else if sub, ok := k.latestSubmission(ctx, taskID); ok {
		subjectID = sub.Id
	} else {
		return 0, types.ErrSubmissionNotFound.Wrapf("task %d has no submission to dispute", taskID)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()

	disputeID := k.getNextDisputeID(ctx)
	dispute := types.Dispute{
		Id:           disputeID,
		TaskId:       taskID,
		SubmissionId: subjectID,
		Initiator:    initiator,
		Reason:       reason,
		Status:       types.DISPUTE_STATUS_OPEN,
		CreatedAt:    now,
		EvidenceHash: evidenceHash,
	}
	k.setDispute(ctx, dispute)

	store := k.getStore(ctx)
	idBz := make([]byte, 8)
	binary.BigEndian.PutUint64(idBz, disputeID)
	store.Set(DisputeByTaskKey(taskID), idBz)
	store.Set(DisputeByStatusKey(uint32(dispute.Status), disputeID), []byte{1})

	// The review clock stops while the dispute runs.
	if sub, ok := k.GetActiveSubmission(ctx, taskID); ok {
		store.Delete(ReviewDeadlineKey(sub.ReviewDeadline.Unix(), sub.Id))
	}

	if err := k.transitionTask(ctx, &task, types.TASK_STATUS_DISPUTED); err != nil {
		return 0, err
	}

	rep.DisputesInitiated++
	rep.LastActivityAt = now
	k.setReputation(ctx, rep)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDisputeRaised,
			sdk.NewAttribute(types.AttributeKeyDisputeID, fmt.Sprintf("%d", disputeID)),
			sdk.NewAttribute(types.AttributeKeyTaskID, fmt.Sprintf("%d", taskID)),
			sdk.NewAttribute(types.AttributeKeyInitiator, initiator),
			sdk.NewAttribute(types.AttributeKeyReason, fmt.Sprintf("%d", reason)),
		),
	)
	return disputeID, nil
}

// SubmitDisputeAnalysis records the automated recommendation. High-confidence
// recommendations resolve the dispute immediately; everything else escalates
// to arbitration.
func (k Keeper) SubmitDisputeAnalysis(
	ctx context.Context,
	analyst string,
	disputeID uint64,
	confidence uint32,
	recommended types.DisputeOutcome,
	recommendationHash []byte,
) (bool, error) {
	if err := k.checkNotPaused(ctx); err != nil {
		return false, err
	}
	if !k.HasCapability(ctx, analyst, types.CAPABILITY_ANALYSIS) {
		return false, types.ErrUnauthorized.Wrap("analysis capability required")
	}

	dispute, found := k.GetDispute(ctx, disputeID)
	if !found {
		return false, types.ErrDisputeNotFound.Wrapf("dispute %d", disputeID)
	}
	if dispute.Status != types.DISPUTE_STATUS_OPEN {
		return false, types.ErrInvalidTaskState.Wrapf("dispute %d is %s", disputeID, dispute.Status)
	}
	if confidence == 0 || confidence > 100 {
		return false, types.ErrInvalidConfidence
	}
	if !types.ValidContentHash(recommendationHash) {
		return false, types.ErrInvalidContentHash.Wrap("recommendation hash")
	}

	dispute.Confidence = confidence
	dispute.RecommendationHash = recommendationHash

	params := k.GetParams(ctx)
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if confidence < params.AutoResolveConfidenceThreshold {
		k.setDisputeStatus(ctx, &dispute, types.DISPUTE_STATUS_AWAITING_ARBITRATION)

		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeDisputeAnalyzed,
				sdk.NewAttribute(types.AttributeKeyDisputeID, fmt.Sprintf("%d", disputeID)),
				sdk.NewAttribute(types.AttributeKeyConfidence, fmt.Sprintf("%d", confidence)),
				sdk.NewAttribute(types.AttributeKeyStatus, dispute.Status.String()),
			),
		)
		return false, nil
	}

	percentage := uint32(0)
	if recommended == types.DISPUTE_OUTCOME_PARTIAL_PAYMENT || recommended == types.DISPUTE_OUTCOME_SPLIT {
		percentage = params.DefaultDisputeSplitPercentage
	}

	if err := k.resolveDispute(ctx, &dispute, recommended, percentage); err != nil {
		return false, err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDisputeAnalyzed,
			sdk.NewAttribute(types.AttributeKeyDisputeID, fmt.Sprintf("%d", disputeID)),
			sdk.NewAttribute(types.AttributeKeyConfidence, fmt.Sprintf("%d", confidence)),
			sdk.NewAttribute(types.AttributeKeyOutcome, recommended.String()),
		),
	)
	return true, nil
}

// AssignArbitrator attaches a pre-authorized arbitrator to a dispute waiting
// on one. Assignment also serves appealed disputes, which restart review
// under a fresh arbitrator.
func (k Keeper) AssignArbitrator(ctx context.Context, authority string, disputeID uint64, arbitrator string) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}
	if !k.HasCapability(ctx, authority, types.CAPABILITY_ARBITRATOR_AUTHORIZER) {
		return types.ErrUnauthorized.Wrap("arbitrator authorizer capability required")
	}
	if !k.HasCapability(ctx, arbitrator, types.CAPABILITY_ARBITRATOR) {
		return types.ErrUnauthorizedArbitrator.Wrapf("%s", arbitrator)
	}

	dispute, found := k.GetDispute(ctx, disputeID)
	if !found {
		return types.ErrDisputeNotFound.Wrapf("dispute %d", disputeID)
	}
	switch dispute.Status {
	case types.DISPUTE_STATUS_OPEN, types.DISPUTE_STATUS_AWAITING_ARBITRATION, types.DISPUTE_STATUS_APPEALED:
	default:
		return types.ErrInvalidTaskState.Wrapf("dispute %d is %s", disputeID, dispute.Status)
	}

	// An arbitrator cannot rule on their own dispute.
	task, found := k.GetTask(ctx, dispute.TaskId)
	if !found {
		return types.ErrTaskNotFound.Wrapf("task %d", dispute.TaskId)
	}
	if arbitrator == task.Requester || arbitrator == task.Worker {
		return types.ErrUnauthorizedArbitrator.Wrap("arbitrator is a party to the task")
	}

	dispute.Arbitrator = arbitrator
	k.setDisputeStatus(ctx, &dispute, types.DISPUTE_STATUS_UNDER_REVIEW)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeArbitratorAssigned,
			sdk.NewAttribute(types.AttributeKeyDisputeID, fmt.Sprintf("%d", disputeID)),
			sdk.NewAttribute(types.AttributeKeyArbitrator, arbitrator),
		),
	)
	return nil
}

// ResolveDispute is the assigned arbitrator's ruling.
func (k Keeper) ResolveDispute(
	ctx context.Context,
	arbitrator string,
	disputeID uint64,
	outcome types.DisputeOutcome,
	paymentPercentage uint32,
	reasoningHash []byte,
) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}

	dispute, found := k.GetDispute(ctx, disputeID)
	if !found {
		return types.ErrDisputeNotFound.Wrapf("dispute %d", disputeID)
	}
	if dispute.Status != types.DISPUTE_STATUS_UNDER_REVIEW {
		return types.ErrInvalidTaskState.Wrapf("dispute %d is %s", disputeID, dispute.Status)
	}
	if dispute.Arbitrator != arbitrator {
		return types.ErrNotAssignedArbitrator.Wrapf("dispute %d", disputeID)
	}
	if outcome == types.DISPUTE_OUTCOME_UNSPECIFIED {
		return types.ErrValidationFailed.Wrap("outcome required")
	}
	if paymentPercentage > 100 {
		return types.ErrInvalidPercentage
	}
	if !types.ValidContentHash(reasoningHash) {
		return types.ErrInvalidContentHash.Wrap("reasoning hash")
	}

	params := k.GetParams(ctx)
	if outcome == types.DISPUTE_OUTCOME_SPLIT {
		paymentPercentage = params.DefaultDisputeSplitPercentage
	}

	return k.resolveDispute(ctx, &dispute, outcome, paymentPercentage)
}

// resolveDispute records the outcome and either settles escrow immediately
// or, for appealable rulings, holds it until the appeal window closes.
func (k Keeper) resolveDispute(ctx context.Context, dispute *types.Dispute, outcome types.DisputeOutcome, paymentPercentage uint32) error {
	task, found := k.GetTask(ctx, dispute.TaskId)
	if !found {
		return types.ErrTaskNotFound.Wrapf("task %d", dispute.TaskId)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()

	dispute.Outcome = outcome
	dispute.PaymentPercentage = paymentPercentage
	dispute.ResolvedAt = &now

	params := k.GetParams(ctx)
	appealable := !dispute.Appealed && task.EscrowAmount.GTE(params.AppealValueThreshold)

	if appealable {
		deadline := now.Add(time.Duration(params.AppealWindowSeconds) * time.Second)
		dispute.AppealDeadline = &deadline
		k.setDisputeStatus(ctx, dispute, types.DISPUTE_STATUS_RESOLVED)

		store := k.getStore(ctx)
		store.Set(UnsettledDisputeKey(deadline.Unix(), dispute.Id), []byte{1})
	} else {
		k.setDisputeStatus(ctx, dispute, types.DISPUTE_STATUS_RESOLVED)
		if err := k.settleDispute(ctx, dispute); err != nil {
			return err
		}
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDisputeResolved,
			sdk.NewAttribute(types.AttributeKeyDisputeID, fmt.Sprintf("%d", dispute.Id)),
			sdk.NewAttribute(types.AttributeKeyOutcome, outcome.String()),
			sdk.NewAttribute(types.AttributeKeyPercentage, fmt.Sprintf("%d", paymentPercentage)),
		),
	)
	return nil
}

// settleDispute moves the escrow per the recorded outcome, closes out the
// subject submission and updates dispute statistics. Idempotent via the
// Settled flag.
func (k Keeper) settleDispute(ctx context.Context, dispute *types.Dispute) error {
	if dispute.Settled {
		return nil
	}

	task, found := k.GetTask(ctx, dispute.TaskId)
	if !found {
		return types.ErrTaskNotFound.Wrapf("task %d", dispute.TaskId)
	}
	if task.Status != types.TASK_STATUS_DISPUTED {
		return types.ErrInvalidTaskState.Wrapf("task %d is %s", task.Id, task.Status)
	}

	sub, subFound := k.GetSubmission(ctx, dispute.SubmissionId)

	switch dispute.Outcome {
	case types.DISPUTE_OUTCOME_FULL_PAYMENT_TO_WORKER:
		if !subFound {
			return types.ErrSubmissionNotFound.Wrapf("submission %d", dispute.SubmissionId)
		}
		if err := k.acceptAndComplete(ctx, &task, &sub); err != nil {
			return err
		}

	case types.DISPUTE_OUTCOME_FULL_REFUND_TO_REQUESTER:
		if subFound && !sub.Status.IsTerminal() {
			k.clearActiveSubmission(ctx, task.Id)
			sub.Status = types.SUBMISSION_STATUS_REJECTED
			k.setSubmission(ctx, sub)
		}
		if err := k.refundEscrow(ctx, task); err != nil {
			return err
		}
		if err := k.transitionTask(ctx, &task, types.TASK_STATUS_CANCELLED); err != nil {
			return err
		}
		k.releaseWorkerSlot(ctx, task)

	case types.DISPUTE_OUTCOME_PARTIAL_PAYMENT, types.DISPUTE_OUTCOME_SPLIT:
		if subFound && !sub.Status.IsTerminal() {
			k.clearActiveSubmission(ctx, task.Id)
			sub.Status = types.SUBMISSION_STATUS_ACCEPTED
			k.setSubmission(ctx, sub)
		}
		workerShare, _, err := k.partialReleaseEscrow(ctx, task, dispute.PaymentPercentage)
		if err != nil {
			return err
		}
		if err := k.transitionTask(ctx, &task, types.TASK_STATUS_COMPLETED); err != nil {
			return err
		}
		k.recordTaskCompletion(ctx, task.Worker, workerShare)

	default:
		return types.ErrValidationFailed.Wrapf("dispute %d has no outcome", dispute.Id)
	}

	k.recordDisputeStats(ctx, task, *dispute)

	dispute.Settled = true
	k.setDispute(ctx, *dispute)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if k.hooks != nil {
		if err := k.hooks.AfterDisputeResolved(ctx, dispute.Id, dispute.Outcome); err != nil {
			sdkCtx.Logger().Error("dispute resolution hook failed", "dispute_id", dispute.Id, "error", err)
		}
	}
	return nil
}

// recordDisputeStats books the win or loss against the initiator. A win
// requires the outcome to fully favor the initiating side; partial outcomes
// count as losses.
func (k Keeper) recordDisputeStats(ctx context.Context, task types.Task, dispute types.Dispute) {
	rep := k.GetReputation(ctx, dispute.Initiator)

	won := false
	switch dispute.Outcome {
	case types.DISPUTE_OUTCOME_FULL_PAYMENT_TO_WORKER:
		won = dispute.Initiator == task.Worker
	case types.DISPUTE_OUTCOME_FULL_REFUND_TO_REQUESTER:
		won = dispute.Initiator == task.Requester
	}

	if won {
		rep.DisputesWon++
	} else {
		rep.DisputesLost++
	}
	k.setReputation(ctx, rep)
}

// AppealDispute escalates a high-value resolution to a second, final
// arbitration. Only a party may appeal, only once, and only while the appeal
// window holds the escrow.
func (k Keeper) AppealDispute(ctx context.Context, appellant string, disputeID uint64, evidenceHash []byte) error {
	if err := k.checkNotPaused(ctx); err != nil {
		return err
	}

	dispute, found := k.GetDispute(ctx, disputeID)
	if !found {
		return types.ErrDisputeNotFound.Wrapf("dispute %d", disputeID)
	}
	if dispute.Status != types.DISPUTE_STATUS_RESOLVED {
		return types.ErrInvalidTaskState.Wrapf("dispute %d is %s", disputeID, dispute.Status)
	}
	if dispute.Settled || dispute.Appealed || dispute.AppealDeadline == nil {
		return types.ErrAppealNotAllowed.Wrapf("dispute %d", disputeID)
	}
	if !types.ValidContentHash(evidenceHash) {
		return types.ErrInvalidContentHash.Wrap("evidence hash")
	}

	task, found := k.GetTask(ctx, dispute.TaskId)
	if !found {
		return types.ErrTaskNotFound.Wrapf("task %d", dispute.TaskId)
	}
	if appellant != task.Requester && appellant != task.Worker {
		return types.ErrNotParty.Wrapf("task %d", dispute.TaskId)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if !sdkCtx.BlockTime().Before(*dispute.AppealDeadline) {
		return types.ErrAppealNotAllowed.Wrapf(
			"appeal window closed at %s", dispute.AppealDeadline.UTC())
	}

	store := k.getStore(ctx)
	store.Delete(UnsettledDisputeKey(dispute.AppealDeadline.Unix(), disputeID))

	dispute.Appealed = true
	dispute.AppealDeadline = nil
	dispute.Arbitrator = ""
	dispute.EvidenceHash = evidenceHash
	k.setDisputeStatus(ctx, &dispute, types.DISPUTE_STATUS_APPEALED)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDisputeAppealed,
			sdk.NewAttribute(types.AttributeKeyDisputeID, fmt.Sprintf("%d", disputeID)),
			sdk.NewAttribute(types.AttributeKeyActor, appellant),
		),
	)
	return nil
}

// settleExpiredAppealWindows finalizes resolved disputes whose appeal window
// closed unchallenged. Called from the end blocker.
func (k Keeper) settleExpiredAppealWindows(ctx context.Context, now time.Time) {
	store := k.getStore(ctx)
	iterator := store.Iterator(UnsettledDisputePrefix, endOfPrefix(UnsettledDisputePrefix))

	type entry struct {
		key       []byte
		disputeID uint64
	}
	var due []entry
	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()
		deadlineBz := key[len(UnsettledDisputePrefix) : len(UnsettledDisputePrefix)+8]
		deadline := time.Unix(int64(binary.BigEndian.Uint64(deadlineBz)), 0)
		if deadline.After(now) {
			break
		}
		idBz := key[len(UnsettledDisputePrefix)+8:]
		due = append(due, entry{key: append([]byte(nil), key...), disputeID: binary.BigEndian.Uint64(idBz)})
	}
	iterator.Close()

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	for _, e := range due {
		store.Delete(e.key)

		dispute, found := k.GetDispute(ctx, e.disputeID)
		if !found {
			continue
		}
		if err := k.settleDispute(ctx, &dispute); err != nil {
			sdkCtx.Logger().Error("failed to settle dispute after appeal window",
				"dispute_id", e.disputeID, "error", err)
		}
	}
}

// latestSubmission returns the highest-numbered submission for a task.
func (k Keeper) latestSubmission(ctx context.Context, taskID uint64) (types.Submission, bool) {
	store := k.getStore(ctx)
	prefix := SubmissionByTaskPrefixForTask(taskID)
	iterator := store.ReverseIterator(prefix, endOfPrefix(prefix))
	defer iterator.Close()

	if !iterator.Valid() {
		return types.Submission{}, false
	}
	key := iterator.Key()
	subID := binary.BigEndian.Uint64(key[len(prefix):])
	return k.GetSubmission(ctx, subID)
}

// GetAllDisputes returns every stored dispute. Used by genesis export and
// invariants.
func (k Keeper) GetAllDisputes(ctx context.Context) []types.Dispute {
	store := k.getStore(ctx)
	iterator := store.Iterator(DisputeKeyPrefix, endOfPrefix(DisputeKeyPrefix))
	defer iterator.Close()

	var disputes []types.Dispute
	for ; iterator.Valid(); iterator.Next() {
		var dispute types.Dispute
		k.mustUnmarshal(iterator.Value(), &dispute)
		disputes = append(disputes, dispute)
	}
	return disputes
}

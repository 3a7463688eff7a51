package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

// GetTxCmd returns the transaction commands for the marketplace module
func GetTxCmd() *cobra.Command {
	marketplaceTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Marketplace transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	marketplaceTxCmd.AddCommand(
		CmdCreateTask(),
		CmdClaimTask(),
		CmdRequestCancellation(),
		CmdApproveCancellation(),
		CmdRejectCancellation(),
		CmdProcessExpiredCancellation(),
		CmdSubmitWork(),
		CmdStartReview(),
		CmdAcceptSubmission(),
		CmdRejectSubmission(),
		CmdRequestRevision(),
		CmdResubmitWork(),
		CmdRaiseDispute(),
		CmdSubmitDisputeAnalysis(),
		CmdAssignArbitrator(),
		CmdResolveDispute(),
		CmdAppealDispute(),
		CmdWithdraw(),
		CmdApplyScoreUpdate(),
		CmdAdminAdjustScore(),
		CmdGrantCapability(),
		CmdRevokeCapability(),
		CmdPause(),
		CmdUnpause(),
	)

	return marketplaceTxCmd
}

func parseHashFlag(cmd *cobra.Command, flag string) ([]byte, error) {
	raw, err := cmd.Flags().GetString(flag)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	bz, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", flag, err)
	}
	return bz, nil
}

func parseDisputeReason(raw string) (types.DisputeReason, error) {
	switch strings.ToLower(raw) {
	case "quality":
		return types.DISPUTE_REASON_QUALITY, nil
	case "non_delivery", "non-delivery":
		return types.DISPUTE_REASON_NON_DELIVERY, nil
	case "late":
		return types.DISPUTE_REASON_LATE, nil
	case "payment":
		return types.DISPUTE_REASON_PAYMENT, nil
	case "other":
		return types.DISPUTE_REASON_OTHER, nil
	}
	return types.DISPUTE_REASON_UNSPECIFIED, fmt.Errorf("unknown dispute reason %q", raw)
}

func parseDisputeOutcome(raw string) (types.DisputeOutcome, error) {
	switch strings.ToLower(raw) {
	case "full_payment", "full_payment_to_worker":
		return types.DISPUTE_OUTCOME_FULL_PAYMENT_TO_WORKER, nil
	case "full_refund", "full_refund_to_requester":
		return types.DISPUTE_OUTCOME_FULL_REFUND_TO_REQUESTER, nil
	case "partial_payment", "partial":
		return types.DISPUTE_OUTCOME_PARTIAL_PAYMENT, nil
	case "split":
		return types.DISPUTE_OUTCOME_SPLIT, nil
	}
	return types.DISPUTE_OUTCOME_UNSPECIFIED, fmt.Errorf("unknown dispute outcome %q", raw)
}

func parseCapability(raw string) (types.Capability, error) {
	switch strings.ToLower(raw) {
	case "admin":
		return types.CAPABILITY_ADMIN, nil
	case "pauser":
		return types.CAPABILITY_PAUSER, nil
	case "moderator":
		return types.CAPABILITY_MODERATOR, nil
	case "arbitrator_authorizer", "arbitrator-authorizer":
		return types.CAPABILITY_ARBITRATOR_AUTHORIZER, nil
	case "scorer":
		return types.CAPABILITY_SCORER, nil
	case "arbitrator":
		return types.CAPABILITY_ARBITRATOR, nil
	case "analysis":
		return types.CAPABILITY_ANALYSIS, nil
	}
	return types.CAPABILITY_UNSPECIFIED, fmt.Errorf("unknown capability %q", raw)
}

// CmdCreateTask returns a CLI command handler for creating a task
func CmdCreateTask() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-task",
		Short: "Create a task and escrow its deposit",
		Long: `Create a task with the given requirements hash and deadline. The deposit
is moved into module escrow immediately and the platform fee is fixed at
creation time.

Example:
  $ taskchaind tx marketplace create-task \
    --requirements-hash 9f2c...64 hex chars...ab \
    --deadline 2026-10-01T00:00:00Z \
    --min-reputation 800 \
    --max-revisions 3 \
    --review-period 259200 \
    --deposit 50000000 \
    --from mykey`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			requirementsHash, err := parseHashFlag(cmd, FlagRequirementsHash)
			if err != nil {
				return err
			}

			deadlineStr, err := cmd.Flags().GetString(FlagDeadline)
			if err != nil {
				return err
			}
			deadline, err := time.Parse(time.RFC3339, deadlineStr)
			if err != nil {
				return fmt.Errorf("invalid deadline, want RFC3339: %w", err)
			}

			minReputation, err := cmd.Flags().GetUint32(FlagMinReputation)
			if err != nil {
				return err
			}
			maxRevisions, err := cmd.Flags().GetUint32(FlagMaxRevisions)
			if err != nil {
				return err
			}
			reviewPeriod, err := cmd.Flags().GetUint64(FlagReviewPeriod)
			if err != nil {
				return err
			}

			depositStr, err := cmd.Flags().GetString(FlagDeposit)
			if err != nil {
				return err
			}
			deposit, ok := math.NewIntFromString(depositStr)
			if !ok {
				return fmt.Errorf("invalid deposit amount: %s", depositStr)
			}

			msg := &types.MsgCreateTask{
				Requester:           clientCtx.GetFromAddress().String(),
				RequirementsHash:    requirementsHash,
				Deadline:            deadline,
				MinReputation:       minReputation,
				MaxRevisions:        maxRevisions,
				ReviewPeriodSeconds: reviewPeriod,
				Deposit:             deposit,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(FlagRequirementsHash, "", "Hex-encoded sha256 of the task requirements")
	cmd.Flags().String(FlagDeadline, "", "Task deadline in RFC3339 format")
	cmd.Flags().Uint32(FlagMinReputation, 0, "Minimum worker overall score")
	cmd.Flags().Uint32(FlagMaxRevisions, 0, "Maximum revision requests (0 uses the module default)")
	cmd.Flags().Uint64(FlagReviewPeriod, 0, "Review period in seconds (0 uses the module default)")
	cmd.Flags().String(FlagDeposit, "", "Deposit amount in base denom")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdClaimTask returns a CLI command handler for claiming an open task
func CmdClaimTask() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim-task [task-id]",
		Short: "Claim an open task as worker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			taskID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}

			msg := &types.MsgClaimTask{
				Worker: clientCtx.GetFromAddress().String(),
				TaskId: taskID,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRequestCancellation returns a CLI command handler for opening a
// moderated cancellation
func CmdRequestCancellation() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request-cancellation [task-id]",
		Short: "Request cancellation of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			taskID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}
			reasonHash, err := parseHashFlag(cmd, FlagReasonHash)
			if err != nil {
				return err
			}

			msg := &types.MsgRequestCancellation{
				Requester:  clientCtx.GetFromAddress().String(),
				TaskId:     taskID,
				ReasonHash: reasonHash,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(FlagReasonHash, "", "Hex-encoded sha256 of the cancellation reason")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdApproveCancellation returns a CLI command handler for the moderator
// approval
func CmdApproveCancellation() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve-cancellation [task-id]",
		Short: "Approve a pending cancellation as moderator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			taskID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}

			msg := &types.MsgApproveCancellation{
				Moderator: clientCtx.GetFromAddress().String(),
				TaskId:    taskID,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRejectCancellation returns a CLI command handler for the moderator
// rejection
func CmdRejectCancellation() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reject-cancellation [task-id]",
		Short: "Reject a pending cancellation as moderator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			taskID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}

			msg := &types.MsgRejectCancellation{
				Moderator: clientCtx.GetFromAddress().String(),
				TaskId:    taskID,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdProcessExpiredCancellation returns a CLI command handler for triggering
// the auto-approval of an expired cancellation window
func CmdProcessExpiredCancellation() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process-expired-cancellation [task-id]",
		Short: "Auto-approve a cancellation whose review window elapsed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			taskID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}

			msg := &types.MsgProcessExpiredCancellation{
				Caller: clientCtx.GetFromAddress().String(),
				TaskId: taskID,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSubmitWork returns a CLI command handler for submitting work
func CmdSubmitWork() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit-work [task-id]",
		Short: "Submit a deliverable for an in-progress task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			taskID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}
			workHash, err := parseHashFlag(cmd, FlagWorkHash)
			if err != nil {
				return err
			}

			msg := &types.MsgSubmitWork{
				Worker:   clientCtx.GetFromAddress().String(),
				TaskId:   taskID,
				WorkHash: workHash,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(FlagWorkHash, "", "Hex-encoded sha256 of the deliverable")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdStartReview returns a CLI command handler for starting review
func CmdStartReview() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-review [task-id]",
		Short: "Start reviewing the pending submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			taskID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}

			msg := &types.MsgStartReview{
				Requester: clientCtx.GetFromAddress().String(),
				TaskId:    taskID,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdAcceptSubmission returns a CLI command handler for accepting work
func CmdAcceptSubmission() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept-submission [task-id]",
		Short: "Accept the active submission and release escrow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			taskID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}
			feedbackHash, err := parseHashFlag(cmd, FlagFeedbackHash)
			if err != nil {
				return err
			}

			msg := &types.MsgAcceptSubmission{
				Requester:    clientCtx.GetFromAddress().String(),
				TaskId:       taskID,
				FeedbackHash: feedbackHash,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(FlagFeedbackHash, "", "Hex-encoded sha256 of optional feedback")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRejectSubmission returns a CLI command handler for rejecting work
func CmdRejectSubmission() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reject-submission [task-id]",
		Short: "Reject the active submission with feedback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			taskID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}
			feedbackHash, err := parseHashFlag(cmd, FlagFeedbackHash)
			if err != nil {
				return err
			}

			msg := &types.MsgRejectSubmission{
				Requester:    clientCtx.GetFromAddress().String(),
				TaskId:       taskID,
				FeedbackHash: feedbackHash,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(FlagFeedbackHash, "", "Hex-encoded sha256 of the rejection feedback")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRequestRevision returns a CLI command handler for requesting a revision
func CmdRequestRevision() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request-revision [task-id]",
		Short: "Request a revision of the active submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			taskID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}
			feedbackHash, err := parseHashFlag(cmd, FlagFeedbackHash)
			if err != nil {
				return err
			}

			msg := &types.MsgRequestRevision{
				Requester:    clientCtx.GetFromAddress().String(),
				TaskId:       taskID,
				FeedbackHash: feedbackHash,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(FlagFeedbackHash, "", "Hex-encoded sha256 of the revision feedback")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdResubmitWork returns a CLI command handler for resubmitting work
func CmdResubmitWork() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resubmit-work [task-id]",
		Short: "Resubmit work after a revision request or rejection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			taskID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}
			workHash, err := parseHashFlag(cmd, FlagWorkHash)
			if err != nil {
				return err
			}

			msg := &types.MsgResubmitWork{
				Worker:   clientCtx.GetFromAddress().String(),
				TaskId:   taskID,
				WorkHash: workHash,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(FlagWorkHash, "", "Hex-encoded sha256 of the revised deliverable")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRaiseDispute returns a CLI command handler for raising a dispute
func CmdRaiseDispute() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "raise-dispute [task-id]",
		Short: "Raise a dispute over a task under review",
		Long: `Raise a dispute over a task's active submission.

Example:
  $ taskchaind tx marketplace raise-dispute 12 \
    --reason quality \
    --evidence-hash 9f2c...ab \
    --from mykey`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			taskID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}

			reasonStr, err := cmd.Flags().GetString(FlagReason)
			if err != nil {
				return err
			}
			reason, err := parseDisputeReason(reasonStr)
			if err != nil {
				return err
			}
			evidenceHash, err := parseHashFlag(cmd, FlagEvidenceHash)
			if err != nil {
				return err
			}

			msg := &types.MsgRaiseDispute{
				Initiator:    clientCtx.GetFromAddress().String(),
				TaskId:       taskID,
				Reason:       reason,
				EvidenceHash: evidenceHash,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(FlagReason, "", "Dispute reason: quality, non_delivery, late, payment, other")
	cmd.Flags().String(FlagEvidenceHash, "", "Hex-encoded sha256 of the evidence bundle")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSubmitDisputeAnalysis returns a CLI command handler for the analysis
// service recommendation
func CmdSubmitDisputeAnalysis() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit-dispute-analysis [dispute-id]",
		Short: "Submit the automated recommendation for an open dispute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			disputeID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid dispute id: %w", err)
			}

			confidence, err := cmd.Flags().GetUint32(FlagConfidence)
			if err != nil {
				return err
			}
			outcomeStr, err := cmd.Flags().GetString(FlagRecommendedOutcome)
			if err != nil {
				return err
			}
			outcome, err := parseDisputeOutcome(outcomeStr)
			if err != nil {
				return err
			}
			recommendationHash, err := parseHashFlag(cmd, FlagRecommendationHash)
			if err != nil {
				return err
			}

			msg := &types.MsgSubmitDisputeAnalysis{
				Analyst:            clientCtx.GetFromAddress().String(),
				DisputeId:          disputeID,
				Confidence:         confidence,
				RecommendedOutcome: outcome,
				RecommendationHash: recommendationHash,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().Uint32(FlagConfidence, 0, "Analysis confidence, 0-100")
	cmd.Flags().String(FlagRecommendedOutcome, "", "Recommended outcome: full_payment, full_refund, partial_payment, split")
	cmd.Flags().String(FlagRecommendationHash, "", "Hex-encoded sha256 of the analysis report")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdAssignArbitrator returns a CLI command handler for assigning an
// arbitrator
func CmdAssignArbitrator() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign-arbitrator [dispute-id] [arbitrator]",
		Short: "Assign a pre-authorized arbitrator to a dispute",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			disputeID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid dispute id: %w", err)
			}

			msg := &types.MsgAssignArbitrator{
				Authority:  clientCtx.GetFromAddress().String(),
				DisputeId:  disputeID,
				Arbitrator: args[1],
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdResolveDispute returns a CLI command handler for the arbitrator ruling
func CmdResolveDispute() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve-dispute [dispute-id]",
		Short: "Resolve an assigned dispute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			disputeID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid dispute id: %w", err)
			}

			outcomeStr, err := cmd.Flags().GetString(FlagOutcome)
			if err != nil {
				return err
			}
			outcome, err := parseDisputeOutcome(outcomeStr)
			if err != nil {
				return err
			}
			percentage, err := cmd.Flags().GetUint32(FlagPaymentPercentage)
			if err != nil {
				return err
			}
			reasoningHash, err := parseHashFlag(cmd, FlagReasoningHash)
			if err != nil {
				return err
			}

			msg := &types.MsgResolveDispute{
				Arbitrator:        clientCtx.GetFromAddress().String(),
				DisputeId:         disputeID,
				Outcome:           outcome,
				PaymentPercentage: percentage,
				ReasoningHash:     reasoningHash,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(FlagOutcome, "", "Ruling: full_payment, full_refund, partial_payment, split")
	cmd.Flags().Uint32(FlagPaymentPercentage, 0, "Worker share for partial_payment, 1-99")
	cmd.Flags().String(FlagReasoningHash, "", "Hex-encoded sha256 of the ruling rationale")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdAppealDispute returns a CLI command handler for appealing a resolution
func CmdAppealDispute() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appeal-dispute [dispute-id]",
		Short: "Appeal a resolved dispute within the appeal window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			disputeID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid dispute id: %w", err)
			}
			evidenceHash, err := parseHashFlag(cmd, FlagEvidenceHash)
			if err != nil {
				return err
			}

			msg := &types.MsgAppealDispute{
				Appellant:    clientCtx.GetFromAddress().String(),
				DisputeId:    disputeID,
				EvidenceHash: evidenceHash,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(FlagEvidenceHash, "", "Hex-encoded sha256 of additional evidence")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdraw returns a CLI command handler for withdrawing available balance
func CmdWithdraw() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw [amount]",
		Short: "Withdraw available escrow ledger balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			amount, ok := math.NewIntFromString(args[0])
			if !ok {
				return fmt.Errorf("invalid amount: %s", args[0])
			}

			msg := &types.MsgWithdraw{
				Address: clientCtx.GetFromAddress().String(),
				Amount:  amount,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdApplyScoreUpdate returns a CLI command handler for applying a signed
// score triple
func CmdApplyScoreUpdate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply-score-update [address]",
		Short: "Apply a signed reputation score update",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			quality, err := cmd.Flags().GetUint32(FlagQuality)
			if err != nil {
				return err
			}
			reliability, err := cmd.Flags().GetUint32(FlagReliability)
			if err != nil {
				return err
			}
			professionalism, err := cmd.Flags().GetUint32(FlagProfessionalism)
			if err != nil {
				return err
			}
			proof, err := parseHashFlag(cmd, FlagProof)
			if err != nil {
				return err
			}

			msg := &types.MsgApplyScoreUpdate{
				Scorer:          clientCtx.GetFromAddress().String(),
				Address:         args[0],
				Quality:         quality,
				Reliability:     reliability,
				Professionalism: professionalism,
				Proof:           proof,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().Uint32(FlagQuality, 0, "Quality sub-score, 0-2000")
	cmd.Flags().Uint32(FlagReliability, 0, "Reliability sub-score, 0-2000")
	cmd.Flags().Uint32(FlagProfessionalism, 0, "Professionalism sub-score, 0-2000")
	cmd.Flags().String(FlagProof, "", "Hex-encoded scorer signature over the canonical payload")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdAdminAdjustScore returns a CLI command handler for the bounded admin
// override
func CmdAdminAdjustScore() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin-adjust-score [address]",
		Short: "Adjust an overall reputation score within the admin delta bound",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			newOverall, err := cmd.Flags().GetUint32(FlagNewOverall)
			if err != nil {
				return err
			}
			reason, err := cmd.Flags().GetString(FlagAdjustReason)
			if err != nil {
				return err
			}

			msg := &types.MsgAdminAdjustScore{
				Admin:      clientCtx.GetFromAddress().String(),
				Address:    args[0],
				NewOverall: newOverall,
				Reason:     reason,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().Uint32(FlagNewOverall, 0, "New overall score")
	cmd.Flags().String(FlagAdjustReason, "", "Audit reason for the adjustment")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdGrantCapability returns a CLI command handler for granting a capability
func CmdGrantCapability() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grant-capability [address] [capability]",
		Short: "Grant an authorization capability to an identity",
		Long: `Grant an authorization capability.

Capabilities: admin, pauser, moderator, arbitrator_authorizer, scorer,
arbitrator, analysis.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			capability, err := parseCapability(args[1])
			if err != nil {
				return err
			}

			msg := &types.MsgGrantCapability{
				Admin:      clientCtx.GetFromAddress().String(),
				Address:    args[0],
				Capability: capability,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRevokeCapability returns a CLI command handler for revoking a capability
func CmdRevokeCapability() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revoke-capability [address] [capability]",
		Short: "Revoke a previously granted capability",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			capability, err := parseCapability(args[1])
			if err != nil {
				return err
			}

			msg := &types.MsgRevokeCapability{
				Admin:      clientCtx.GetFromAddress().String(),
				Address:    args[0],
				Capability: capability,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdPause returns a CLI command handler for the global pause
func CmdPause() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pause [reason]",
		Short: "Pause all state-mutating marketplace operations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgPause{
				Pauser: clientCtx.GetFromAddress().String(),
				Reason: args[0],
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdUnpause returns a CLI command handler for resuming operations
func CmdUnpause() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpause [reason]",
		Short: "Resume marketplace operations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgUnpause{
				Pauser: clientCtx.GetFromAddress().String(),
				Reason: args[0],
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

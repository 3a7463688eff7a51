package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

// GetQueryCmd returns the cli query commands for the marketplace module
func GetQueryCmd() *cobra.Command {
	marketplaceQueryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the marketplace module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	marketplaceQueryCmd.AddCommand(
		GetCmdQueryParams(),
		GetCmdQueryTask(),
		GetCmdQueryTasks(),
		GetCmdQueryCancellation(),
		GetCmdQuerySubmission(),
		GetCmdQueryTaskSubmissions(),
		GetCmdQueryDispute(),
		GetCmdQueryTaskDispute(),
		GetCmdQueryReputation(),
		GetCmdQueryEscrowAccount(),
		GetCmdQueryLedgerTotals(),
		GetCmdQueryCapabilities(),
		GetCmdQueryPauseState(),
	)

	return marketplaceQueryCmd
}

func queryRoute(endpoint string) string {
	return fmt.Sprintf("custom/%s/%s", types.QuerierRoute, endpoint)
}

func runQuery(cmd *cobra.Command, endpoint string, req interface{}) error {
	clientCtx, err := client.GetClientQueryContext(cmd)
	if err != nil {
		return err
	}

	var data []byte
	if req != nil {
		data, err = types.ModuleCdc.MarshalJSON(req)
		if err != nil {
			return err
		}
	}

	res, _, err := clientCtx.QueryWithData(queryRoute(endpoint), data)
	if err != nil {
		return err
	}
	return clientCtx.PrintString(string(res) + "\n")
}

// GetCmdQueryParams returns the command to query module parameters
func GetCmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the current marketplace module parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, types.QueryParams, nil)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryTask returns the command to query a task by id
func GetCmdQueryTask() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task [task-id]",
		Short: "Query a task by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}
			return runQuery(cmd, types.QueryTask, &types.QueryTaskRequest{TaskId: taskID})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryTasks returns the command to list tasks with optional filters
func GetCmdQueryTasks() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks, optionally filtered by status, requester, or worker",
		Long: `List tasks.

Example:
  $ taskchaind query marketplace tasks --status open
  $ taskchaind query marketplace tasks --worker task1abc...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statusStr, err := cmd.Flags().GetString(FlagStatus)
			if err != nil {
				return err
			}
			var status types.TaskStatus
			if statusStr != "" {
				status, err = parseTaskStatus(statusStr)
				if err != nil {
					return err
				}
			}
			requester, err := cmd.Flags().GetString(FlagRequester)
			if err != nil {
				return err
			}
			worker, err := cmd.Flags().GetString(FlagWorker)
			if err != nil {
				return err
			}

			return runQuery(cmd, types.QueryTasks, &types.QueryTasksRequest{
				Status:    status,
				Requester: requester,
				Worker:    worker,
			})
		},
	}

	cmd.Flags().String(FlagStatus, "", "Filter by status: open, in_progress, under_review, completed, cancelled, expired, disputed, pending_cancellation")
	cmd.Flags().String(FlagRequester, "", "Filter by requester address")
	cmd.Flags().String(FlagWorker, "", "Filter by worker address")
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

func parseTaskStatus(raw string) (types.TaskStatus, error) {
	for status := types.TASK_STATUS_OPEN; status <= types.TASK_STATUS_PENDING_CANCELLATION; status++ {
		if status.String() == raw {
			return status, nil
		}
	}
	return types.TASK_STATUS_UNSPECIFIED, fmt.Errorf("unknown task status %q", raw)
}

// GetCmdQueryCancellation returns the command to query a task's cancellation
// request
func GetCmdQueryCancellation() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancellation [task-id]",
		Short: "Query the cancellation request for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}
			return runQuery(cmd, types.QueryCancellation, &types.QueryCancellationRequest{TaskId: taskID})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQuerySubmission returns the command to query a submission by id
func GetCmdQuerySubmission() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submission [submission-id]",
		Short: "Query a submission by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			submissionID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid submission id: %w", err)
			}
			return runQuery(cmd, types.QuerySubmission, &types.QuerySubmissionRequest{SubmissionId: submissionID})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryTaskSubmissions returns the command to list a task's submissions
func GetCmdQueryTaskSubmissions() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task-submissions [task-id]",
		Short: "List every submission made against a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}
			return runQuery(cmd, types.QueryTaskSubmissions, &types.QueryTaskSubmissionsRequest{TaskId: taskID})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryDispute returns the command to query a dispute by id
func GetCmdQueryDispute() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dispute [dispute-id]",
		Short: "Query a dispute by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			disputeID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid dispute id: %w", err)
			}
			return runQuery(cmd, types.QueryDispute, &types.QueryDisputeRequest{DisputeId: disputeID})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryTaskDispute returns the command to query the dispute on a task
func GetCmdQueryTaskDispute() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task-dispute [task-id]",
		Short: "Query the dispute raised against a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}
			return runQuery(cmd, types.QueryTaskDispute, &types.QueryTaskDisputeRequest{TaskId: taskID})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryReputation returns the command to query an identity's reputation
func GetCmdQueryReputation() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reputation [address]",
		Short: "Query the reputation score and tier of an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, types.QueryReputation, &types.QueryReputationRequest{Address: args[0]})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryEscrowAccount returns the command to query an identity's escrow
// ledger record
func GetCmdQueryEscrowAccount() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escrow-account [address]",
		Short: "Query the escrow ledger record of an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, types.QueryEscrowAccount, &types.QueryEscrowAccountRequest{Address: args[0]})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryLedgerTotals returns the command to query the global ledger
// totals
func GetCmdQueryLedgerTotals() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger-totals",
		Short: "Query the global escrow ledger totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, types.QueryLedgerTotals, nil)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryCapabilities returns the command to list capability grants
func GetCmdQueryCapabilities() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capabilities",
		Short: "List capability grants, optionally for one address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := cmd.Flags().GetString(FlagAddress)
			if err != nil {
				return err
			}
			return runQuery(cmd, types.QueryCapabilities, &types.QueryCapabilitiesRequest{Address: address})
		},
	}

	cmd.Flags().String(FlagAddress, "", "Filter grants by address")
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryPauseState returns the command to query the global pause state
func GetCmdQueryPauseState() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pause-state",
		Short: "Query the global pause state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, types.QueryPauseState, nil)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

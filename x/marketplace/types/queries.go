package types

import (
	"context"

	"cosmossdk.io/math"
)

// Query endpoint names under the custom querier route.
const (
	QueryParams          = "params"
	QueryTask            = "task"
	QueryTasks           = "tasks"
	QueryCancellation    = "cancellation"
	QuerySubmission      = "submission"
	QueryTaskSubmissions = "task-submissions"
	QueryDispute         = "dispute"
	QueryTaskDispute     = "task-dispute"
	QueryReputation      = "reputation"
	QueryEscrowAccount   = "escrow-account"
	QueryLedgerTotals    = "ledger-totals"
	QueryCapabilities    = "capabilities"
	QueryPauseState      = "pause-state"
)

// Query request and response types. The node serves these over the legacy
// querier route as Amino JSON.

type QueryParamsRequest struct{}

type QueryParamsResponse struct {
	Params Params `json:"params"`
}

type QueryTaskRequest struct {
	TaskId uint64 `json:"task_id"`
}

type QueryTaskResponse struct {
	Task Task `json:"task"`
}

// QueryTasksRequest filters the task set. Zero values mean no filter.
type QueryTasksRequest struct {
	Status    TaskStatus `json:"status,omitempty"`
	Requester string     `json:"requester,omitempty"`
	Worker    string     `json:"worker,omitempty"`
}

type QueryTasksResponse struct {
	Tasks []Task `json:"tasks"`
}

type QueryCancellationRequest struct {
	TaskId uint64 `json:"task_id"`
}

type QueryCancellationResponse struct {
	Request CancellationRequest `json:"request"`
}

type QuerySubmissionRequest struct {
	SubmissionId uint64 `json:"submission_id"`
}

type QuerySubmissionResponse struct {
	Submission Submission `json:"submission"`
}

// QueryTaskSubmissionsRequest lists every submission made against a task, in
// submission order.
type QueryTaskSubmissionsRequest struct {
	TaskId uint64 `json:"task_id"`
}

type QueryTaskSubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
}

type QueryDisputeRequest struct {
	DisputeId uint64 `json:"dispute_id"`
}

type QueryDisputeResponse struct {
	Dispute Dispute `json:"dispute"`
}

type QueryTaskDisputeRequest struct {
	TaskId uint64 `json:"task_id"`
}

type QueryTaskDisputeResponse struct {
	Dispute Dispute `json:"dispute"`
}

type QueryReputationRequest struct {
	Address string `json:"address"`
}

type QueryReputationResponse struct {
	Score ReputationScore `json:"score"`
	Tier  Tier            `json:"tier"`
}

type QueryEscrowAccountRequest struct {
	Address string `json:"address"`
}

type QueryEscrowAccountResponse struct {
	Account EscrowAccount `json:"account"`
	// WithdrawableAt is the earliest Unix time the account's tier cadence
	// permits the next withdrawal. Zero means immediately.
	WithdrawableAt int64 `json:"withdrawable_at"`
}

type QueryLedgerTotalsRequest struct{}

type QueryLedgerTotalsResponse struct {
	Totals LedgerTotals `json:"totals"`
	// Held is the value currently in custody, derived from the totals.
	Held math.Int `json:"held"`
}

type QueryCapabilitiesRequest struct {
	Address string `json:"address,omitempty"`
}

type QueryCapabilitiesResponse struct {
	Grants []CapabilityGrant `json:"grants"`
}

type QueryPauseStateRequest struct{}

type QueryPauseStateResponse struct {
	State PauseState `json:"state"`
}

// QueryServer is the read-only surface of the marketplace module.
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	Task(context.Context, *QueryTaskRequest) (*QueryTaskResponse, error)
	Tasks(context.Context, *QueryTasksRequest) (*QueryTasksResponse, error)
	Cancellation(context.Context, *QueryCancellationRequest) (*QueryCancellationResponse, error)
	Submission(context.Context, *QuerySubmissionRequest) (*QuerySubmissionResponse, error)
	TaskSubmissions(context.Context, *QueryTaskSubmissionsRequest) (*QueryTaskSubmissionsResponse, error)
	Dispute(context.Context, *QueryDisputeRequest) (*QueryDisputeResponse, error)
	TaskDispute(context.Context, *QueryTaskDisputeRequest) (*QueryTaskDisputeResponse, error)
	Reputation(context.Context, *QueryReputationRequest) (*QueryReputationResponse, error)
	EscrowAccount(context.Context, *QueryEscrowAccountRequest) (*QueryEscrowAccountResponse, error)
	LedgerTotals(context.Context, *QueryLedgerTotalsRequest) (*QueryLedgerTotalsResponse, error)
	Capabilities(context.Context, *QueryCapabilitiesRequest) (*QueryCapabilitiesResponse, error)
	PauseState(context.Context, *QueryPauseStateRequest) (*QueryPauseStateResponse, error)
}

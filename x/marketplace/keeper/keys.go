package keeper

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x01}

	// TaskKeyPrefix is the prefix for task storage
	TaskKeyPrefix = []byte{0x02}

	// NextTaskIDKey is the key for the next task ID counter
	NextTaskIDKey = []byte{0x03}

	// TasksByStatusPrefix is the prefix for indexing tasks by status
	TasksByStatusPrefix = []byte{0x04}

	// TasksByRequesterPrefix is the prefix for indexing tasks by requester
	TasksByRequesterPrefix = []byte{0x05}

	// TasksByWorkerPrefix is the prefix for indexing tasks by assigned worker
	TasksByWorkerPrefix = []byte{0x06}

	// TasksByDeadlinePrefix is the prefix for the deadline-ordered task index,
	// scanned by the end blocker for expiry
	TasksByDeadlinePrefix = []byte{0x07}

	// CancellationRequestKeyPrefix is the prefix for cancellation request storage
	CancellationRequestKeyPrefix = []byte{0x08}

	// PendingCancellationPrefix is the deadline-ordered index of unprocessed
	// cancellation requests
	PendingCancellationPrefix = []byte{0x09}

	// SubmissionKeyPrefix is the prefix for submission storage
	SubmissionKeyPrefix = []byte{0x0A}

	// NextSubmissionIDKey is the key for the next submission ID counter
	NextSubmissionIDKey = []byte{0x0B}

	// ActiveSubmissionPrefix maps a task to its single non-terminal submission
	ActiveSubmissionPrefix = []byte{0x0C}

	// SubmissionsByTaskPrefix is the prefix for indexing submissions by task
	SubmissionsByTaskPrefix = []byte{0x0D}

	// ReviewDeadlinePrefix is the deadline-ordered index of submissions under
	// review, scanned by the end blocker for auto-acceptance
	ReviewDeadlinePrefix = []byte{0x0E}

	// DisputeKeyPrefix is the prefix for dispute storage
	DisputeKeyPrefix = []byte{0x0F}

	// NextDisputeIDKey is the key for the next dispute ID counter
	NextDisputeIDKey = []byte{0x10}

	// DisputeByTaskPrefix maps a task to its dispute
	DisputeByTaskPrefix = []byte{0x11}

	// DisputesByStatusPrefix is the prefix for indexing disputes by status
	DisputesByStatusPrefix = []byte{0x12}

	// ReputationKeyPrefix is the prefix for reputation score storage
	ReputationKeyPrefix = []byte{0x13}

	// EscrowAccountKeyPrefix is the prefix for per-identity escrow account storage
	EscrowAccountKeyPrefix = []byte{0x14}

	// TaskEscrowKeyPrefix is the prefix for per-task escrow balance storage
	TaskEscrowKeyPrefix = []byte{0x15}

	// LedgerTotalsKey is the key for the running conservation counters
	LedgerTotalsKey = []byte{0x16}

	// CapabilityKeyPrefix is the prefix for capability grant storage
	CapabilityKeyPrefix = []byte{0x17}

	// PauseStateKey is the key for the global pause record
	PauseStateKey = []byte{0x18}

	// UnsettledDisputePrefix is the appeal-deadline-ordered index of resolved
	// disputes whose escrow settlement is deferred pending appeal
	UnsettledDisputePrefix = []byte{0x19}
)

// TaskKey returns the store key for a task
func TaskKey(taskID uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, taskID)
	return append(TaskKeyPrefix, bz...)
}

// TaskByStatusKey returns the index key for tasks by status
func TaskByStatusKey(status uint32, taskID uint64) []byte {
	statusBz := make([]byte, 4)
	binary.BigEndian.PutUint32(statusBz, status)
	idBz := make([]byte, 8)
	binary.BigEndian.PutUint64(idBz, taskID)
	return append(append(TasksByStatusPrefix, statusBz...), idBz...)
}

// TaskByStatusPrefixForStatus returns the prefix covering all tasks in a status
func TaskByStatusPrefixForStatus(status uint32) []byte {
	statusBz := make([]byte, 4)
	binary.BigEndian.PutUint32(statusBz, status)
	return append(TasksByStatusPrefix, statusBz...)
}

// TaskByRequesterKey returns the index key for tasks by requester
func TaskByRequesterKey(requester sdk.AccAddress, taskID uint64) []byte {
	idBz := make([]byte, 8)
	binary.BigEndian.PutUint64(idBz, taskID)
	return append(append(TasksByRequesterPrefix, requester.Bytes()...), idBz...)
}

// TaskByWorkerKey returns the index key for tasks by assigned worker
func TaskByWorkerKey(worker sdk.AccAddress, taskID uint64) []byte {
	idBz := make([]byte, 8)
	binary.BigEndian.PutUint64(idBz, taskID)
	return append(append(TasksByWorkerPrefix, worker.Bytes()...), idBz...)
}

// TaskByDeadlineKey returns the deadline-ordered index key for a task.
// Unix-second ordering keeps iteration chronological.
func TaskByDeadlineKey(deadlineUnix int64, taskID uint64) []byte {
	deadlineBz := make([]byte, 8)
	binary.BigEndian.PutUint64(deadlineBz, uint64(deadlineUnix))
	idBz := make([]byte, 8)
	binary.BigEndian.PutUint64(idBz, taskID)
	return append(append(TasksByDeadlinePrefix, deadlineBz...), idBz...)
}

// CancellationRequestKey returns the store key for a task's cancellation request
func CancellationRequestKey(taskID uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, taskID)
	return append(CancellationRequestKeyPrefix, bz...)
}

// PendingCancellationKey returns the deadline-ordered index key for an
// unprocessed cancellation request
func PendingCancellationKey(deadlineUnix int64, taskID uint64) []byte {
	deadlineBz := make([]byte, 8)
	binary.BigEndian.PutUint64(deadlineBz, uint64(deadlineUnix))
	idBz := make([]byte, 8)
	binary.BigEndian.PutUint64(idBz, taskID)
	return append(append(PendingCancellationPrefix, deadlineBz...), idBz...)
}

// SubmissionKey returns the store key for a submission
func SubmissionKey(submissionID uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, submissionID)
	return append(SubmissionKeyPrefix, bz...)
}

// ActiveSubmissionKey returns the store key mapping a task to its active submission
func ActiveSubmissionKey(taskID uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, taskID)
	return append(ActiveSubmissionPrefix, bz...)
}

// SubmissionByTaskKey returns the index key for submissions by task
func SubmissionByTaskKey(taskID uint64, submissionID uint64) []byte {
	taskBz := make([]byte, 8)
	binary.BigEndian.PutUint64(taskBz, taskID)
	subBz := make([]byte, 8)
	binary.BigEndian.PutUint64(subBz, submissionID)
	return append(append(SubmissionsByTaskPrefix, taskBz...), subBz...)
}

// SubmissionByTaskPrefixForTask returns the prefix covering a task's submissions
func SubmissionByTaskPrefixForTask(taskID uint64) []byte {
	taskBz := make([]byte, 8)
	binary.BigEndian.PutUint64(taskBz, taskID)
	return append(SubmissionsByTaskPrefix, taskBz...)
}

// ReviewDeadlineKey returns the deadline-ordered index key for a submission
// under review
func ReviewDeadlineKey(deadlineUnix int64, submissionID uint64) []byte {
	deadlineBz := make([]byte, 8)
	binary.BigEndian.PutUint64(deadlineBz, uint64(deadlineUnix))
	subBz := make([]byte, 8)
	binary.BigEndian.PutUint64(subBz, submissionID)
	return append(append(ReviewDeadlinePrefix, deadlineBz...), subBz...)
}

// DisputeKey returns the store key for a dispute
func DisputeKey(disputeID uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, disputeID)
	return append(DisputeKeyPrefix, bz...)
}

// DisputeByTaskKey returns the store key mapping a task to its dispute
func DisputeByTaskKey(taskID uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, taskID)
	return append(DisputeByTaskPrefix, bz...)
}

// DisputeByStatusKey returns the index key for disputes by status
func DisputeByStatusKey(status uint32, disputeID uint64) []byte {
	statusBz := make([]byte, 4)
	binary.BigEndian.PutUint32(statusBz, status)
	idBz := make([]byte, 8)
	binary.BigEndian.PutUint64(idBz, disputeID)
	return append(append(DisputesByStatusPrefix, statusBz...), idBz...)
}

// ReputationKey returns the store key for an identity's reputation score
func ReputationKey(address sdk.AccAddress) []byte {
	return append(ReputationKeyPrefix, address.Bytes()...)
}

// EscrowAccountKey returns the store key for an identity's escrow account
func EscrowAccountKey(address sdk.AccAddress) []byte {
	return append(EscrowAccountKeyPrefix, address.Bytes()...)
}

// TaskEscrowKey returns the store key for a task's escrow balance
func TaskEscrowKey(taskID uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, taskID)
	return append(TaskEscrowKeyPrefix, bz...)
}

// CapabilityKey returns the store key for a capability grant
func CapabilityKey(address sdk.AccAddress, capability int32) []byte {
	capBz := make([]byte, 4)
	binary.BigEndian.PutUint32(capBz, uint32(capability))
	return append(append(CapabilityKeyPrefix, address.Bytes()...), capBz...)
}

// UnsettledDisputeKey returns the appeal-deadline-ordered index key for a
// resolved dispute holding its escrow
func UnsettledDisputeKey(deadlineUnix int64, disputeID uint64) []byte {
	deadlineBz := make([]byte, 8)
	binary.BigEndian.PutUint64(deadlineBz, uint64(deadlineUnix))
	idBz := make([]byte, 8)
	binary.BigEndian.PutUint64(idBz, disputeID)
	return append(append(UnsettledDisputePrefix, deadlineBz...), idBz...)
}

// GetIDFromBytes converts big-endian bytes to an identifier
func GetIDFromBytes(bz []byte) uint64 {
	return binary.BigEndian.Uint64(bz)
}

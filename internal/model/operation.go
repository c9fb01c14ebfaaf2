package model

// OperationState represents the lifecycle state of an asynchronous remote
// operation as observed by the client.
type OperationState string

const (
	// OperationStateOngoing indicates the operation has not finished yet. The
	// remote service doesn't enumerate its non-terminal labels, so any status
	// string outside the terminal set maps here.
	OperationStateOngoing OperationState = "ongoing"
	// OperationStateCompleted indicates the operation finished successfully.
	OperationStateCompleted OperationState = "completed"
	// OperationStatePartial indicates the operation finished with some parts
	// succeeding and others not (e.g. some deck slides failed).
	OperationStatePartial OperationState = "partial"
	// OperationStateFailed indicates the operation finished unsuccessfully.
	OperationStateFailed OperationState = "failed"
)

// ParseOperationState maps a remote status string to an OperationState.
// Unknown values are treated as ongoing.
func ParseOperationState(s string) OperationState {
	switch OperationState(s) {
	case OperationStateCompleted, OperationStatePartial, OperationStateFailed:
		return OperationState(s)
	default:
		return OperationStateOngoing
	}
}

// Terminal returns true when the state ends the operation lifecycle.
func (s OperationState) Terminal() bool {
	switch s {
	case OperationStateCompleted, OperationStatePartial, OperationStateFailed:
		return true
	default:
		return false
	}
}

// DefaultCurrentStep is the step description used when the remote status
// payload doesn't carry one.
const DefaultCurrentStep = "Processing..."

// OperationStatus is the progress snapshot of an asynchronous operation.
type OperationStatus struct {
	State OperationState
	// Progress is a best-effort completion percentage, 0 when not reported.
	Progress int
	// CurrentStep is a human readable description of what the remote service
	// is doing, DefaultCurrentStep when not reported.
	CurrentStep string
}

// StatusReporter is implemented by payloads that carry an operation status,
// so they can be driven by the generic poller.
type StatusReporter interface {
	OperationStatus() OperationStatus
}

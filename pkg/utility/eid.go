package utility

import (
	"sync"

	"github.com/google/uuid"
)

// ExecutionID identifies one run of the process. Every event stamped with it
// can be traced back to the run that produced it.
type ExecutionID = uuid.UUID

var (
	executionIDMu  sync.Mutex
	executionID    ExecutionID
	executionIDSet bool
)

// GetExecutionID returns the id of the current run, generating one on first
// use. The id is stable until ResetExecutionID is called.
func GetExecutionID() ExecutionID {
	executionIDMu.Lock()
	defer executionIDMu.Unlock()

	if !executionIDSet {
		executionID = uuid.Must(uuid.NewV7())
		executionIDSet = true
	}
	return executionID
}

// ResetExecutionID starts a fresh run id and returns it.
func ResetExecutionID() ExecutionID {
	executionIDMu.Lock()
	defer executionIDMu.Unlock()

	executionID = uuid.Must(uuid.NewV7())
	executionIDSet = true
	return executionID
}

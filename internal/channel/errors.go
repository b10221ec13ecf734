package channel

import "fmt"

// CloseReason distinguishes why the channel shut down.
type CloseReason string

const (
	ReasonShutdown    CloseReason = "shutdown"
	ReasonHostExited  CloseReason = "host exited"
	ReasonStreamError CloseReason = "stream error"
	ReasonSpawnFailed CloseReason = "spawn failed"
)

// ClosedError is surfaced to every call still pending when the channel
// shuts down, and to sends attempted after it.
type ClosedError struct {
	Reason CloseReason
	Err    error
}

func (e *ClosedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("channel closed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("channel closed (%s)", e.Reason)
}

func (e *ClosedError) Unwrap() error { return e.Err }

// SpawnError means the host process could not be started. It is fatal
// to the triggering call only; the next call may retry spawning on a
// fresh transport.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawning host %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

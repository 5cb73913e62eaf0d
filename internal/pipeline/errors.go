package pipeline

import (
	"fmt"
)

// MissingInputError reports a declared-required key absent from the initial
// state. It is raised at pre-flight, before any external call is issued.
type MissingInputError struct {
	Stage string
	Key   Key
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("stage %q requires input %q which is missing from the initial state", e.Stage, e.Key)
}

// UndeclaredDependencyError reports a stage touching a key outside its
// declared contract: a read it never listed, or a write it does not own.
type UndeclaredDependencyError struct {
	Stage string
	Key   Key
	Write bool
}

func (e *UndeclaredDependencyError) Error() string {
	if e.Write {
		return fmt.Sprintf("stage %q wrote undeclared key %q", e.Stage, e.Key)
	}
	return fmt.Sprintf("stage %q read undeclared key %q", e.Stage, e.Key)
}

// TransientExternalError marks a network/timeout/rate-limit fault from the
// generative service. The engine retries these up to its configured bound.
type TransientExternalError struct {
	Err error
}

func (e *TransientExternalError) Error() string {
	return fmt.Sprintf("transient external failure: %v", e.Err)
}

func (e *TransientExternalError) Unwrap() error {
	return e.Err
}

// PermanentExternalError marks an authentication/validation fault from the
// generative service. These are never retried.
type PermanentExternalError struct {
	Err error
}

func (e *PermanentExternalError) Error() string {
	return fmt.Sprintf("permanent external failure: %v", e.Err)
}

func (e *PermanentExternalError) Unwrap() error {
	return e.Err
}

// StageError wraps a failure with the stage that produced it and a snapshot
// of the state at failure time. Every failed run surfaces exactly one of
// these; no partial state escapes alongside it.
type StageError struct {
	Stage string
	State map[Key]string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %q failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

package auth

import (
	"sync"

	pkgerrors "opsportal/pkg/errors"
)

// AttemptState tracks one login attempt through its lifecycle.
type AttemptState string

const (
	StateIdle          AttemptState = "idle"
	StateSubmitting    AttemptState = "submitting"
	StateAuthenticated AttemptState = "authenticated"
	StateRejected      AttemptState = "rejected"
)

// ErrSubmissionInFlight rejects a resubmission while an attempt is already
// racing the identity provider.
var ErrSubmissionInFlight = pkgerrors.New(pkgerrors.CodeConflict, "submission already in flight")

// ErrAttemptFinished rejects reuse of a terminal attempt; a new attempt always
// starts a fresh cycle.
var ErrAttemptFinished = pkgerrors.New(pkgerrors.CodeConflict, "attempt already finished")

// Attempt is the per-login-attempt state machine:
// Idle -> Submitting -> {Authenticated | Rejected}. Submitting is the only
// state in which resubmission must be refused; the terminal states are final
// for this attempt.
type Attempt struct {
	mu    sync.Mutex
	state AttemptState
}

func NewAttempt() *Attempt {
	return &Attempt{state: StateIdle}
}

// Begin moves Idle -> Submitting. It fails while a submission is in flight or
// once the attempt has reached a terminal state.
func (a *Attempt) Begin() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch a.state {
	case StateIdle:
		a.state = StateSubmitting
		return nil
	case StateSubmitting:
		return ErrSubmissionInFlight
	default:
		return ErrAttemptFinished
	}
}

// Finish records the terminal outcome of the attempt.
func (a *Attempt) Finish(outcome AttemptState) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == StateSubmitting {
		a.state = outcome
	}
}

// State returns the current attempt state.
func (a *Attempt) State() AttemptState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

package service

import (
	"math"
	"time"
)

// Lockout policy: 5 consecutive failures lock the account for 15 minutes.
const (
	MaxFailedAttempts = 5
	LockDuration      = 15 * time.Minute
)

// LockoutState is the per-account state the policy reads and rewrites.
type LockoutState struct {
	FailedAttempts int
	LockUntil      *time.Time
}

// LoginOutcome is the decision for a single login attempt.
type LoginOutcome int

const (
	// OutcomeSuccess: password verified; counters reset.
	OutcomeSuccess LoginOutcome = iota
	// OutcomeInvalidCredentials: password wrong; counter incremented, lock
	// possibly set.
	OutcomeInvalidCredentials
	// OutcomeLocked: account is inside a lock window; nothing mutated.
	OutcomeLocked
)

// LoginDecision carries the outcome of an attempt and the state to persist.
type LoginDecision struct {
	Outcome LoginOutcome
	// RetryAfterMinutes is the remaining lock time, rounded up. Set only for
	// OutcomeLocked.
	RetryAfterMinutes int
	// Next is the lockout state to persist. For OutcomeLocked it equals the
	// input state.
	Next LockoutState
	// LoginAt is the last-login time to record. Set only on success.
	LoginAt *time.Time
}

// EvaluateLogin decides a single login attempt. verify is invoked only when
// the attempt is actually evaluated, so a locked account never pays for a
// password comparison.
//
// An expired lock starts a fresh window: a failing attempt right after expiry
// counts as attempt #1, not #6.
func EvaluateLogin(state LockoutState, verify func() bool, now time.Time) LoginDecision {
	if state.LockUntil != nil {
		if state.LockUntil.After(now) {
			remaining := state.LockUntil.Sub(now)
			return LoginDecision{
				Outcome:           OutcomeLocked,
				RetryAfterMinutes: int(math.Ceil(remaining.Minutes())),
				Next:              state,
			}
		}
		// Lock expired: this attempt opens a new window.
		state.FailedAttempts = 0
		state.LockUntil = nil
	}

	if !verify() {
		next := LockoutState{FailedAttempts: state.FailedAttempts + 1}
		if next.FailedAttempts >= MaxFailedAttempts {
			until := now.Add(LockDuration)
			next.LockUntil = &until
		}
		return LoginDecision{Outcome: OutcomeInvalidCredentials, Next: next}
	}

	loginAt := now
	return LoginDecision{
		Outcome: OutcomeSuccess,
		Next:    LockoutState{},
		LoginAt: &loginAt,
	}
}

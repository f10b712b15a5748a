package service

import (
	"testing"
	"time"
)

func alwaysFail() bool { return false }
func alwaysPass() bool { return true }

func TestEvaluateLoginSuccessResetsState(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	state := LockoutState{FailedAttempts: 3}

	d := EvaluateLogin(state, alwaysPass, now)

	if d.Outcome != OutcomeSuccess {
		t.Fatalf("Outcome = %v, want OutcomeSuccess", d.Outcome)
	}
	if d.Next.FailedAttempts != 0 || d.Next.LockUntil != nil {
		t.Errorf("Next = %+v, want zeroed state", d.Next)
	}
	if d.LoginAt == nil || !d.LoginAt.Equal(now) {
		t.Errorf("LoginAt = %v, want %v", d.LoginAt, now)
	}
}

func TestEvaluateLoginFailureIncrementsCounter(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	d := EvaluateLogin(LockoutState{FailedAttempts: 2}, alwaysFail, now)

	if d.Outcome != OutcomeInvalidCredentials {
		t.Fatalf("Outcome = %v, want OutcomeInvalidCredentials", d.Outcome)
	}
	if d.Next.FailedAttempts != 3 {
		t.Errorf("FailedAttempts = %d, want 3", d.Next.FailedAttempts)
	}
	if d.Next.LockUntil != nil {
		t.Errorf("LockUntil = %v, want nil before the fifth failure", d.Next.LockUntil)
	}
}

func TestEvaluateLoginFifthFailureLocks(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	d := EvaluateLogin(LockoutState{FailedAttempts: 4}, alwaysFail, now)

	if d.Outcome != OutcomeInvalidCredentials {
		t.Fatalf("Outcome = %v, want OutcomeInvalidCredentials", d.Outcome)
	}
	if d.Next.FailedAttempts != MaxFailedAttempts {
		t.Errorf("FailedAttempts = %d, want %d", d.Next.FailedAttempts, MaxFailedAttempts)
	}
	want := now.Add(LockDuration)
	if d.Next.LockUntil == nil || !d.Next.LockUntil.Equal(want) {
		t.Errorf("LockUntil = %v, want %v", d.Next.LockUntil, want)
	}
}

func TestEvaluateLoginLockedSkipsVerify(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	until := now.Add(10*time.Minute + 30*time.Second)
	state := LockoutState{FailedAttempts: 5, LockUntil: &until}

	verified := false
	d := EvaluateLogin(state, func() bool { verified = true; return true }, now)

	if verified {
		t.Error("verify was called for a locked account")
	}
	if d.Outcome != OutcomeLocked {
		t.Fatalf("Outcome = %v, want OutcomeLocked", d.Outcome)
	}
	if d.RetryAfterMinutes != 11 {
		t.Errorf("RetryAfterMinutes = %d, want 11 (rounded up)", d.RetryAfterMinutes)
	}
	if d.Next.FailedAttempts != 5 || d.Next.LockUntil == nil || !d.Next.LockUntil.Equal(until) {
		t.Errorf("Next = %+v, want unchanged state", d.Next)
	}
}

func TestEvaluateLoginExpiredLockStartsFreshWindow(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	until := now.Add(-time.Second)
	state := LockoutState{FailedAttempts: 5, LockUntil: &until}

	// A failing attempt after the lock expires counts as attempt #1.
	d := EvaluateLogin(state, alwaysFail, now)

	if d.Outcome != OutcomeInvalidCredentials {
		t.Fatalf("Outcome = %v, want OutcomeInvalidCredentials", d.Outcome)
	}
	if d.Next.FailedAttempts != 1 {
		t.Errorf("FailedAttempts = %d, want 1", d.Next.FailedAttempts)
	}
	if d.Next.LockUntil != nil {
		t.Errorf("LockUntil = %v, want nil", d.Next.LockUntil)
	}
}

func TestEvaluateLoginExpiredLockAllowsSuccess(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	until := now.Add(-time.Minute)
	state := LockoutState{FailedAttempts: 5, LockUntil: &until}

	d := EvaluateLogin(state, alwaysPass, now)

	if d.Outcome != OutcomeSuccess {
		t.Fatalf("Outcome = %v, want OutcomeSuccess", d.Outcome)
	}
	if d.Next.FailedAttempts != 0 || d.Next.LockUntil != nil {
		t.Errorf("Next = %+v, want zeroed state", d.Next)
	}
}

func TestEvaluateLoginLockBoundaryIsExclusive(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	until := now // lock_until == now means the lock has expired
	state := LockoutState{FailedAttempts: 5, LockUntil: &until}

	d := EvaluateLogin(state, alwaysPass, now)

	if d.Outcome != OutcomeSuccess {
		t.Fatalf("Outcome = %v, want OutcomeSuccess at the lock boundary", d.Outcome)
	}
}

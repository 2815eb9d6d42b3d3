package domain

// Outcome classifies how a recorded run ended.
type Outcome string

const (
	// OutcomeOK means the child exited zero.
	OutcomeOK Outcome = "ok"
	// OutcomeFailed means the child exited non-zero.
	OutcomeFailed Outcome = "failed"
	// OutcomeSignaled means the child was terminated by a signal.
	OutcomeSignaled Outcome = "signaled"
	// OutcomeLaunchError means the composed command never started.
	OutcomeLaunchError Outcome = "launch_error"
)

// AllOutcomes returns all outcomes in display order.
func AllOutcomes() []Outcome {
	return []Outcome{
		OutcomeOK,
		OutcomeFailed,
		OutcomeSignaled,
		OutcomeLaunchError,
	}
}

// OutcomeForExit classifies a finished child.
func OutcomeForExit(code int, signaled bool) Outcome {
	switch {
	case signaled:
		return OutcomeSignaled
	case code == 0:
		return OutcomeOK
	default:
		return OutcomeFailed
	}
}

// Display returns a human-readable outcome name.
func (o Outcome) Display() string {
	switch o {
	case OutcomeOK:
		return "OK"
	case OutcomeFailed:
		return "Failed"
	case OutcomeSignaled:
		return "Signaled"
	case OutcomeLaunchError:
		return "Launch Error"
	default:
		return string(o)
	}
}

// IsValid reports whether the outcome is a known value.
func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeOK, OutcomeFailed, OutcomeSignaled, OutcomeLaunchError:
		return true
	default:
		return false
	}
}

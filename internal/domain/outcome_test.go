package domain

import "testing"

func TestOutcomeForExit(t *testing.T) {
	tests := []struct {
		name     string
		want     Outcome
		code     int
		signaled bool
	}{
		{"exit zero", OutcomeOK, 0, false},
		{"exit non-zero", OutcomeFailed, 3, false},
		{"exit 127 from child", OutcomeFailed, 127, false},
		{"signaled", OutcomeSignaled, 130, true},
		{"signaled wins over code", OutcomeSignaled, 143, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutcomeForExit(tt.code, tt.signaled); got != tt.want {
				t.Errorf("OutcomeForExit(%d, %v) = %v, want %v", tt.code, tt.signaled, got, tt.want)
			}
		})
	}
}

func TestOutcome_Display(t *testing.T) {
	tests := []struct {
		outcome Outcome
		display string
	}{
		{OutcomeOK, "OK"},
		{OutcomeFailed, "Failed"},
		{OutcomeSignaled, "Signaled"},
		{OutcomeLaunchError, "Launch Error"},
		{Outcome("unknown"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			if got := tt.outcome.Display(); got != tt.display {
				t.Errorf("Display() = %q, want %q", got, tt.display)
			}
		})
	}
}

func TestOutcome_IsValid(t *testing.T) {
	tests := []struct {
		outcome Outcome
		valid   bool
	}{
		{OutcomeOK, true},
		{OutcomeFailed, true},
		{OutcomeSignaled, true},
		{OutcomeLaunchError, true},
		{Outcome("unknown"), false},
		{Outcome(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			if got := tt.outcome.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestAllOutcomes(t *testing.T) {
	outcomes := AllOutcomes()
	expected := []Outcome{
		OutcomeOK,
		OutcomeFailed,
		OutcomeSignaled,
		OutcomeLaunchError,
	}

	if len(outcomes) != len(expected) {
		t.Errorf("AllOutcomes() returned %d outcomes, want %d", len(outcomes), len(expected))
	}

	for i, o := range expected {
		if outcomes[i] != o {
			t.Errorf("AllOutcomes()[%d] = %v, want %v", i, outcomes[i], o)
		}
	}
}

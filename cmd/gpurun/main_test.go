package main

import (
	"testing"

	"github.com/runoshun/gpurun/internal/domain"
)

func TestIsChildExit(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "exit error",
			err:  &domain.ExitError{Code: 3},
			want: true,
		},
		{
			name: "launch error",
			err:  &domain.LaunchError{Argv0: "pvkrun", Err: domain.ErrUnknownStrategy},
			want: false,
		},
		{
			name: "config error",
			err:  domain.ErrInvalidConfig,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isChildExit(tt.err); got != tt.want {
				t.Errorf("isChildExit(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "success",
			err:  nil,
			want: domain.ExitOK,
		},
		{
			name: "child exit code relayed",
			err:  &domain.ExitError{Code: 42},
			want: 42,
		},
		{
			name: "launch failure",
			err:  &domain.LaunchError{Argv0: "primusrun", Err: domain.ErrUnknownStrategy},
			want: domain.ExitLaunch,
		},
		{
			name: "config failure",
			err:  domain.ErrUnknownStrategy,
			want: domain.ExitConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := report(tt.err); got != tt.want {
				t.Errorf("report(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

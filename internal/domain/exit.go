package domain

import "fmt"

// Exit codes returned by the gpurun process itself. Anything else is a
// child exit code relayed unchanged.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitConfig   = 2
	ExitLaunch   = 127
)

// ExitError carries a child's non-zero exit code up to main. The child
// ran and reported its own failure; gpurun mirrors the code and prints
// nothing on its behalf.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

// LaunchError reports that the composed command could not be started:
// the wrapper binary is missing from PATH, the directory does not
// exist, or the exec itself failed.
type LaunchError struct {
	Argv0 string
	Err   error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot launch %q: %v", e.Argv0, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

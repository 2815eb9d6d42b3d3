package history

import "github.com/runoshun/gpurun/internal/domain"

// Msg is the interface for all history TUI messages.
// All message types implement this sealed interface.
//
//sumtype:decl
type Msg interface {
	sealed()
}

// MsgRunsLoaded is sent when runs are loaded from the history store.
//
//nolint:govet // Logical field order preferred
type MsgRunsLoaded struct {
	Runs []*domain.Run
	Err  error
}

func (MsgRunsLoaded) sealed() {}

// MsgRunDeleted is sent when a run has been removed.
type MsgRunDeleted struct {
	Err error
	ID  string
}

func (MsgRunDeleted) sealed() {}

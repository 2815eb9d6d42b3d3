// Package banner prints run announcements and warnings for the user.
package banner

import (
	"fmt"
	"io"
	"strings"

	"github.com/runoshun/gpurun/internal/domain"
)

// Ensure Announcer implements domain.Announcer interface.
var _ domain.Announcer = (*Announcer)(nil)

// Announcer writes plain text lines, normally to stderr so the launched
// process keeps stdout to itself.
type Announcer struct {
	out io.Writer
}

// New creates an Announcer writing to out.
func New(out io.Writer) *Announcer {
	return &Announcer{out: out}
}

// Banner announces an imminent launch.
func (a *Announcer) Banner(inv *domain.Invocation) {
	if inv.Def.HasWrapper() {
		fmt.Fprintf(a.out, "Strategy: %s (%s)\n", inv.Strategy, inv.Def.Wrapper)
	} else {
		fmt.Fprintf(a.out, "Strategy: %s\n", inv.Strategy)
	}
	if env := inv.EnvStrings(); len(env) > 0 {
		fmt.Fprintf(a.out, "Env: %s\n", strings.Join(env, " "))
	}
	fmt.Fprintf(a.out, "Directory: %s\n", inv.Dir)
	fmt.Fprintf(a.out, "Command: %s\n", inv.CommandLine())
}

// Warnf reports a non-fatal problem.
func (a *Announcer) Warnf(format string, args ...any) {
	fmt.Fprintf(a.out, "Warning: "+format+"\n", args...)
}

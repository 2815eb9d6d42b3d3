package domain

import (
	"sort"
	"strings"
)

// Invocation represents a single launch: the strategy, the target
// command, and where it runs. Argv is the composed command actually
// handed to the operating system.
type Invocation struct {
	Strategy Strategy
	Def      StrategyDef
	Target   []string
	Dir      string
	LogPath  string
	Argv     []string
}

// NewInvocation composes the command for a launch. The strategy's
// wrapper binary, when it has one, is prepended to the target; the
// target itself is never reordered, rewritten or re-quoted.
func NewInvocation(strategy Strategy, def StrategyDef, target []string, dir, logPath string) (*Invocation, error) {
	if len(target) == 0 {
		return nil, ErrEmptyCommand
	}
	return &Invocation{
		Strategy: strategy,
		Def:      def,
		Target:   target,
		Dir:      dir,
		LogPath:  logPath,
		Argv:     ComposeArgv(def, target),
	}, nil
}

// ComposeArgv builds the argv to spawn for a target under the given
// strategy definition.
func ComposeArgv(def StrategyDef, target []string) []string {
	if !def.HasWrapper() {
		return append([]string(nil), target...)
	}
	argv := make([]string, 0, len(target)+1)
	argv = append(argv, def.Wrapper)
	return append(argv, target...)
}

// CommandLine returns the composed argv as one space-joined line.
func (i *Invocation) CommandLine() string {
	return strings.Join(i.Argv, " ")
}

// EnvStrings returns the strategy's environment additions in KEY=VALUE
// form, sorted by key.
func (i *Invocation) EnvStrings() []string {
	if len(i.Def.Env) == 0 {
		return nil
	}
	env := make([]string, 0, len(i.Def.Env))
	for k, v := range i.Def.Env {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	return env
}

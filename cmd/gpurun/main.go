// Package main is the entry point for the gpurun CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/runoshun/gpurun/internal/app"
	"github.com/runoshun/gpurun/internal/cli"
	"github.com/runoshun/gpurun/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gpurun: get current directory: %v\n", err)
		return domain.ExitInternal
	}

	container, err := app.New(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gpurun: %v\n", err)
		return domain.ExitInternal
	}

	rootCmd := cli.NewRootCommand(container, version)
	return report(rootCmd.Execute())
}

// report prints err unless it only mirrors the child's own exit, then
// maps it to the process exit code.
func report(err error) int {
	if err != nil && !isChildExit(err) {
		fmt.Fprintf(os.Stderr, "gpurun: %v\n", err)
	}
	return cli.ExitCodeFor(err)
}

// isChildExit reports whether err carries a child's own non-zero exit
// code. The child already said what it had to say; gpurun stays silent.
func isChildExit(err error) bool {
	var exitErr *domain.ExitError
	return errors.As(err, &exitErr)
}

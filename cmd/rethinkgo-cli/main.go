// Command rethinkgo-cli is a minimal demonstration program for the
// rethinkgo client library: it is not part of the library's public
// contract, only a thin driver exercising Connect/Run/RunCursor the way a
// real caller would, grounded in the teacher's cmd/r-cli.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rethinkgo/rerr"
)

var version = "dev"

const (
	exitOK         = 0
	exitConnection = 1
	exitQuery      = 2
	exitINT        = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := newRootCmd()
	err := cmd.ExecuteContext(ctx)

	ctxErr := ctx.Err()
	stop()

	if err != nil {
		if ctxErr != nil {
			os.Exit(exitINT)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
	if ctxErr != nil {
		os.Exit(exitINT)
	}
}

// exitCode maps an error returned from a subcommand to a process exit code.
func exitCode(err error) int {
	var clientErr *rerr.ClientError
	var compileErr *rerr.CompileError
	var runtimeErr *rerr.RuntimeError
	var nonExistErr *rerr.NonExistenceError
	var permErr *rerr.PermissionError
	if errors.As(err, &clientErr) || errors.As(err, &compileErr) || errors.As(err, &runtimeErr) ||
		errors.As(err, &nonExistErr) || errors.As(err, &permErr) {
		return exitQuery
	}
	return exitConnection
}

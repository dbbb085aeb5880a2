// Package main provides the leapa11y command.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/leapstack-labs/leapa11y/internal/cli"
)

// Exit codes.
const (
	exitOK        = 0
	exitFailure   = 1
	exitInterrupt = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Execute(ctx)
	code := exitCode(ctx, err)
	stop()
	os.Exit(code)
}

// exitCode maps the command result to the process exit status. An
// interrupted run exits with 130 whatever the command returned.
func exitCode(ctx context.Context, err error) int {
	if ctx.Err() != nil {
		return exitInterrupt
	}
	if err != nil {
		return exitFailure
	}
	return exitOK
}

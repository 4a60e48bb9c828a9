package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, cli := newRootCommand(defaultDeps())
	err := cmd.ExecuteContext(ctx)
	if flushErr := cli.flushMetrics(); flushErr != nil {
		fmt.Fprintln(os.Stderr, renderStatusLine("Metrics", statusWarn, flushErr.Error(), shouldColorize(os.Stderr)))
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, renderError(err, shouldColorize(os.Stderr)))
		}
		stop()
		os.Exit(1)
	}
}

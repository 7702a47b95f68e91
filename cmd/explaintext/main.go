package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/explaintext/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	cancel()

	cli.ReportError(err)
	os.Exit(cli.ExitCode(err))
}

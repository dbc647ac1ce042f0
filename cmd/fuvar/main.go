package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fuvar/internal/cli"
)

func main() {
	// Load .env file for local use (ignored when missing)
	cli.LoadEnvFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

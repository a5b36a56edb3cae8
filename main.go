// sockchat - an interactive terminal client for Socket.IO chat servers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sockchat/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)

	err := cmd.Execute(ctx, os.Args[1:])
	cancel()
	code := cmd.ExitCode(err)
	if code != cmd.ExitOK {
		fmt.Fprintf(os.Stderr, "sockchat: %v\n", err)
	}
	os.Exit(code)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/crucial707/walti/cmd/walti/root"

	_ "github.com/crucial707/walti/cmd/walti/auth"
	_ "github.com/crucial707/walti/cmd/walti/gate"
	_ "github.com/crucial707/walti/cmd/walti/scan"
	_ "github.com/crucial707/walti/cmd/walti/targets"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute the root Cobra command
	if err := root.GetRoot().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

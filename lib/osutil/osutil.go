package osutil

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Returns a context that lives until the process receives an interrupt
// or termination signal.
func SignalContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}

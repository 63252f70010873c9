// Package graceful ties a context to the process termination signals.
package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// Context returns a context that is canceled on SIGINT or SIGTERM. A nil
// logger is allowed.
func Context(ctx context.Context, logger *zap.SugaredLogger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			if logger != nil {
				logger.Infow("received termination signal, shutting down", "signal", sig.String())
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

package sigctx

import (
	"context"
	"os/signal"
	"syscall"
)

// NotifyContext binds the application context to the signals an
// interactive terminal session receives.
func NotifyContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
}

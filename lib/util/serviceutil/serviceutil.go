package serviceutil

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Returns a context that will live until Ctrl+C is pressed
func SignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	return ctx
}

var (
	exitLock  sync.Mutex
	exitHooks []func()
	// overridden in tests
	exit = os.Exit
)

// OnExit registers fn to run before the process exits through Exit or
// Fatal. Hooks run in reverse order of registration.
func OnExit(fn func()) {
	exitLock.Lock()
	defer exitLock.Unlock()
	exitHooks = append(exitHooks, fn)
}

func runExitHooks() {
	exitLock.Lock()
	hooks := exitHooks
	exitHooks = nil
	exitLock.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

// Exit runs the exit hooks and exits the process with code.
func Exit(code int) {
	runExitHooks()
	exit(code)
}

// Fatal logs the error once and exits the process with status 1.
func Fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	Exit(1)
}

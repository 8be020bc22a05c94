package panics

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/kaspanet/gentxset/infrastructure/logger"
)

const exitHandlerTimeout = 5 * time.Second

// HandlePanic recovers a panic, logs it along with the panicking stack and
// goroutineStackTrace (the stack that spawned the goroutine, if known),
// flushes the log and exits with status 1. It must be deferred directly.
func HandlePanic(log *logger.Logger, goroutineName string, goroutineStackTrace []byte) {
	err := recover()
	if err == nil {
		return
	}

	reason := fmt.Sprintf("Fatal error in goroutine `%s`: %+v", goroutineName, err)
	stackTrace := debug.Stack()

	flushed := make(chan struct{})
	go func() {
		log.Criticalf("Exiting: %s", reason)
		log.Criticalf("Stack trace: %s", stackTrace)
		if goroutineStackTrace != nil {
			log.Criticalf("Goroutine stack trace: %s", goroutineStackTrace)
		}
		log.Backend().Close()
		close(flushed)
	}()

	select {
	case <-time.After(exitHandlerTimeout):
		fmt.Fprintln(os.Stderr, "Couldn't flush the log before exiting.")
	case <-flushed:
	}
	fmt.Fprintln(os.Stderr, reason)
	os.Exit(1)
}

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

const normalLogSize = 512

// Flags to modify Backend's behavior.
const (
	// LogFlagLongFile modifies the logger output to include full path and line number
	// of the logging callsite, e.g. /a/b/c/main.go:123.
	LogFlagLongFile uint32 = 1 << iota

	// LogFlagShortFile modifies the logger output to include filename and line number
	// of the logging callsite, e.g. main.go:123. takes precedence over LogFlagLongFile.
	LogFlagShortFile
)

// logFlagsEnvVar names the environment variable holding the default
// backend flags as a comma-separated list of "longfile" and "shortfile"
const logFlagsEnvVar = "LOGFLAGS"

// defaultFlags is initialized before any package-level Backend since
// BackendLog depends on it
var defaultFlags = flagsFromString(os.Getenv(logFlagsEnvVar))

func flagsFromString(s string) (flags uint32) {
	for _, flag := range strings.Split(s, ",") {
		switch strings.TrimSpace(flag) {
		case "longfile":
			flags |= LogFlagLongFile
		case "shortfile":
			flags |= LogFlagShortFile
		}
	}
	return flags
}

const (
	defaultThresholdKB = 100 * 1000 // 100 MB logs by default.
	defaultMaxRolls    = 8          // keep 8 last logs by default.
)

// levelWriter receives every log entry at or above its level
type levelWriter struct {
	io.WriteCloser
	level Level
}

// Backend is a logging backend. Subsystems created from the backend write
// to it through a channel, and a single goroutine fans the entries out to
// every writer, so writes are never interleaved.
type Backend struct {
	flag      uint32
	isRunning uint32
	writers   []levelWriter
	writeChan chan logEntry
	done      chan struct{}
	closeOnce sync.Once
}

// NewBackendWithFlags configures a Backend to use the specified flags rather than using
// the package's defaults as determined through the LOGFLAGS environment
// variable.
func NewBackendWithFlags(flags uint32) *Backend {
	return &Backend{
		flag:      flags,
		writeChan: make(chan logEntry),
		done:      make(chan struct{}),
	}
}

// NewBackend creates a new logger backend.
func NewBackend() *Backend {
	return NewBackendWithFlags(defaultFlags)
}

// AddLogWriter adds a writer that receives every entry at or above logLevel.
// Writers may only be added before Run.
func (b *Backend) AddLogWriter(logWriter io.WriteCloser, logLevel Level) error {
	if b.IsRunning() {
		return errors.New("The logger is already running")
	}
	b.writers = append(b.writers, levelWriter{WriteCloser: logWriter, level: logLevel})
	return nil
}

// AddLogFile adds a rotating log file with the default rotation settings.
// The file and its directory are created if they don't exist.
func (b *Backend) AddLogFile(logFile string, logLevel Level) error {
	return b.AddLogFileWithCustomRotator(logFile, logLevel, defaultThresholdKB, defaultMaxRolls)
}

// AddLogFileWithCustomRotator adds a log file that is rolled once it
// reaches thresholdKB, keeping maxRolls old files.
func (b *Backend) AddLogFileWithCustomRotator(logFile string, logLevel Level, thresholdKB int64, maxRolls int) error {
	logDir := filepath.Dir(logFile)
	err := os.MkdirAll(logDir, 0700)
	if err != nil {
		return errors.Wrapf(err, "failed to create log directory %s", logDir)
	}
	r, err := rotator.New(logFile, thresholdKB, false, maxRolls)
	if err != nil {
		return errors.Wrapf(err, "failed to create file rotator for %s", logFile)
	}
	return b.AddLogWriter(r, logLevel)
}

// Run starts writing log entries in a separate goroutine. It may only be
// called once.
func (b *Backend) Run() error {
	if !atomic.CompareAndSwapUint32(&b.isRunning, 0, 1) {
		return errors.New("The logger is already running")
	}
	go func() {
		defer close(b.done)
		defer func() {
			if err := recover(); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Fatal error in logger.Backend goroutine: %+v\n", err)
				_, _ = fmt.Fprintf(os.Stderr, "Goroutine stacktrace: %s\n", debug.Stack())
			}
		}()
		for entry := range b.writeChan {
			for _, writer := range b.writers {
				if entry.level >= writer.level {
					_, _ = writer.Write(entry.log)
				}
			}
		}
	}()
	return nil
}

// IsRunning returns true if backend.Run() has been called and the backend
// was not closed yet.
func (b *Backend) IsRunning() bool {
	return atomic.LoadUint32(&b.isRunning) != 0
}

// Close flushes pending entries and closes all writers. Closing a backend
// more than once, or one that never ran, is a no-op.
func (b *Backend) Close() {
	b.closeOnce.Do(func() {
		if !atomic.CompareAndSwapUint32(&b.isRunning, 1, 0) {
			return
		}
		close(b.writeChan)
		<-b.done
		for _, writer := range b.writers {
			_ = writer.Close()
		}
	})
}

// Logger returns a new logger for a particular subsystem that writes to the
// Backend b. A tag describes the subsystem and is included in all log
// messages. The logger is off until its level is set.
func (b *Backend) Logger(subsystemTag string) *Logger {
	return &Logger{LevelOff, subsystemTag, b, b.writeChan}
}

package logger

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

type logEntry struct {
	log   []byte
	level Level
}

// Logger is a subsystem logger for a Backend. Messages below the logger's
// level are dropped before they are formatted.
type Logger struct {
	lvl       Level // atomic
	tag       string
	b         *Backend
	writeChan chan<- logEntry
}

// Trace formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelTrace.
func (l *Logger) Trace(args ...interface{}) {
	l.Write(LevelTrace, args...)
}

// Tracef formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.Writef(LevelTrace, format, args...)
}

// Debug formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelDebug.
func (l *Logger) Debug(args ...interface{}) {
	l.Write(LevelDebug, args...)
}

// Debugf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Writef(LevelDebug, format, args...)
}

// Info formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelInfo.
func (l *Logger) Info(args ...interface{}) {
	l.Write(LevelInfo, args...)
}

// Infof formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Writef(LevelInfo, format, args...)
}

// Warn formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelWarn.
func (l *Logger) Warn(args ...interface{}) {
	l.Write(LevelWarn, args...)
}

// Warnf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Writef(LevelWarn, format, args...)
}

// Error formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelError.
func (l *Logger) Error(args ...interface{}) {
	l.Write(LevelError, args...)
}

// Errorf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Writef(LevelError, format, args...)
}

// Critical formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelCritical.
func (l *Logger) Critical(args ...interface{}) {
	l.Write(LevelCritical, args...)
}

// Criticalf formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.Writef(LevelCritical, format, args...)
}

// Write formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with the given logLevel.
func (l *Logger) Write(logLevel Level, args ...interface{}) {
	if l.Level() <= logLevel {
		l.print(logLevel, fmt.Sprint(args...))
	}
}

// Writef formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with the given logLevel.
func (l *Logger) Writef(logLevel Level, format string, args ...interface{}) {
	if l.Level() <= logLevel {
		l.print(logLevel, fmt.Sprintf(format, args...))
	}
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32((*uint32)(&l.lvl)))
}

// SetLevel changes the logging level to the passed level.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32((*uint32)(&l.lvl), uint32(level))
}

// Backend returns the log backend
func (l *Logger) Backend() *Backend {
	return l.b
}

// print drops the message if the backend was never started, so that
// packages can log freely from tests.
func (l *Logger) print(logLevel Level, message string) {
	if !l.b.IsRunning() {
		return
	}

	buf := make([]byte, 0, normalLogSize)
	buf = l.formatHeader(buf, time.Now(), logLevel)
	buf = append(buf, message...)
	if len(message) == 0 || message[len(message)-1] != '\n' {
		buf = append(buf, '\n')
	}
	l.writeChan <- logEntry{log: buf, level: logLevel}
}

// formatHeader writes a header in the format "YYYY-MM-DD hh:mm:ss.sss [LVL] TAG: ".
// If either of the LogFlagShortFile or LogFlagLongFile flags are specified, the
// callsite's file and line number are appended as "file.go:123: ".
func (l *Logger) formatHeader(buf []byte, t time.Time, logLevel Level) []byte {
	buf = append(buf, t.Format("2006-01-02 15:04:05.000")...)
	buf = append(buf, " ["...)
	buf = append(buf, logLevel.String()...)
	buf = append(buf, "] "...)
	buf = append(buf, l.tag...)
	buf = append(buf, ": "...)

	if l.b.flag&(LogFlagShortFile|LogFlagLongFile) != 0 {
		file, line := callsite(l.b.flag)
		buf = append(buf, fmt.Sprintf("%s:%d: ", file, line)...)
	}
	return buf
}

// calldepth is the call depth of the callsite function relative to the
// caller of the subsystem logger.
const calldepth = 5

// callsite returns the file name and line number of the callsite to the
// subsystem logger.
func callsite(flag uint32) (string, int) {
	_, file, line, ok := runtime.Caller(calldepth)
	if !ok {
		return "???", 0
	}
	if flag&LogFlagShortFile != 0 {
		file = file[strings.LastIndex(file, string(os.PathSeparator))+1:]
	}
	return file, line
}

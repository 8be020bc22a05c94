package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// BackendLog is the logging backend used to create all subsystem loggers.
var BackendLog = NewBackend()

var (
	subsystemLoggers      = make(map[string]*Logger)
	subsystemLoggersMutex sync.Mutex
)

// RegisterSubSystem registers a new subsystem logger, should be called in a global variable,
// returns the existing one if the subsystem is already registered
func RegisterSubSystem(subsystem string) *Logger {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()
	logger, exists := subsystemLoggers[subsystem]
	if !exists {
		logger = BackendLog.Logger(subsystem)
		subsystemLoggers[subsystem] = logger
	}
	return logger
}

// Get returns a logger of a specific sub system
func Get(tag string) (logger *Logger, ok bool) {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()
	logger, ok = subsystemLoggers[tag]
	return
}

// InitLog attaches log file and error log file to the backend log and
// starts it.
func InitLog(logFile, errLogFile string) error {
	err := BackendLog.AddLogFile(logFile, LevelTrace)
	if err != nil {
		return errors.Wrapf(err, "error adding log file %s as log rotator for level %s", logFile, LevelTrace)
	}
	err = BackendLog.AddLogFile(errLogFile, LevelWarn)
	if err != nil {
		return errors.Wrapf(err, "error adding log file %s as log rotator for level %s", errLogFile, LevelWarn)
	}
	return InitLogStdout(LevelInfo)
}

// InitLogStdout attaches stdout to the backend log and starts it.
func InitLogStdout(logLevel Level) error {
	err := BackendLog.AddLogWriter(os.Stdout, logLevel)
	if err != nil {
		return errors.Wrapf(err, "error adding stdout to the logger for level %s", logLevel)
	}
	return BackendLog.Run()
}

// SetLogLevel sets the logging level for provided subsystem. Invalid
// subsystems are ignored. Uninitialized subsystems are dynamically created as
// needed.
func SetLogLevel(subsystemID string, logLevel string) error {
	level, ok := LevelFromString(logLevel)
	if !ok {
		return errors.Errorf("the specified debug level [%s] is invalid", logLevel)
	}
	RegisterSubSystem(subsystemID).SetLevel(level)
	return nil
}

// SetLogLevels sets the log level for all subsystem loggers to the passed
// level. It also dynamically creates the subsystem loggers as needed, so it
// can be used to initialize the logging system.
func SetLogLevels(logLevel string) error {
	level, ok := LevelFromString(logLevel)
	if !ok {
		return errors.Errorf("the specified debug level [%s] is invalid", logLevel)
	}

	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
	return nil
}

// SupportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func SupportedSubsystems() []string {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}
	sort.Strings(subsystems)
	return subsystems
}

// ParseAndSetLogLevels attempts to parse the specified debug level and set
// the levels accordingly. An appropriate error is returned if anything is
// invalid. The level is either a single level for all subsystems, or a
// comma-separated list of subsystem=level pairs.
func ParseAndSetLogLevels(debugLevel string) error {
	// When the specified string doesn't have any delimters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		return SetLogLevels(debugLevel)
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			return errors.Errorf("the specified debug level contains an invalid "+
				"subsystem/level pair [%s]", logLevelPair)
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]
		if _, exists := Get(subsysID); !exists {
			return errors.Errorf("the specified subsystem [%s] is invalid -- "+
				"supported subsystems %s", subsysID, fmt.Sprint(SupportedSubsystems()))
		}

		err := SetLogLevel(subsysID, logLevel)
		if err != nil {
			return err
		}
	}
	return nil
}

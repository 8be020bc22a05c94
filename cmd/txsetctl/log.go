package main

import (
	"os"
	"path/filepath"

	"github.com/kaspanet/gentxset/infrastructure/logger"
	"github.com/pkg/errors"
)

var log = logger.RegisterSubSystem("CTL")

// initLog sends log output to stderr, keeping stdout for command results,
// and to rotating log files when a log directory is configured
func initLog(cfg *configFlags) error {
	if cfg.LogDir != "" {
		logFile := filepath.Join(cfg.LogDir, logFilename)
		err := logger.BackendLog.AddLogFile(logFile, logger.LevelTrace)
		if err != nil {
			return errors.Wrapf(err, "error adding log file %s", logFile)
		}
		errLogFile := filepath.Join(cfg.LogDir, errLogFilename)
		err = logger.BackendLog.AddLogFile(errLogFile, logger.LevelWarn)
		if err != nil {
			return errors.Wrapf(err, "error adding log file %s", errLogFile)
		}
	}
	err := logger.BackendLog.AddLogWriter(os.Stderr, logger.LevelTrace)
	if err != nil {
		return errors.Wrap(err, "error adding stderr to the logger")
	}
	err = logger.BackendLog.Run()
	if err != nil {
		return err
	}
	return logger.ParseAndSetLogLevels(cfg.LogLevel)
}

package logger

import "strings"

// Level is the level at which a logger is configured. All messages sent
// to a level which is below the current level are filtered.
type Level uint32

// Level constants.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

// levelTags are the tags log lines carry for each level
var levelTags = [...]string{"TRC", "DBG", "INF", "WRN", "ERR", "CRT", "OFF"}

var levelsByName = map[string]Level{
	"trace":    LevelTrace,
	"debug":    LevelDebug,
	"info":     LevelInfo,
	"warn":     LevelWarn,
	"error":    LevelError,
	"critical": LevelCritical,
	"off":      LevelOff,
}

func init() {
	// Tags are accepted as names too, e.g. "dbg" for "debug"
	for level, tag := range levelTags {
		levelsByName[strings.ToLower(tag)] = Level(level)
	}
}

// LevelFromString returns the level named s, ignoring case. Both full
// names ("debug") and tags ("dbg") are accepted. If s names no level, the
// info level and false are returned.
func LevelFromString(s string) (l Level, ok bool) {
	level, ok := levelsByName[strings.ToLower(s)]
	if !ok {
		return LevelInfo, false
	}
	return level, true
}

// String returns the tag of the level used in log lines, or "OFF" if the
// level will not produce any log output.
func (l Level) String() string {
	if l >= LevelOff {
		return "OFF"
	}
	return levelTags[l]
}

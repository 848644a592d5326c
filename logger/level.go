package logger

import (
	"fmt"
	"strings"
)

type Level int

const (
	DEBUG Level = iota
	NOTICE
	INFO
	ERROR
	WARN
	FATAL
)

var levelNames = []string{
	"DEBUG",
	"NOTICE",
	"INFO",
	"ERROR",
	"WARN",
	"FATAL",
}

// String returns the string representation of a logging level.
func (l Level) String() string {
	return levelNames[l]
}

// ParseLevel returns the level named by s, case-insensitively.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return NOTICE, fmt.Errorf("invalid log level %q", s)
}

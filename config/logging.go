package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BrugadaSyndrome/bslogger"
)

// Level is the configured log verbosity
type Level uint8

const (
	LevelMinimal Level = iota
	LevelNormal
	LevelAll
)

func (l Level) String() string {
	switch l {
	case LevelMinimal:
		return "minimal"
	case LevelNormal:
		return "normal"
	case LevelAll:
		return "all"
	default:
		return fmt.Sprintf("level(%d)", uint8(l))
	}
}

// ParseLevel accepts minimal, normal or all; empty means normal
// debug is accepted as an alias for all
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "minimal", "quiet":
		return LevelMinimal, nil
	case "normal", "":
		return LevelNormal, nil
	case "all", "debug":
		return LevelAll, nil
	}
	return LevelNormal, fmt.Errorf("unknown log level %q", s)
}

// NewLogger creates a named component logger writing to file, or stdout when file is nil
func NewLogger(name string, level Level, file *os.File) bslogger.Logger {
	switch level {
	case LevelMinimal:
		return bslogger.NewLogger(name, bslogger.Minimal, file)
	case LevelAll:
		return bslogger.NewLogger(name, bslogger.All, file)
	default:
		return bslogger.NewLogger(name, bslogger.Normal, file)
	}
}

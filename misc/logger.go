package misc

import (
	"os"

	"github.com/BrugadaSyndrome/bslogger"
)

// Verbose switches every logger created afterwards to log debug messages as well
var Verbose bool

// NewLogger creates a named logger that writes to logFile when it is not nil
func NewLogger(name string, logFile *os.File) bslogger.Logger {
	level := bslogger.Normal
	if Verbose {
		level = bslogger.All
	}
	return bslogger.NewLogger(name, level, logFile)
}

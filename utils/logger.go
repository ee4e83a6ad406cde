package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

func InitLogger() {
	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	InfoLogger.SetOutput(os.Stdout)
	InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	ErrorLogger.SetOutput(os.Stderr)
	ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	InfoLogger.SetLevel(logrus.InfoLevel)
	// Warn keeps recoverable data problems (malformed collections, dropped
	// broadcasts) visible next to real errors.
	ErrorLogger.SetLevel(logrus.WarnLevel)
}

// SetVerbose lowers the info logger to debug.
func SetVerbose(verbose bool) {
	if InfoLogger == nil {
		InitLogger()
	}
	if verbose {
		InfoLogger.SetLevel(logrus.DebugLevel)
		return
	}
	InfoLogger.SetLevel(logrus.InfoLevel)
}

// SetLevel applies a level name such as "debug" or "warn" to the info logger.
// Unknown names are ignored.
func SetLevel(name string) {
	if InfoLogger == nil {
		InitLogger()
	}
	lvl, err := logrus.ParseLevel(strings.TrimSpace(name))
	if err != nil {
		return
	}
	InfoLogger.SetLevel(lvl)
}

func init() {
	// Packages log from goroutines started before main gets a chance to call
	// InitLogger, so keep usable defaults around.
	InitLogger()
}

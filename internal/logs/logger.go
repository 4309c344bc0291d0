// Package logs holds the application-wide structured logger.  Handlers and
// middleware log through Logger so output format and level are controlled
// in one place.
package logs

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the global application logger, configured by Init.
var Logger = logrus.New()

// Init configures the global logger from the environment name and an
// optional level string (trace|debug|info|warn|error).  Production
// environments log JSON for ingestion; everything else logs text.
func Init(env, level string) {
	switch level {
	case "trace":
		Logger.SetLevel(logrus.TraceLevel)
	case "debug":
		Logger.SetLevel(logrus.DebugLevel)
	case "warn", "warning":
		Logger.SetLevel(logrus.WarnLevel)
	case "error":
		Logger.SetLevel(logrus.ErrorLevel)
	default:
		Logger.SetLevel(logrus.InfoLevel)
	}
	if env == "prod" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	}
	Logger.SetOutput(os.Stdout)
}

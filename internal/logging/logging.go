// Package logging configures the process-wide logger.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Setup configures logrus output and verbosity. Logs go to stderr so
// they never mix with command output; debug mode adds timestamps and
// caller-level detail useful when diagnosing API calls.
func Setup(w io.Writer, debug bool) {
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

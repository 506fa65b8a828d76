package openpgp

import "github.com/sirupsen/logrus"

// log is the package-level diagnostic logger. It is deliberately quiet by
// default (logrus's standard level, Info) since this package sits on a hot
// parse path, and this package's own messages are all Debug level;
// callers that want them can pass a logger set to Debug level to
// SetLogger.
var log logrus.FieldLogger = logrus.New()

// SetLogger replaces the package's diagnostic logger. Passing nil restores
// a fresh, default-configured logrus.Logger.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		log = logrus.New()
		return
	}
	log = l
}

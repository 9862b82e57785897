package log

import (
	"os"

	"github.com/plateful/plateful/utils/dotenv"
	"github.com/plateful/plateful/utils/flag"
	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger()
}

func InitLogger() {
	logger = logrus.New()

	// Production log collection expects one JSON object per line; keep the
	// plain text formatter in development for readability.
	if dotenv.IsProdEnv() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.SetOutput(os.Stderr)

	Log = logger.WithFields(
		logrus.Fields{"service": *flag.ServiceName, "is_development": !dotenv.IsProdEnv()},
	)
}

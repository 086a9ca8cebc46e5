package log

import (
	"os"
	"time"

	"github.com/Luismorlan/newsdash/utils/dotenv"
	ddhook "github.com/bin3377/logrus-datadog-hook"
	"github.com/sirupsen/logrus"
)

const (
	datadogUSHost    = "http-intake.logs.datadoghq.com"
	syncFrequencySec = 30
	syncRetry        = 3

	defaultServiceName = "newsdash"
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
	InitLogger(defaultServiceName)
}

// InitLogger rebuilds the global logger. The entry point calls it again once
// the service name is known.
func InitLogger(serviceName string) {
	logger = logrus.New()

	isProd := os.Getenv(dotenv.EnvKey) == dotenv.ProdEnv
	if apiKey := os.Getenv("DD_API_KEY"); isProd && apiKey != "" {
		hook := ddhook.NewHook(
			datadogUSHost,
			apiKey,
			syncFrequencySec*time.Second,
			syncRetry,
			logrus.InfoLevel,
			&logrus.JSONFormatter{},
			ddhook.Options{},
		)
		logger.Hooks.Add(hook)
	}

	// Also send log to stderr, without json formatter for better readability
	logger.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logger.SetLevel(level)
	}

	Log = logger.WithFields(
		logrus.Fields{"service": serviceName, "is_development": !isProd},
	)
}

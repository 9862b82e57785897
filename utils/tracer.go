package utils

import (
	"github.com/plateful/plateful/utils/dotenv"
	Flag "github.com/plateful/plateful/utils/flag"
	Logger "github.com/plateful/plateful/utils/log"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// InitTracer starts the Datadog tracer. Development runs skip it so that
// local servers and tests don't buffer spans for an agent that isn't there.
func InitTracer() {
	if !dotenv.IsProdEnv() {
		return
	}

	tracer.Start(
		tracer.WithService(*Flag.ServiceName),
		tracer.WithEnv("production"),
	)

	Logger.Log.Info("tracer initialized")
}

// Stop tracer, OK to be closed multiple times
func CloseTracer() {
	tracer.Stop()
}

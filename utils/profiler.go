package utils

import (
	"github.com/plateful/plateful/utils/dotenv"
	Flag "github.com/plateful/plateful/utils/flag"
	Logger "github.com/plateful/plateful/utils/log"
	"gopkg.in/DataDog/dd-trace-go.v1/profiler"
)

// InitProfiler starts the Datadog profiler in production.
func InitProfiler() {
	if !dotenv.IsProdEnv() {
		return
	}

	if err := profiler.Start(
		profiler.WithService(*Flag.ServiceName),
		profiler.WithEnv("production"),
		profiler.WithProfileTypes(
			profiler.CPUProfile,
			profiler.HeapProfile,
			// The profiles below are disabled by
			// default to keep overhead low, but
			// can be enabled as needed.
			// profiler.BlockProfile,
			// profiler.MutexProfile,
			// profiler.GoroutineProfile,
		),
	); err != nil {
		Logger.Log.Fatal(err)
	}
}

// Stop profiler, OK to be closed multiple times
func CloseProfiler() {
	profiler.Stop()
}

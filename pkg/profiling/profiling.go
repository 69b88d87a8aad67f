// Package profiling writes CPU and heap profiles for --cpuprofile and --memprofile.
package profiling

import (
	"context"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"
)

var osCreate = os.Create
var pprofStartCPUProfile = pprof.StartCPUProfile
var pprofStopCPUProfile = pprof.StopCPUProfile
var pprofWriteHeapProfile = pprof.WriteHeapProfile
var memProfilingInterval = 30 * time.Second

var logErr = func(format string, v ...any) {
	log.Printf(format, v...)
}

// DoCPUProfiling starts a CPU profile written to fileName and returns the func
// that stops it. Failures are logged and leave profiling off.
func DoCPUProfiling(fileName string) (stop func()) {
	f, err := osCreate(fileName)
	if err != nil {
		logErr("could not create CPU profile %s: %v", fileName, err)
		return func() {}
	}
	if err = pprofStartCPUProfile(f); err != nil {
		logErr("could not start CPU profile: %v", err)
		_ = f.Close()
		return func() {}
	}
	return func() {
		pprofStopCPUProfile()
		if err := f.Close(); err != nil {
			logErr("could not close CPU profile %s: %v", fileName, err)
		}
	}
}

// DoMemProfiling rewrites a heap profile to fileName every
// memProfilingInterval until ctx is done. The returned func writes one more
// snapshot on demand, typically on exit.
func DoMemProfiling(ctx context.Context, fileName string) (write func()) {
	create := osCreate
	writeHeap := pprofWriteHeapProfile
	write = func() {
		f, err := create(fileName)
		if err != nil {
			logErr("could not create memory profile %s: %v", fileName, err)
			return
		}
		defer func() {
			_ = f.Close()
		}()
		runtime.GC()
		if err = writeHeap(f); err != nil {
			logErr("could not write memory profile: %v", err)
		}
	}

	ticker := time.NewTicker(memProfilingInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				write()
			}
		}
	}()
	return write
}

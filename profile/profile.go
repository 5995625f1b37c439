// Package profile provides optional runtime profiling for the forma
// command, backed by [github.com/pkg/profile]. Profiling is compiled in
// only when building with the pprof tag:
//
//	go build -tags pprof .
//
// Without the tag every operation is a no-op with zero overhead, so
// callers never need to guard their use of this package.
package profile

// Tag is the build tag that compiles in profiling support.
const Tag = "pprof"

// Profiler selects a profiling mode and output directory. The zero
// value disables profiling.
type Profiler struct {
	Mode  string // one of Modes(), or "" to disable
	Path  string // output directory; pkg/profile default when empty
	Quiet bool   // suppress the start/stop log lines
}

// Start begins profiling and returns a control whose Stop flushes the
// profile to disk. Start never fails: with an empty or unknown mode, or
// when built without the pprof tag, the returned control does nothing.
func (p Profiler) Start() interface{ Stop() } {
	if p.Mode == "" {
		return noop{}
	}
	return start(p)
}

type noop struct{}

func (noop) Stop() {}

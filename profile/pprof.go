//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

//nolint:gochecknoglobals
var modes = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

//nolint:gochecknoglobals
var modeNames = sync.OnceValue(func() []string {
	return slices.Sorted(maps.Keys(modes))
})

// Modes returns the supported profiling modes in sorted order.
func Modes() []string { return modeNames() }

func start(p Profiler) interface{ Stop() } {
	fn, ok := modes[p.Mode]
	if !ok {
		return noop{}
	}
	opts := []func(*profile.Profile){fn}
	if p.Path != "" {
		opts = append(opts, profile.ProfilePath(p.Path))
	}
	if p.Quiet {
		opts = append(opts, profile.Quiet)
	}
	return profile.Start(opts...)
}

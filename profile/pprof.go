//go:build pprof

package profile

import (
	"maps"
	"slices"

	"github.com/pkg/profile"
)

// modes maps each --pprof-mode name to the pkg/profile option selecting it.
//
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

// Modes returns the sorted names of the supported profiling modes.
func Modes() []string {
	return slices.Sorted(maps.Keys(modes))
}

func start(mode, path string, quiet bool) interface{ Stop() } {
	if _, ok := modes[mode]; !ok {
		return ignore{}
	}

	return profile.Start(options(withMode(mode), withPath(path), withQuiet(quiet))...)
}

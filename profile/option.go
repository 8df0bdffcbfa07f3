//go:build pprof

package profile

import "github.com/pkg/profile"

// setting appends pkg/profile options to a profiler's option list.
type setting func([]func(*profile.Profile)) []func(*profile.Profile)

// options returns the pkg/profile options produced by settings, in order.
func options(settings ...setting) []func(*profile.Profile) {
	var opts []func(*profile.Profile)

	for _, s := range settings {
		opts = s(opts)
	}

	return opts
}

// withMode selects the profile kind. Unknown modes select nothing.
func withMode(name string) setting {
	return func(opts []func(*profile.Profile)) []func(*profile.Profile) {
		if fn, ok := modes[name]; ok {
			opts = append(opts, fn)
		}

		return opts
	}
}

// withPath sets the output directory; empty keeps the pkg/profile default.
func withPath(dir string) setting {
	return func(opts []func(*profile.Profile)) []func(*profile.Profile) {
		if dir != "" {
			opts = append(opts, profile.ProfilePath(dir))
		}

		return opts
	}
}

// withQuiet suppresses pkg/profile's own log output.
func withQuiet(quiet bool) setting {
	return func(opts []func(*profile.Profile)) []func(*profile.Profile) {
		if quiet {
			opts = append(opts, profile.Quiet)
		}

		return opts
	}
}

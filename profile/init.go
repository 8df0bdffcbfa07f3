package profile

// Config reports the profiling mode, the directory profiles are written to
// and whether pkg/profile's own messages are suppressed. Options derive a new
// Config from an existing one.
type Config func() (mode, path string, quiet bool)

// Start begins profiling and returns a handle whose Stop flushes the profile.
//
// Start returns a no-op handle if the mode is empty or unknown, or if tpp was
// built without the pprof tag, so callers may always defer Stop.
func (c Config) Start() interface{ Stop() } {
	mode, path, quiet := c()

	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

// WithMode returns c with its mode replaced.
func WithMode(mode string) func(Config) Config {
	return func(c Config) Config {
		_, path, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithPath returns c with its output directory replaced.
func WithPath(path string) func(Config) Config {
	return func(c Config) Config {
		mode, _, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithQuiet returns c with its quiet flag replaced.
func WithQuiet(quiet bool) func(Config) Config {
	return func(c Config) Config {
		mode, path, _ := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// ignore is the handle returned when profiling is disabled.
type ignore struct{}

func (ignore) Stop() {}

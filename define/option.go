package define

// DefaultValue is the value given to a bare KEY when no other default is
// configured.
const DefaultValue = 1

// config holds the assignment policy.
type config struct {
	def      any
	observer Observer
	lengthen bool
	shorten  bool
}

// Option applies a configuration option to config.
type Option func(config) config

// makeConfig returns the default policy overridden by opts.
func makeConfig(opts ...Option) config {
	c := config{
		def:      DefaultValue,
		observer: Discard,
		lengthen: true,
		shorten:  false,
	}

	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

// WithDefault sets the value stored for a bare KEY. The value is stored
// as-is, without conversion to a string.
func WithDefault(v any) Option {
	return func(c config) config {
		c.def = v

		return c
	}
}

// WithLengthen controls lengthen conflicts, where a define descends through
// a key that already holds a leaf. If enable is true (the default) the leaf
// is replaced with a map; otherwise the define is ignored.
func WithLengthen(enable bool) Option {
	return func(c config) config {
		c.lengthen = enable

		return c
	}
}

// WithShorten controls shorten conflicts, where a define assigns a scalar to
// a key that already holds a map. If enable is true the map is replaced by
// the scalar; otherwise (the default) the define is ignored.
func WithShorten(enable bool) Option {
	return func(c config) config {
		c.shorten = enable

		return c
	}
}

// WithObserver sets the receiver of diagnostic events.
// A nil observer discards events.
func WithObserver(o Observer) Option {
	return func(c config) config {
		if o == nil {
			o = Discard
		}

		c.observer = o

		return c
	}
}

package define

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/tpp/pkg"
)

// Build folds defines, in order, into a new tree and returns its root.
//
// Each define is split at its first '=' into key and value; any further '='
// belongs to the value. A define without '=' is a bare key and receives the
// default value (see [WithDefault]) unconverted. Every other value is a
// string.
//
// Build stops at the first key that fails to lex, returning an error
// wrapping [ErrUnbalancedBracket], or that has no components, returning an
// error wrapping [ErrEmptyKey]. No tree is returned with an error.
func Build(defines []string, opts ...Option) (*Map, error) {
	c := makeConfig(opts...)
	root := NewMap()

	for i, def := range defines {
		key, val, ok := strings.Cut(def, "=")

		value := NewScalar(c.def)
		if ok {
			value = NewScalar(val)
		}

		path, err := Lex(key)
		if err != nil {
			return nil, pkg.WrapError(err).
				With(slog.Int("index", i), slog.String("define", def))
		}

		if len(path) == 0 {
			return nil, ErrEmptyKey.
				Wrap(errors.New(strconv.Quote(def))).
				With(slog.Int("index", i), slog.String("define", def))
		}

		c.assign(root, path, value)
	}

	return root, nil
}

// ParseDefault converts the textual form of a default value, as given on a
// command line or in a configuration file, to a typed scalar: an int if s is
// an integer, a bool if s is "true" or "false", otherwise s itself.
func ParseDefault(s string) any {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}

	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}

	return s
}

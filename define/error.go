package define

import "github.com/ardnew/tpp/pkg"

// Predefined errors (sentinel values).
var (
	// ErrUnbalancedBracket is returned when a key has a '[' without a
	// matching ']' or vice versa. It aborts the whole build.
	ErrUnbalancedBracket = pkg.NewError("unbalanced brackets in key")

	// ErrEmptyKey is returned when a define has no key components, such as
	// "=value", "." or "[]".
	ErrEmptyKey = pkg.NewError("empty key")
)

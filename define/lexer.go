package define

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// KeyPath is the ordered sequence of components of a define key.
// The leftmost component is the shallowest.
type KeyPath []string

// String joins the components with dots.
// Bracketed components are not re-bracketed, so the result is a normalized
// form of the key rather than its original spelling.
func (p KeyPath) String() string {
	return strings.Join(p, ".")
}

// Head returns all components but the last.
func (p KeyPath) Head() KeyPath {
	if len(p) == 0 {
		return nil
	}

	return p[:len(p)-1]
}

// Tail returns the last component, or "" for an empty path.
func (p KeyPath) Tail() string {
	if len(p) == 0 {
		return ""
	}

	return p[len(p)-1]
}

// Lex splits raw into its key path components.
//
// Dots outside of brackets separate components. An outermost bracket group
// forms a single component containing everything between its brackets
// verbatim. Empty components are dropped, so "a..b" and "a[b]" lex the same
// as "a.b".
//
// Lex returns an error wrapping [ErrUnbalancedBracket] if a bracket is left
// open or a closing bracket has no opening partner. Unlike a lenient scanner
// that only checks the final depth, a stray ']' such as in "a]b[" is
// rejected rather than folded into a component.
func Lex(raw string) (KeyPath, error) {
	var (
		path  KeyPath
		buf   strings.Builder
		depth int
	)

	emit := func() {
		if buf.Len() > 0 {
			path = append(path, buf.String())
			buf.Reset()
		}
	}

	for i, ch := range raw {
		switch ch {
		case '.':
			if depth > 0 {
				buf.WriteRune(ch)
			} else {
				emit()
			}

		case '[':
			if depth > 0 {
				buf.WriteRune(ch)
			} else {
				emit()
			}

			depth++

		case ']':
			depth--

			switch {
			case depth > 0:
				buf.WriteRune(ch)
			case depth == 0:
				emit()
			default:
				return nil, ErrUnbalancedBracket.
					Wrap(errors.New(strconv.Quote(raw))).
					With(slog.Int("offset", i))
			}

		default:
			buf.WriteRune(ch)
		}
	}

	if depth != 0 {
		return nil, ErrUnbalancedBracket.
			Wrap(errors.New(strconv.Quote(raw))).
			With(slog.Int("open", depth))
	}

	emit()

	return path, nil
}

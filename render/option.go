package render

import (
	"os"
	"strings"
	"text/template"

	"github.com/ardnew/tpp/log"
)

// DefaultPattern selects every file below a search directory.
const DefaultPattern = "**"

// Option configures an [Engine].
type Option func(*Engine)

// WithSearchPath appends directories that are searched for templates
// referenced by name. Each element may itself be a list of directories
// joined by the OS path list separator. Empty entries are ignored.
//
// Directories are searched in order; the first directory providing a
// template name wins.
func WithSearchPath(paths ...string) Option {
	return func(e *Engine) {
		e.search = append(e.search, splitSearchPath(paths...)...)
	}
}

// WithPattern sets the glob pattern, relative to each search directory,
// selecting which files are loaded as named templates. Patterns use
// doublestar syntax, so "**/*.tmpl" matches at any depth.
func WithPattern(pattern string) Option {
	return func(e *Engine) {
		if pattern != "" {
			e.pattern = pattern
		}
	}
}

// WithStrict makes references to undefined variables fail rendering.
// Errors name the closest defined keys.
func WithStrict(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithDelims sets the action delimiters. Empty values keep the defaults
// "{{" and "}}".
func WithDelims(left, right string) Option {
	return func(e *Engine) {
		e.left, e.right = left, right
	}
}

// WithFuncs adds template functions. Entries override built-in functions
// of the same name.
func WithFuncs(funcs template.FuncMap) Option {
	return func(e *Engine) {
		for name, fn := range funcs {
			e.funcs[name] = fn
		}
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithEnviron sets the process environment visible to the env function as
// KEY=VALUE entries. If not provided, os.Environ is used.
func WithEnviron(environ []string) Option {
	return func(e *Engine) {
		e.environ = environ
	}
}

// splitSearchPath flattens list-separated path elements in order,
// dropping empty entries.
func splitSearchPath(paths ...string) []string {
	var dirs []string

	for _, p := range paths {
		for dir := range strings.SplitSeq(p, string(os.PathListSeparator)) {
			if dir != "" {
				dirs = append(dirs, dir)
			}
		}
	}

	return dirs
}

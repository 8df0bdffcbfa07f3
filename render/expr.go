package render

import (
	"log/slog"
	"maps"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/zeebo/xxh3"
)

// program is a compiled expression together with its source, so a hash
// collision in the cache is detected rather than run.
type program struct {
	*vm.Program
	source string
}

// exprFunc returns the template function evaluating an expr-lang expression.
// The expression sees every top-level define as a variable, along with the
// built-in functions that do not shadow a define.
func (e *Engine) exprFunc(
	data map[string]any,
	funcs map[string]any,
) func(string) (any, error) {
	env := maps.Clone(data)

	for name, fn := range funcs {
		if _, ok := env[name]; !ok {
			env[name] = fn
		}
	}

	return func(source string) (any, error) {
		prog, err := e.compile(source)
		if err != nil {
			return nil, err
		}

		out, err := expr.Run(prog.Program, env)
		if err != nil {
			return nil, ErrExpr.Wrap(err).With(slog.String("source", source))
		}

		return out, nil
	}
}

// compile returns the cached program for source, compiling it on first use.
// Programs are compiled without a typed environment so one program serves
// every define tree.
func (e *Engine) compile(source string) (program, error) {
	key := xxh3.HashString(source)

	if v, ok := e.programs.Load(key); ok {
		if p := v.(program); p.source == source {
			return p, nil
		}
	}

	compiled, err := expr.Compile(source)
	if err != nil {
		return program{}, ErrExpr.Wrap(err).With(slog.String("source", source))
	}

	p := program{Program: compiled, source: source}
	e.programs.Store(key, p)

	return p, nil
}

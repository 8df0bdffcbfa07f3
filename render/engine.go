package render

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"sync"
	"text/template"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ardnew/tpp/define"
	"github.com/ardnew/tpp/log"
	"github.com/ardnew/tpp/pkg"
)

// Engine renders templates against a define tree.
//
// An Engine is safe for concurrent use once constructed. Each call to
// [Engine.Render] parses its own template set, so templates from the search
// path are always read fresh.
type Engine struct {
	funcs    template.FuncMap
	logger   log.Logger
	search   []string
	environ  []string
	pattern  string
	left     string
	right    string
	programs sync.Map // expression cache, see expr.go
	strict   bool
}

// New returns an Engine configured by opts.
//
// Search directories that do not exist are skipped with a warning; a search
// entry that exists but is not a directory is an error.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		funcs:   template.FuncMap{},
		pattern: DefaultPattern,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	if !doublestar.ValidatePattern(e.pattern) {
		return nil, ErrPattern.With(slog.String("pattern", e.pattern))
	}

	search := e.search[:0]

	for _, dir := range e.search {
		info, err := os.Stat(dir)

		switch {
		case os.IsNotExist(err):
			e.logger.Warn("search directory not found", slog.String("dir", dir))

			continue

		case err != nil:
			return nil, ErrSearchPath.Wrap(err).With(slog.String("dir", dir))

		case !info.IsDir():
			return nil, ErrSearchPath.With(
				slog.String("dir", dir),
				slog.String("reason", "not a directory"),
			)
		}

		search = append(search, dir)
	}

	e.search = search

	return e, nil
}

// SearchPath returns the directories searched for named templates, in
// order.
func (e *Engine) SearchPath() []string {
	return append([]string(nil), e.search...)
}

// Render parses source as the template called name, associates every
// template found on the search path, and executes it with defines as data.
//
// Each top-level key of defines is a field of the data, so a define
// "sys.ipv4[lo]=127.0.0.1" is referenced as {{ .sys.ipv4.lo }}. Lists
// are slices and may be ranged over. A nil tree renders with empty data.
func (e *Engine) Render(
	ctx context.Context,
	w io.Writer,
	name, source string,
	defines *define.Map,
) error {
	if defines == nil {
		defines = define.NewMap()
	}

	data := defines.ToMap()

	tmpl := template.New(name).
		Delims(e.left, e.right).
		Funcs(e.funcMap(data))

	if e.strict {
		tmpl.Option("missingkey=error")
	}

	if _, err := tmpl.Parse(source); err != nil {
		return ErrParse.Wrap(err).With(slog.String("template", name))
	}

	if err := e.load(ctx, tmpl); err != nil {
		return err
	}

	e.logger.TraceContext(
		ctx,
		"executing template",
		slog.String("template", name),
		slog.Int("associated", len(tmpl.Templates())-1),
		slog.Int("keys", defines.Len()),
	)

	if err := tmpl.Execute(w, data); err != nil {
		return e.executeError(err, name, defines)
	}

	return nil
}

// funcMap returns the built-in functions overridden by user functions.
func (e *Engine) funcMap(data map[string]any) template.FuncMap {
	fm := builtins(e.environ)
	fm["expr"] = e.exprFunc(data, fm)
	maps.Copy(fm, e.funcs)

	return fm
}

// load parses every file matching the pattern below each search directory
// into root's template set. A name already defined, by the root template or
// an earlier directory, is not replaced.
func (e *Engine) load(ctx context.Context, root *template.Template) error {
	for _, dir := range e.search {
		fsys := os.DirFS(dir)

		names, err := doublestar.Glob(fsys, e.pattern, doublestar.WithFilesOnly())
		if err != nil {
			return ErrPattern.Wrap(err).With(
				slog.String("pattern", e.pattern),
				slog.String("dir", dir),
			)
		}

		for _, name := range names {
			if err := ctx.Err(); err != nil {
				return err
			}

			if root.Lookup(name) != nil {
				e.logger.TraceContext(
					ctx,
					"template shadowed",
					slog.String("template", name),
					slog.String("dir", dir),
				)

				continue
			}

			if err := parseFile(root, fsys, name); err != nil {
				return err.With(slog.String("dir", dir))
			}

			e.logger.TraceContext(
				ctx,
				"template loaded",
				slog.String("template", name),
				slog.String("dir", dir),
			)
		}
	}

	return nil
}

func parseFile(root *template.Template, fsys fs.FS, name string) *pkg.Error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return ErrLoadTemplate.Wrap(err).With(slog.String("template", name))
	}

	if _, err := root.New(name).Parse(string(b)); err != nil {
		return ErrParse.Wrap(err).With(slog.String("template", name))
	}

	return nil
}

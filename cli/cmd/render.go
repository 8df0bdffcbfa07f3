package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/tpp/log"
	"github.com/ardnew/tpp/render"
)

// Render expands an input template using the define tree.
type Render struct {
	Defines `embed:""`

	Search  []string `help:"Search for referenced templates in DIR. DIR may be a list separated by '${pathListSep}'." placeholder:"DIR"  sep:"none" short:"I"`
	Input   []string `help:"Read input template from FILE ('-' for stdin). Multiple inputs are concatenated; default is stdin." placeholder:"FILE" sep:"none" short:"i"`
	Output  string   `help:"Write output to FILE. If omitted, output is written to stdout."                             placeholder:"FILE"            short:"o"`
	Pattern string   `default:"${renderPattern}" help:"Glob selecting which files below each search DIR are loaded as templates."`

	LeftDelim  string `default:"{{" help:"Left action delimiter."`
	RightDelim string `default:"}}" help:"Right action delimiter."`

	Strict bool `help:"Fail on references to undefined variables."`
	Check  bool `help:"Do not write --output; report a diff and fail if it is out of date."`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if r.Check && (r.Output == "" || r.Output == stdinSource) {
		return ErrCheckOutput
	}

	std := streamsFrom(ctx)

	defines, err := r.build(ctx)
	if err != nil {
		return err
	}

	src, err := readSources(ctx, std.in, r.Input)
	if err != nil {
		return err
	}

	engine, err := render.New(
		render.WithSearchPath(r.Search...),
		render.WithPattern(r.Pattern),
		render.WithStrict(r.Strict),
		render.WithDelims(r.LeftDelim, r.RightDelim),
		render.WithLogger(log.Default()),
	)
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	err = engine.Render(ctx, &buf, src.name, src.text, defines)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "rendered template",
		slog.String("template", src.name),
		slog.Int("bytes", buf.Len()),
	)

	switch {
	case r.Check:
		return checkFile(r.Output, buf.Bytes(), std.err)

	case r.Output == "" || r.Output == stdinSource:
		if _, err := std.out.Write(buf.Bytes()); err != nil {
			return ErrWriteOutput.Wrap(err).With(slog.String("file", "stdout"))
		}

		return nil

	default:
		return writeFile(r.Output, buf.Bytes(), defaultFileMode)
	}
}

// defaultFileMode is the permission mode of newly created output files.
const defaultFileMode os.FileMode = 0o644

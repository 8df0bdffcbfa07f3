package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/klauspost/readahead"
	"github.com/mattn/go-isatty"

	"github.com/ardnew/tpp/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	streamsKey struct{}

	// streams are the standard streams a command reads and writes.
	streams struct {
		in  io.Reader
		out io.Writer
		err io.Writer
	}
)

// WithStreams returns a new context.Context whose commands read templates
// from in, write results to out and write diagnostics to err. Nil streams
// default to the process's standard streams.
func WithStreams(
	ctx context.Context,
	in io.Reader,
	out, err io.Writer,
) context.Context {
	return context.WithValue(ctx, streamsKey{}, streams{in: in, out: out, err: err})
}

// streamsFrom retrieves the streams stored in ctx by WithStreams, filling
// unset streams with os.Stdin, os.Stdout and os.Stderr.
func streamsFrom(ctx context.Context) streams {
	s, _ := ctx.Value(streamsKey{}).(streams)

	if s.in == nil {
		s.in = os.Stdin
	}

	if s.out == nil {
		s.out = os.Stdout
	}

	if s.err == nil {
		s.err = os.Stderr
	}

	return s
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// stdinName is the template name given to input read from stdin.
const stdinName = "stdin"

// source is the concatenated content of one or more input files.
type source struct {
	name string
	text string
}

// readSources reads each path in order and concatenates the contents.
//
// A path of "-" reads the stdin stream, at most once. Paths naming a file
// already read, through a symlink or another relative spelling, are skipped.
// With no paths, stdin is read. The source is named by its first input.
func readSources(ctx context.Context, in io.Reader, paths []string) (source, error) {
	if len(paths) == 0 {
		paths = []string{stdinSource}
	}

	var (
		text  []byte
		seen  []os.FileInfo
		stdin bool
		src   source
	)

	for _, path := range paths {
		var (
			data []byte
			err  error
			name = path
		)

		if path == stdinSource {
			if stdin {
				continue
			}

			stdin, name = true, stdinName
			noteTerminal(ctx, in)
			data, err = readAll(in)
		} else {
			var ok bool

			if seen, ok = markUnique(path, seen); !ok {
				log.DebugContext(ctx, "skipping duplicate input", slog.String("file", path))

				continue
			}

			data, err = readFile(path)
		}

		if err != nil {
			return source{}, ErrReadInput.Wrap(err).With(slog.String("file", path))
		}

		if src.name == "" {
			src.name = name
		}

		text = append(text, data...)
	}

	src.text = string(text)

	return src, nil
}

// markUnique appends the file info of path to seen and reports true, unless
// path names a file already in seen. Paths that cannot be stat'ed are
// reported unique so the subsequent read surfaces the error.
func markUnique(path string, seen []os.FileInfo) ([]os.FileInfo, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return seen, true
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return seen, true
	}

	for _, s := range seen {
		if os.SameFile(s, info) {
			return seen, false
		}
	}

	return append(seen, info), true
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	return readAll(f)
}

// readAll reads r to EOF through an asynchronous read-ahead buffer.
func readAll(r io.Reader) ([]byte, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	return io.ReadAll(ra)
}

// noteTerminal tells an interactive user that the template is expected on
// stdin.
func noteTerminal(ctx context.Context, in io.Reader) {
	f, ok := in.(*os.File)
	if !ok {
		return
	}

	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		log.InfoContext(ctx, "reading template from terminal (end with EOF)")
	}
}

package cmd

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// writeFile writes data to a temporary file beside path and renames it into
// place, so readers never observe a partially written file. An existing
// file keeps its permission mode.
func writeFile(path string, data []byte, mode os.FileMode) (err error) {
	fail := func(err error) error {
		return ErrWriteOutput.Wrap(err).With(slog.String("file", path))
	}

	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fail(err)
	}

	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fail(err)
	}

	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()

		return fail(err)
	}

	if err := tmp.Close(); err != nil {
		return fail(err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fail(err)
	}

	return nil
}

// checkFile compares data with the content of path. If they differ, a line
// diff from the file to data is written to w and [ErrStale] is returned.
// A missing file is compared as empty.
func checkFile(path string, data []byte, w io.Writer) error {
	prior, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ErrReadInput.Wrap(err).With(slog.String("file", path))
	}

	if bytes.Equal(prior, data) {
		return nil
	}

	writeDiff(w, path, string(prior), string(data))

	return ErrStale.With(slog.String("file", path))
}

// writeDiff writes a line-oriented diff from prior to next.
func writeDiff(w io.Writer, path, prior, next string) {
	dmp := diffmatchpatch.New()

	a, b, lines := dmp.DiffLinesToChars(prior, next)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	r := lipgloss.NewRenderer(w)
	style := map[diffmatchpatch.Operation]struct {
		lipgloss.Style

		mark string
	}{
		diffmatchpatch.DiffDelete: {r.NewStyle().Foreground(lipgloss.Color("1")), "-"},
		diffmatchpatch.DiffInsert: {r.NewStyle().Foreground(lipgloss.Color("2")), "+"},
		diffmatchpatch.DiffEqual:  {r.NewStyle(), " "},
	}

	var sb strings.Builder

	sb.WriteString(r.NewStyle().Bold(true).Render("--- "+path) + "\n")
	sb.WriteString(r.NewStyle().Bold(true).Render("+++ "+path+" (rendered)") + "\n")

	for _, d := range diffs {
		s := style[d.Type]

		for line := range strings.Lines(d.Text) {
			sb.WriteString(s.Render(s.mark+strings.TrimSuffix(line, "\n")) + "\n")
		}
	}

	_, _ = io.WriteString(w, sb.String())
}

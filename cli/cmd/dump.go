package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tpp/define"
)

// Dump prints the define tree built from -D flags without rendering.
type Dump struct {
	JSON DumpJSON `cmd:""                    help:"Print defines as JSON."`
	YAML DumpYAML `cmd:"" default:"withargs" help:"Print defines as YAML (default)."`
	Tree DumpTree `cmd:""                    help:"Print defines as a tree."`
}

// DumpJSON prints the define tree as JSON.
type DumpJSON struct {
	Defines `embed:""`

	Indent int `default:"2" help:"Indent width for JSON output (0 for compact)"`
}

// Run executes the dump json command.
func (d *DumpJSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	defines, err := d.build(ctx)
	if err != nil {
		return err
	}

	return writeJSON(streamsFrom(ctx).out, defines, d.Indent)
}

func writeJSON(w io.Writer, defines *define.Map, indent int) error {
	b, err := json.Marshal(defines)
	if err != nil {
		return ErrJSONMarshal.Wrap(err)
	}

	if indent > 0 {
		var buf bytes.Buffer

		if err := json.Indent(&buf, b, "", fmt.Sprintf("%*s", indent, "")); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		b = buf.Bytes()
	}

	if _, err := fmt.Fprintf(w, "%s\n", b); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", "json"))
	}

	return nil
}

// DumpYAML prints the define tree as YAML.
type DumpYAML struct {
	Defines `embed:""`

	Indent int `default:"2" help:"Indent width for YAML output"`
}

// Run executes the dump yaml command.
func (d *DumpYAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	defines, err := d.build(ctx)
	if err != nil {
		return err
	}

	return writeYAML(streamsFrom(ctx).out, defines, d.Indent)
}

func writeYAML(w io.Writer, v any, indent int) error {
	b, err := yaml.MarshalWithOptions(v, yaml.Indent(max(indent, 1)))
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	if _, err := w.Write(b); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", "yaml"))
	}

	return nil
}

// DumpTree prints the define tree as an indented tree.
type DumpTree struct {
	Defines `embed:""`
}

// Run executes the dump tree command.
func (d *DumpTree) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	defines, err := d.build(ctx)
	if err != nil {
		return err
	}

	w := streamsFrom(ctx).out

	if _, err := fmt.Fprintln(w, defineTree(w, defines)); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", "tree"))
	}

	return nil
}

// defineTree builds a lipgloss tree of defines, styled for w.
func defineTree(w io.Writer, defines *define.Map) *tree.Tree {
	r := lipgloss.NewRenderer(w)
	key := r.NewStyle().Foreground(lipgloss.Color("6"))
	value := r.NewStyle().Foreground(lipgloss.Color("2"))
	enum := r.NewStyle().Foreground(lipgloss.Color("8")).MarginRight(1)

	var build func(t *tree.Tree, m *define.Map) *tree.Tree

	build = func(t *tree.Tree, m *define.Map) *tree.Tree {
		for k, n := range m.All() {
			switch n := n.(type) {
			case *define.Map:
				t.Child(build(tree.Root(key.Render(k)), n))

			case define.List:
				items := tree.Root(key.Render(k))
				for _, s := range n {
					items.Child(value.Render(s.String()))
				}

				t.Child(items)

			default:
				t.Child(key.Render(k) + " " + value.Render(fmt.Sprint(n.Native())))
			}
		}

		return t.EnumeratorStyle(enum)
	}

	return build(tree.New(), defines)
}

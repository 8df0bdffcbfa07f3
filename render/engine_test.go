package render

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"text/template"

	"github.com/ardnew/tpp/define"
)

func mustBuild(t *testing.T, defines ...string) *define.Map {
	t.Helper()

	m, err := define.Build(defines)
	if err != nil {
		t.Fatalf("Build(%q): %v", defines, err)
	}

	return m
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func render(t *testing.T, e *Engine, source string, defines *define.Map) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	err := e.Render(t.Context(), &buf, "input", source, defines)

	return buf.String(), err
}

func TestRender(t *testing.T) {
	defines := mustBuild(t,
		"sys.ipv4[lo]=127.0.0.1",
		"sys.ipv4[docker0]=192.168.0.1",
		"tag=a", "tag=b",
		"debug",
		"name=box",
	)

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"literal", "hello", "hello"},
		{"nested", "{{ .sys.ipv4.lo }}", "127.0.0.1"},
		{"bracket component", `{{ index .sys.ipv4 "docker0" }}`, "192.168.0.1"},
		{"range list", "{{ range .tag }}[{{ . }}]{{ end }}", "[a][b]"},
		{"bare key default", "{{ if .debug }}on{{ end }}", "on"},
		{"join list", `{{ join "," .tag }}`, "a,b"},
		{"join scalar", `{{ join "," .name }}`, "box"},
		{"list scalar", "{{ len (list .name) }}", "1"},
		{"default absent", `{{ default "none" .missing }}`, "none"},
		{"default present", `{{ default "none" .name }}`, "box"},
		{"expr", `{{ expr "len(tag) + debug" }}`, "3"},
		{"expr nested", `{{ expr "sys.ipv4.lo == '127.0.0.1'" }}`, "true"},
		{"toJSON", "{{ toJSON .tag }}", `["a","b"]`},
		{"toYAML", "{{ toYAML .name }}", "box"},
	}

	e, err := New()
	if err != nil {
		t.Fatal(err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := render(t, e, tt.source, defines)
			if err != nil {
				t.Fatalf("Render(%q) error: %v", tt.source, err)
			}

			if got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestRender_NilDefines(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatal(err)
	}

	got, err := render(t, e, "plain", nil)
	if err != nil || got != "plain" {
		t.Errorf("Render = %q, %v", got, err)
	}
}

func TestRender_SearchPath(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()

	writeFiles(t, first, map[string]string{
		"header.tmpl": "first {{ .name }}",
	})
	writeFiles(t, second, map[string]string{
		"header.tmpl":     "second",
		"sub/footer.tmpl": "footer",
		"sub/skip.txt":    "{{ broken",
	})

	e, err := New(
		WithSearchPath(first+string(os.PathListSeparator)+second),
		WithPattern("**/*.tmpl"),
	)
	if err != nil {
		t.Fatal(err)
	}

	if got := e.SearchPath(); !slices.Equal(got, []string{first, second}) {
		t.Errorf("SearchPath() = %q", got)
	}

	source := `{{ template "header.tmpl" . }}/{{ template "sub/footer.tmpl" }}`

	got, err := render(t, e, source, mustBuild(t, "name=x"))
	if err != nil {
		t.Fatal(err)
	}

	if want := "first x/footer"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRender_RootShadowsSearchPath(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"input": "from disk"})

	e, err := New(WithSearchPath(dir))
	if err != nil {
		t.Fatal(err)
	}

	got, err := render(t, e, "from source", nil)
	if err != nil {
		t.Fatal(err)
	}

	if got != "from source" {
		t.Errorf("Render = %q", got)
	}
}

func TestRender_ParseErrorInSearchPath(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"bad": "{{ if }}"})

	e, err := New(WithSearchPath(dir))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := render(t, e, "x", nil); !errors.Is(err, ErrParse) {
		t.Errorf("error = %v, want ErrParse", err)
	}
}

func TestNew_SearchPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	writeFiles(t, dir, map[string]string{"file": ""})

	e, err := New(WithSearchPath("", filepath.Join(dir, "missing"), dir))
	if err != nil {
		t.Fatal(err)
	}

	if got := e.SearchPath(); !slices.Equal(got, []string{dir}) {
		t.Errorf("SearchPath() = %q, want [%s]", got, dir)
	}

	if _, err := New(WithSearchPath(file)); !errors.Is(err, ErrSearchPath) {
		t.Errorf("New with file error = %v, want ErrSearchPath", err)
	}
}

func TestNew_Pattern(t *testing.T) {
	if _, err := New(WithPattern("[")); !errors.Is(err, ErrPattern) {
		t.Errorf("error = %v, want ErrPattern", err)
	}
}

func TestRender_Strict(t *testing.T) {
	defines := mustBuild(t, "sys.ipv4[eth0]=10.0.0.2")

	lax, err := New()
	if err != nil {
		t.Fatal(err)
	}

	if _, err := render(t, lax, "{{ .sys.ipv4.eth }}", defines); err != nil {
		t.Errorf("non-strict render failed: %v", err)
	}

	strict, err := New(WithStrict(true))
	if err != nil {
		t.Fatal(err)
	}

	_, err = render(t, strict, "{{ .sys.ipv4.eth }}", defines)
	if !errors.Is(err, ErrUndefined) {
		t.Fatalf("error = %v, want ErrUndefined", err)
	}

	if !strings.Contains(err.Error(), "did you mean sys.ipv4.eth0") {
		t.Errorf("error %q lacks suggestion", err)
	}
}

func TestRender_ExecuteError(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatal(err)
	}

	_, err = render(t, e, "{{ .a.b }}", mustBuild(t, "a=1"))
	if !errors.Is(err, ErrExecute) {
		t.Errorf("error = %v, want ErrExecute", err)
	}
}

func TestRender_ExprError(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatal(err)
	}

	_, err = render(t, e, `{{ expr "1 +" }}`, nil)
	if !errors.Is(err, ErrExpr) {
		t.Errorf("error = %v, want ErrExpr", err)
	}
}

func TestRender_Delims(t *testing.T) {
	e, err := New(WithDelims("<%", "%>"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := render(t, e, "{{ <% .a %> }}", mustBuild(t, "a=1"))
	if err != nil {
		t.Fatal(err)
	}

	if got != "{{ 1 }}" {
		t.Errorf("Render = %q", got)
	}
}

func TestRender_Funcs(t *testing.T) {
	e, err := New(WithFuncs(template.FuncMap{
		"upper": strings.ToUpper,
		"join":  func(string, any) string { return "override" },
	}))
	if err != nil {
		t.Fatal(err)
	}

	got, err := render(t, e, `{{ upper .a }} {{ join "," .a }}`, mustBuild(t, "a=x"))
	if err != nil {
		t.Fatal(err)
	}

	if got != "X override" {
		t.Errorf("Render = %q", got)
	}
}

func TestRender_Canceled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a": "a"})

	e, err := New(WithSearchPath(dir))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	var buf bytes.Buffer
	if err := e.Render(ctx, &buf, "input", "x", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestSplitSearchPath(t *testing.T) {
	sep := string(os.PathListSeparator)

	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"/tmp/a"}, []string{"/tmp/a"}},
		{[]string{"/tmp/a" + sep + "/tmp/b"}, []string{"/tmp/a", "/tmp/b"}},
		{[]string{"/tmp/a" + sep + "/tmp/b", "/tmp/c"}, []string{"/tmp/a", "/tmp/b", "/tmp/c"}},
		{[]string{"", sep, "/tmp/a" + sep}, []string{"/tmp/a"}},
		{nil, nil},
	}

	for _, tt := range tests {
		if got := splitSearchPath(tt.in...); !slices.Equal(got, tt.want) {
			t.Errorf("splitSearchPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

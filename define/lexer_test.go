package define

import (
	"errors"
	"slices"
	"testing"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want KeyPath
	}{
		{"single", "a", KeyPath{"a"}},
		{"dotted", "a.b.c", KeyPath{"a", "b", "c"}},
		{"trailing bracket", "a.b[c]", KeyPath{"a", "b", "c"}},
		{"inner bracket", "a[b].c", KeyPath{"a", "b", "c"}},
		{"nested brackets are opaque", "a[b[1]].c", KeyPath{"a", "b[1]", "c"}},
		{"dots inside brackets", "a.b[c[1].d].e", KeyPath{"a", "b", "c[1].d", "e"}},
		{"adjacent groups", "a[b][c]", KeyPath{"a", "b", "c"}},
		{"leading bracket", "[a].b", KeyPath{"a", "b"}},
		{"empty components dropped", "a..b.", KeyPath{"a", "b"}},
		{"empty group dropped", "a[]b", KeyPath{"a", "b"}},
		{"ip address in group", "hosts[10.0.0.1]", KeyPath{"hosts", "10.0.0.1"}},
		{"unicode", "ключ.значение", KeyPath{"ключ", "значение"}},
		{"only separators", ".", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lex(tt.raw)
			if err != nil {
				t.Fatalf("Lex(%q) error: %v", tt.raw, err)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("Lex(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLex_UnbalancedBrackets(t *testing.T) {
	for _, raw := range []string{
		"a[b[1].c",
		"a[b",
		"a]b",
		"a]b[",
		"a[b]]",
		"[",
	} {
		t.Run(raw, func(t *testing.T) {
			got, err := Lex(raw)
			if !errors.Is(err, ErrUnbalancedBracket) {
				t.Fatalf("Lex(%q) = %q, %v; want ErrUnbalancedBracket", raw, got, err)
			}

			if got != nil {
				t.Errorf("Lex(%q) returned path %q with error", raw, got)
			}
		})
	}
}

func TestLex_NonEmptyForNonSeparatorInput(t *testing.T) {
	for _, raw := range []string{"x", "x.", ".x", "[x]", "a[.]"} {
		got, err := Lex(raw)
		if err != nil {
			t.Fatalf("Lex(%q) error: %v", raw, err)
		}

		if len(got) == 0 {
			t.Errorf("Lex(%q) produced an empty path", raw)
		}
	}
}

func TestKeyPath_String_JoinsNormalized(t *testing.T) {
	path, err := Lex("a[b[1]].c")
	if err != nil {
		t.Fatal(err)
	}

	if got, want := path.String(), "a.b[1].c"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if got := path.Head().String(); got != "a.b[1]" {
		t.Errorf("Head() = %q, want %q", got, "a.b[1]")
	}

	if got := path.Tail(); got != "c" {
		t.Errorf("Tail() = %q, want %q", got, "c")
	}

	var empty KeyPath
	if empty.Head() != nil || empty.Tail() != "" {
		t.Error("empty path should have no head and an empty tail")
	}
}

func FuzzLex(f *testing.F) {
	for _, seed := range []string{"a.b[c]", "a[b[1]].c", "a.b[c[1].d].e", "a[b[1].c", "]["} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		path, err := Lex(raw)
		if err != nil {
			if !errors.Is(err, ErrUnbalancedBracket) {
				t.Fatalf("unexpected error type: %v", err)
			}

			return
		}

		for _, c := range path {
			if c == "" {
				t.Fatalf("Lex(%q) emitted an empty component", raw)
			}
		}
	})
}

package pkg

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestError_Error_Formats(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message only", NewError("bad key"), "bad key"},
		{"message and cause", NewError("bad key").Wrap(io.EOF), "bad key: EOF"},
		{"cause only", WrapError(io.EOF), "EOF"},
		{"empty", &Error{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Is_MatchesDecoratedSentinel(t *testing.T) {
	sentinel := NewError("unbalanced")

	decorated := sentinel.With(slog.String("key", "a[b")).Wrap(io.EOF)

	if !errors.Is(decorated, sentinel) {
		t.Error("decorated error should match its sentinel")
	}

	if !errors.Is(decorated, io.EOF) {
		t.Error("decorated error should match its wrapped cause")
	}

	if errors.Is(decorated, NewError("other")) {
		t.Error("decorated error should not match a different sentinel")
	}

	if errors.Is(WrapError(io.EOF), &Error{}) {
		t.Error("errors without a message should never match")
	}
}

func TestError_With_DoesNotMutateReceiver(t *testing.T) {
	base := NewError("base").With(slog.Int("a", 1))
	derived := base.With(slog.Int("b", 2))

	if n := len(base.Attrs()); n != 1 {
		t.Errorf("base has %d attrs, want 1", n)
	}

	if n := len(derived.Attrs()); n != 2 {
		t.Errorf("derived has %d attrs, want 2", n)
	}
}

func TestError_LogValue_IncludesAttrs(t *testing.T) {
	err := NewError("render failed").
		Wrap(io.EOF).
		With(slog.String("template", "main"))

	v := err.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("LogValue kind = %v, want group", v.Kind())
	}

	got := map[string]string{}
	for _, a := range v.Group() {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{
		"error":    "render failed",
		"cause":    "EOF",
		"template": "main",
	}

	for k, v := range want {
		if got[k] != v {
			t.Errorf("attr %q = %q, want %q", k, got[k], v)
		}
	}
}

func TestWrapError_ReturnsExisting(t *testing.T) {
	orig := NewError("orig")

	if got := WrapError(orig); got != orig {
		t.Error("WrapError should return the existing *Error")
	}
}

//go:build pprof

package profile

import (
	"slices"
	"testing"
)

func TestModes(t *testing.T) {
	got := Modes()

	if !slices.IsSorted(got) {
		t.Errorf("Modes() = %v, want sorted", got)
	}

	for _, want := range []string{"cpu", "heap", "trace"} {
		if !slices.Contains(got, want) {
			t.Errorf("Modes() = %v, missing %q", got, want)
		}
	}
}

func TestStart_UnknownMode(t *testing.T) {
	var cfg Config = func() (string, string, bool) { return "bogus", t.TempDir(), true }

	p := cfg.Start()
	if _, ok := p.(ignore); !ok {
		t.Errorf("Start() = %T, want ignore", p)
	}

	p.Stop()
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name     string
		settings []setting
		want     int
	}{
		{"none", nil, 0},
		{"mode", []setting{withMode("cpu")}, 1},
		{"unknown mode", []setting{withMode("bogus")}, 0},
		{"all", []setting{withMode("cpu"), withPath("/tmp"), withQuiet(true)}, 3},
		{"empty path, not quiet", []setting{withPath(""), withQuiet(false)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(options(tt.settings...)); got != tt.want {
				t.Errorf("len(options()) = %d, want %d", got, tt.want)
			}
		})
	}
}

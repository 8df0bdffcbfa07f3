package profile

import "testing"

func TestConfigOptions(t *testing.T) {
	var cfg Config = func() (string, string, bool) { return "", "", false }

	cfg = WithMode("cpu")(cfg)
	cfg = WithPath("/tmp/profiles")(cfg)
	cfg = WithQuiet(true)(cfg)

	mode, path, quiet := cfg()
	if mode != "cpu" || path != "/tmp/profiles" || !quiet {
		t.Errorf("cfg() = (%q, %q, %v)", mode, path, quiet)
	}

	// Later options leave earlier fields untouched.
	cfg = WithMode("heap")(cfg)

	if mode, path, quiet = cfg(); mode != "heap" || path != "/tmp/profiles" || !quiet {
		t.Errorf("cfg() = (%q, %q, %v)", mode, path, quiet)
	}
}

func TestStart_NoMode(t *testing.T) {
	var cfg Config = func() (string, string, bool) { return "", t.TempDir(), true }

	p := cfg.Start()
	if _, ok := p.(ignore); !ok {
		t.Errorf("Start() = %T, want ignore", p)
	}

	p.Stop()
}

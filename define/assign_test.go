package define

import (
	"slices"
	"testing"
)

// recorder collects observed events.
type recorder []Event

func (r *recorder) Observe(e Event) { *r = append(*r, e) }

func (r recorder) kinds() []EventKind {
	kinds := make([]EventKind, len(r))
	for i, e := range r {
		kinds[i] = e.Kind
	}

	return kinds
}

func mustLex(t *testing.T, raw string) KeyPath {
	t.Helper()

	path, err := Lex(raw)
	if err != nil {
		t.Fatalf("Lex(%q): %v", raw, err)
	}

	return path
}

func TestAssign_MultiValueMerge(t *testing.T) {
	var events recorder

	root := NewMap()
	for _, v := range []string{"1", "2", "3"} {
		Assign(root, KeyPath{"a"}, NewScalar(v), WithObserver(&events))
	}

	got, ok := root.Get("a")
	if !ok {
		t.Fatal("key a not set")
	}

	list, ok := got.(List)
	if !ok {
		t.Fatalf("a is %v, want list", got.Kind())
	}

	if !slices.Equal(list.Native().([]any), []any{"1", "2", "3"}) {
		t.Errorf("a = %v, want [1 2 3]", list.Native())
	}

	want := []EventKind{LeafSet, LeafToList, LeafToList}
	if !slices.Equal(events.kinds(), want) {
		t.Errorf("events = %v, want %v", events.kinds(), want)
	}

	for _, e := range events {
		if e.Severity() != SeverityDebug {
			t.Errorf("%v severity = %v, want debug", e.Kind, e.Severity())
		}
	}
}

func TestAssign_CreatesIntermediateMaps(t *testing.T) {
	root := NewMap()
	Assign(root, mustLex(t, "sys.ipv4[lo]"), NewScalar("127.0.0.1"))
	Assign(root, mustLex(t, "sys.ipv4[docker0]"), NewScalar("192.168.0.1"))

	ipv4, ok := root.Lookup(KeyPath{"sys", "ipv4"})
	if !ok {
		t.Fatal("sys.ipv4 not found")
	}

	m, ok := ipv4.(*Map)
	if !ok {
		t.Fatalf("sys.ipv4 is %v, want map", ipv4.Kind())
	}

	if got, want := m.Keys(), []string{"lo", "docker0"}; !slices.Equal(got, want) {
		t.Errorf("keys = %q, want %q", got, want)
	}

	if got, _ := m.Get("docker0"); got.Native() != "192.168.0.1" {
		t.Errorf("docker0 = %v", got.Native())
	}
}

func TestAssign_LengthenConflict(t *testing.T) {
	tests := []struct {
		name     string
		lengthen bool
		want     any
		event    EventKind
		kinds    []EventKind
	}{
		{
			"replace leaf", true, map[string]any{"docker0": "192.168.0.1"},
			OverwriteLeaf, []EventKind{LeafSet, OverwriteLeaf, LeafSet},
		},
		{
			"keep leaf", false, "127.0.0.1",
			IgnoredOverwrite, []EventKind{LeafSet, IgnoredOverwrite},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var events recorder

			opts := []Option{WithLengthen(tt.lengthen), WithObserver(&events)}

			root := NewMap()
			Assign(root, mustLex(t, "sys.ipv4"), NewScalar("127.0.0.1"), opts...)
			Assign(root, mustLex(t, "sys.ipv4[docker0]"), NewScalar("192.168.0.1"), opts...)

			got, _ := root.Lookup(KeyPath{"sys", "ipv4"})
			if !nativeEqual(got.Native(), tt.want) {
				t.Errorf("sys.ipv4 = %v, want %v", got.Native(), tt.want)
			}

			if got := events.kinds(); !slices.Equal(got, tt.kinds) {
				t.Fatalf("events = %v, want %v", got, tt.kinds)
			}

			i := slices.IndexFunc(events, func(e Event) bool { return e.Kind == tt.event })
			if i < 0 {
				t.Fatalf("no %v event in %v", tt.event, events.kinds())
			}

			conflict := events[i]

			if conflict.Severity() != SeverityWarning {
				t.Errorf("severity = %v, want warning", conflict.Severity())
			}

			if got := conflict.Path.String(); got != "sys.ipv4" {
				t.Errorf("event path = %q, want sys.ipv4", got)
			}

			if conflict.Prior != "127.0.0.1" {
				t.Errorf("event prior = %v, want 127.0.0.1", conflict.Prior)
			}
		})
	}
}

func TestAssign_LengthenThroughList(t *testing.T) {
	root := NewMap()
	Assign(root, KeyPath{"a"}, NewScalar("1"))
	Assign(root, KeyPath{"a"}, NewScalar("2"))
	Assign(root, KeyPath{"a", "b"}, NewScalar("3"))

	got, _ := root.Get("a")
	if !nativeEqual(got.Native(), map[string]any{"b": "3"}) {
		t.Errorf("a = %v, want map[b:3]", got.Native())
	}
}

func TestAssign_IgnoredLengthenAbortsWholeDefine(t *testing.T) {
	root := NewMap()
	Assign(root, KeyPath{"a"}, NewScalar("1"))
	Assign(root, KeyPath{"x", "y"}, NewScalar("2"), WithLengthen(false))
	Assign(root, KeyPath{"a", "b", "c"}, NewScalar("3"), WithLengthen(false))

	want := map[string]any{"a": "1", "x": map[string]any{"y": "2"}}
	if !nativeEqual(root.Native(), want) {
		t.Errorf("tree = %v, want %v", root.Native(), want)
	}
}

func TestAssign_ShortenConflict(t *testing.T) {
	tests := []struct {
		name    string
		shorten bool
		want    any
		event   EventKind
	}{
		{"keep subtree", false, map[string]any{"docker0": "192.168.0.1"}, IgnoredPrune},
		{"prune subtree", true, "127.0.0.1", PruneSubtree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var events recorder

			opts := []Option{WithShorten(tt.shorten), WithObserver(&events)}

			root := NewMap()
			Assign(root, mustLex(t, "sys.ipv4[docker0]"), NewScalar("192.168.0.1"), opts...)
			Assign(root, mustLex(t, "sys.ipv4"), NewScalar("127.0.0.1"), opts...)

			got, _ := root.Lookup(KeyPath{"sys", "ipv4"})
			if !nativeEqual(got.Native(), tt.want) {
				t.Errorf("sys.ipv4 = %v, want %v", got.Native(), tt.want)
			}

			last := events[len(events)-1]
			if last.Kind != tt.event {
				t.Errorf("last event = %v, want %v", last.Kind, tt.event)
			}

			if !nativeEqual(last.Prior, map[string]any{"docker0": "192.168.0.1"}) {
				t.Errorf("event prior = %v", last.Prior)
			}
		})
	}
}

func TestAssign_ShortenAtRoot(t *testing.T) {
	root := NewMap()
	Assign(root, KeyPath{"a", "b"}, NewScalar("1"))
	Assign(root, KeyPath{"a"}, NewScalar("2"))

	if got, _ := root.Get("a"); got.Kind() != KindMap {
		t.Errorf("a = %v, want the map to be kept", got.Native())
	}

	Assign(root, KeyPath{"a"}, NewScalar("3"), WithShorten(true))

	if got, _ := root.Get("a"); got.Native() != "3" {
		t.Errorf("a = %v, want 3", got.Native())
	}
}

func TestAssign_PrunedKeyKeepsPosition(t *testing.T) {
	root := NewMap()
	Assign(root, KeyPath{"a", "x"}, NewScalar("1"))
	Assign(root, KeyPath{"b"}, NewScalar("2"))
	Assign(root, KeyPath{"a"}, NewScalar("3"), WithShorten(true))

	if got := root.Keys(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("keys = %q, want [a b]", got)
	}
}

func TestAssign_EmptyPathIgnored(t *testing.T) {
	var events recorder

	root := NewMap()
	Assign(root, nil, NewScalar("x"), WithObserver(&events))

	if root.Len() != 0 || len(events) != 0 {
		t.Errorf("empty path changed tree %v or emitted %v", root.Native(), events.kinds())
	}
}

func TestAssign_NilObserver(t *testing.T) {
	root := NewMap()
	Assign(root, KeyPath{"a"}, NewScalar("1"), WithObserver(nil))
	Assign(root, KeyPath{"a", "b"}, NewScalar("2"), WithObserver(nil))

	if root.Len() != 1 {
		t.Errorf("tree = %v", root.Native())
	}
}

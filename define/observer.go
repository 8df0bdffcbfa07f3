package define

import "log/slog"

// Severity classifies an [Event].
type Severity int

const (
	SeverityDebug   Severity = iota // debug
	SeverityWarning                 // warning
)

// String returns the name of the severity.
func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}

	return "debug"
}

// EventKind identifies what an assignment did.
type EventKind int

const (
	// LeafSet: a new scalar was stored at an absent key.
	LeafSet EventKind = iota
	// LeafToList: a scalar was converted to a list or a list was extended.
	LeafToList
	// OverwriteLeaf: a leaf was replaced by a map to lengthen the tree.
	OverwriteLeaf
	// IgnoredOverwrite: a define was dropped to keep an existing leaf.
	IgnoredOverwrite
	// PruneSubtree: a map was replaced by a scalar to shorten the tree.
	PruneSubtree
	// IgnoredPrune: a define was dropped to keep an existing map.
	IgnoredPrune
)

var eventKindName = map[EventKind]string{
	LeafSet:          "leaf-set",
	LeafToList:       "leaf-to-list",
	OverwriteLeaf:    "overwrite-leaf",
	IgnoredOverwrite: "ignored-overwrite",
	PruneSubtree:     "prune-subtree",
	IgnoredPrune:     "ignored-prune",
}

// String returns the name of the event kind.
func (k EventKind) String() string {
	if s, ok := eventKindName[k]; ok {
		return s
	}

	return "unknown"
}

// Severity returns the severity events of kind k are reported with.
func (k EventKind) Severity() Severity {
	switch k {
	case LeafSet, LeafToList:
		return SeverityDebug
	default:
		return SeverityWarning
	}
}

// Event describes one diagnostic produced while assigning a define.
type Event struct {
	Kind EventKind
	// Key is the define's full key path.
	Key KeyPath
	// Path is the position in the tree the event concerns. For conflicts
	// while descending it is a prefix of Key.
	Path KeyPath
	// Value is the incoming value of the define.
	Value any
	// Prior is the native value previously stored at Path, if any.
	Prior any
}

// Severity returns the severity of the event.
func (e Event) Severity() Severity { return e.Kind.Severity() }

// Message returns a human-readable summary of the event.
func (e Event) Message() string {
	switch e.Kind {
	case LeafSet:
		return "define set"
	case LeafToList:
		return "define appended to list"
	case OverwriteLeaf:
		return "define overwrites existing value"
	case IgnoredOverwrite:
		return "define ignored: key already has a value"
	case PruneSubtree:
		return "define prunes existing key tree"
	case IgnoredPrune:
		return "define ignored: it would prune existing key tree"
	default:
		return "define event"
	}
}

// LogValue implements slog.LogValuer.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", e.Kind.String()),
		slog.String("key", e.Key.String()),
		slog.Any("value", e.Value),
	}

	if e.Path.String() != e.Key.String() {
		attrs = append(attrs, slog.String("path", e.Path.String()))
	}

	if e.Prior != nil {
		attrs = append(attrs, slog.Any("prior", e.Prior))
	}

	return slog.GroupValue(attrs...)
}

// Observer receives diagnostic events from [Assign] and [Build].
// Observers are passive: they cannot alter or abort processing.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts an ordinary function to the [Observer] interface.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

// Discard is an [Observer] that ignores all events.
var Discard Observer = ObserverFunc(func(Event) {})

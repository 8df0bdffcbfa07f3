// Package define turns command-line assignments of the form KEY=VALUE (or a
// bare KEY) into a tree of nested values suitable as template data.
//
// # Key Paths
//
// A key is split into components at every top-level dot and around every
// outermost bracket group. The content of a bracket group is one opaque
// component, including any dots or brackets it contains:
//
//	a.b[c]        → a, b, c
//	a[b[1]].c     → a, b[1], c
//	a.b[c[1].d].e → a, b, c[1].d, e
//
// Keys with unbalanced brackets are rejected with [ErrUnbalancedBracket].
//
// # Assignment
//
// Each define is applied in order to a single tree rooted at a [Map]:
//
//   - Repeated assignments to the same leaf accumulate into a [List].
//   - Descending through an existing leaf is a lengthen conflict. By default
//     the leaf is replaced with a map (see [WithLengthen]).
//   - Assigning a scalar over an existing map is a shorten conflict. By
//     default the assignment is ignored (see [WithShorten]).
//
// Conflicts are never errors. They are reported to an optional [Observer].
//
// # Values
//
// Every value given as KEY=VALUE is a string. A bare KEY takes the default
// value configured with [WithDefault] verbatim, which may be an int or a
// bool. Templates and other consumers see both kinds of leaf in one tree.
package define

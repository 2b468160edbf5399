// Package keypage provides keyset ("cursor") pagination primitives for GORM.
//
// # Overview
//
// keypage turns a declared multi-column sort into a boundary algebra:
//   - BoundaryChain: compiles sort descriptors into ordering terms and a
//     recursive boundary predicate selecting only the rows strictly after a
//     remembered row, with tie-breaking across columns and explicit null
//     placement.
//   - Cursor: an opaque, URL-safe token carrying the query identity, the
//     sort identity, an optional argument fingerprint and the boundary values
//     of the last row of the previous page.
//   - Paginator: orchestrates decoding, validation, query execution and
//     minting of the next cursor.
//
// # Key concepts
//
//   - SortDescriptor: declares one sort column (type, direction, nullability,
//     value path, optional custom check).
//   - Executor: the query backend. A GORM-based implementation is bundled;
//     any storage able to apply ordering, a boolean predicate and a limit can
//     implement it.
//
// See the examples directory for runnable usage.
package keypage

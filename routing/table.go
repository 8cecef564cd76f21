// Package routing implements the relay's static, longest-matching-prefix
// routing table (spec §4.4, §4.5, §5, §9).
//
// Resolution is a linear scan in insertion order: the first route whose
// target prefix is a byte-prefix of the destination wins. There is no
// normalization and no dot-boundary awareness — a prefix "test.two"
// matches "test.two__". This is deliberate (spec §9 "ILP-address prefix
// matching"): callers encode separators into the prefix itself when they
// need one. The table does not sort by specificity either; an operator
// placing the catch-all prefix "" before a more specific route will
// shadow it, and the table will not stop them (spec §9, Open Question 1).
package routing

import (
	"bytes"
	"sync/atomic"
)

// Table holds an ordered, immutable-after-construction snapshot of
// routes behind an atomic pointer, so that readers never block on a
// concurrent SetRoutes and a writer's swap is a single atomic store
// (spec §5, §9: "an atomic pointer to an immutable table, preferred for
// lock-free reads").
type Table struct {
	routes atomic.Pointer[[]Route]
}

// NewTable builds a Table from an initial, ordered route list.
func NewTable(routes []Route) *Table {
	t := &Table{}
	t.SetRoutes(routes)
	return t
}

// SetRoutes atomically replaces the entire table. In-flight Resolve calls
// that already captured a route are unaffected; the next Resolve call
// sees the new table in full.
func (t *Table) SetRoutes(routes []Route) {
	snapshot := make([]Route, len(routes))
	copy(snapshot, routes)
	t.routes.Store(&snapshot)
}

// Routes returns a snapshot copy of the current ordered route list, for
// callers (the admin API) that need to read-modify-write the table.
func (t *Table) Routes() []Route {
	routes := t.routes.Load()
	if routes == nil {
		return nil
	}
	out := make([]Route, len(*routes))
	copy(out, *routes)
	return out
}

// Resolve returns the first route whose TargetPrefix is a byte-prefix of
// destination, or (Route{}, false) if none matches (spec §4.4, invariant
// 3 in §8).
func (t *Table) Resolve(destination []byte) (Route, bool) {
	routes := t.routes.Load()
	if routes == nil {
		return Route{}, false
	}
	for _, r := range *routes {
		if bytes.HasPrefix(destination, r.TargetPrefix) {
			return r, true
		}
	}
	return Route{}, false
}

// Package station builds the parent/child closure over GTFS stops
// (C3 of SPEC_FULL.md), so that a user-level "station" search maps to
// every platform-level stop used by the connection index.
package station

import "karlsruhe.dev/transit/model"

// Hierarchy maps a representative stop ID (a stop with no parent) to
// the ordered list of stop IDs in its group: itself plus every stop
// that declares it as parent_station.
type Hierarchy struct {
	ParentToChildren map[string][]string
}

// NewHierarchy builds the closure described in spec.md §3: every stop
// without a parent is its own representative; every stop with a
// parent joins its parent's group.
func NewHierarchy(stops []model.Stop) *Hierarchy {
	h := &Hierarchy{ParentToChildren: map[string][]string{}}

	for _, s := range stops {
		parent := s.ParentStation
		if parent == "" {
			parent = s.ID
		}
		h.ParentToChildren[parent] = append(h.ParentToChildren[parent], s.ID)
	}

	return h
}

// Expand returns the logical station set for stopID: if stopID is
// itself a representative (parent, or parentless stop), that's
// {self} ∪ children. Otherwise stopID is a child stop, and the result
// is {self} ∪ siblings ∪ parent.
//
// For children of distinct parents in malformed feed data this can
// merge unrelated stops if the same stop_id were ever declared a
// child of more than one parent — GTFS doesn't allow that, but
// verify against your feed (see spec.md §9).
func (h *Hierarchy) Expand(stopID string) []string {
	var base []string

	if children, ok := h.ParentToChildren[stopID]; ok {
		base = append([]string{stopID}, children...)
	} else {
		base = []string{stopID}
		for parent, children := range h.ParentToChildren {
			for _, c := range children {
				if c == stopID {
					base = append(base, children...)
					base = append(base, parent)
					break
				}
			}
		}
	}

	return dedupPreserveOrder(base)
}

func dedupPreserveOrder(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

package compile

import "github.com/flowframe/engine/types"

// pass1Units groups every directly-connected pair of ports into a
// union-find set and resolves each group to a single unit: if the group
// contains more than one distinct non-default unit, it is left untouched
// for Pass 2 to bridge edge by edge with adapters. This pass raises no
// diagnostic: a group with no non-default unit at all keeps UnitDefault
// on every port, and an unresolvable group is not reported here.
func pass1Units(s *compileState) {
	s.unitUF = NewUnionFind[PortRef]()

	for _, e := range s.patch.Edges {
		from, okFrom := s.portTypes[e.From]
		to, okTo := s.portTypes[e.To]
		if !okFrom || !okTo {
			continue // already diagnosed in Pass 0
		}
		if from.Unit != types.UnitDefault && to.Unit != types.UnitDefault && from.Unit == to.Unit {
			s.unitUF.Union(e.From, e.To)
		} else if from.Unit == types.UnitDefault || to.Unit == types.UnitDefault {
			s.unitUF.Union(e.From, e.To)
		}
	}

	for _, group := range s.unitUF.Groups() {
		resolved := types.UnitDefault
		conflict := false
		for _, ref := range group {
			u := s.portTypes[ref].Unit
			if u == types.UnitDefault {
				continue
			}
			if resolved == types.UnitDefault {
				resolved = u
			} else if resolved != u {
				conflict = true
			}
		}
		if conflict {
			continue // Pass 2 handles this edge-by-edge via adapter insertion
		}
		if resolved == types.UnitDefault {
			continue
		}
		for _, ref := range group {
			t := s.portTypes[ref]
			if t.Unit == types.UnitDefault {
				t.Unit = resolved
				s.portTypes[ref] = t
			}
		}
	}
}

package registry

import "github.com/flowframe/engine/types"

// AdapterCandidate pairs a registered block name with the adapter
// conversion it can perform, and a priority used to break ties when more
// than one registered block could serve a given AdapterSpec (lower
// priority value wins).
type AdapterCandidate struct {
	BlockName string
	Spec      types.AdapterSpec
	Priority  int
}

// AdapterCatalog indexes blocks tagged as adapters/lenses so Pass 2
// (adapter insertion) can look one up by the
// AdapterSpec types.CheckTypeConnection produced, instead of scanning the
// whole block registry per edge.
type AdapterCatalog struct {
	candidates []AdapterCandidate
}

// NewAdapterCatalog returns an empty catalog.
func NewAdapterCatalog() *AdapterCatalog {
	return &AdapterCatalog{}
}

// RegisterAdapter records a block as able to perform the given kind of
// conversion. A block may register for more than one AdapterSpec (e.g. a
// single generic UnitConvert block registers once per (from, to) pair it
// supports).
func (c *AdapterCatalog) RegisterAdapter(blockName string, spec types.AdapterSpec, priority int) {
	c.candidates = append(c.candidates, AdapterCandidate{BlockName: blockName, Spec: spec, Priority: priority})
}

// Find returns the best-matching registered adapter block for the given
// spec, or false if none is registered. Matching is exact on Kind and on
// whichever from/to fields that Kind uses; ties are broken by the lowest
// Priority value, then by registration order.
func (c *AdapterCatalog) Find(spec types.AdapterSpec) (AdapterCandidate, bool) {
	best := AdapterCandidate{}
	found := false
	for _, cand := range c.candidates {
		if !specMatches(cand.Spec, spec) {
			continue
		}
		if !found || cand.Priority < best.Priority {
			best = cand
			found = true
		}
	}
	return best, found
}

func specMatches(candidate, query types.AdapterSpec) bool {
	if candidate.Kind != query.Kind {
		return false
	}
	switch candidate.Kind {
	case types.AdapterUnitConversion:
		return candidate.FromUnit == query.FromUnit && candidate.ToUnit == query.ToUnit
	case types.AdapterContractLens:
		return candidate.FromContract == query.FromContract && candidate.ToContract == query.ToContract
	case types.AdapterBroadcast:
		return true
	default:
		return false
	}
}

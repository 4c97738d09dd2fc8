package compile

import "testing"

func TestUnionFindConnectsTransitively(t *testing.T) {
	uf := NewUnionFind[int]()
	uf.Union(1, 2)
	uf.Union(2, 3)

	if !uf.Connected(1, 3) {
		t.Fatal("expected 1 and 3 to be connected via 2")
	}
	if uf.Connected(1, 4) {
		t.Fatal("expected 4 to be in its own singleton set")
	}
}

func TestUnionFindGroupsPartitionsAllSeenElements(t *testing.T) {
	uf := NewUnionFind[string]()
	uf.Union("a", "b")
	uf.Find("c")

	groups := uf.Groups()
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	if total != 3 {
		t.Fatalf("expected 3 total elements across groups, got %d", total)
	}
}

package compile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// ContentHash returns a deterministic hash of patch's structural content:
// every block's kind/params/count and every edge, in a canonical
// (sorted-by-id) order so that two patches authored in a different block
// order but otherwise identical hash identically. This is the cache key
// spec §2 describes ("a content hash of the authored graph keys the
// compile cache").
func ContentHash(patch Patch) string {
	blocks := append([]BlockInstance(nil), patch.Blocks...)
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].ID < blocks[j].ID })

	edges := append([]Edge(nil), patch.Edges...)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edgeLess(edges[i].From, edges[j].From)
		}
		return edgeLess(edges[i].To, edges[j].To)
	})

	h := sha256.New()
	for _, b := range blocks {
		fmt.Fprintf(h, "B|%d|%s|%d|", b.ID, b.Kind, b.Count)
		paramKeys := make([]string, 0, len(b.Params))
		for k := range b.Params {
			paramKeys = append(paramKeys, k)
		}
		sort.Strings(paramKeys)
		for _, k := range paramKeys {
			fmt.Fprintf(h, "%s=%v;", k, b.Params[k])
		}
		h.Write([]byte("\n"))
	}
	for _, e := range edges {
		fmt.Fprintf(h, "E|%d.%s->%d.%s\n", e.From.Block, e.From.Port, e.To.Block, e.To.Port)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func edgeLess(a, b PortRef) bool {
	if a.Block != b.Block {
		return a.Block < b.Block
	}
	return a.Port < b.Port
}

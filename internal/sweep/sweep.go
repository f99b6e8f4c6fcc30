// Package sweep finds, for every distinct interval start, the intervals active at that instant.
package sweep

import "github.com/google/btree"

// Interval is the half-open span [Start, End) during which a node is active
type Interval struct {
	Node  int
	Start uint64
	End   uint64
}

// Slot lists the nodes whose interval contains At, in input order
type Slot struct {
	At    uint64
	Nodes []int
}

type bucket struct {
	at    uint64
	nodes []int
}

const degree = 32

// Coverage returns one slot per distinct interval start, in ascending order. A slot is
// empty when every interval starting there is empty (Start == End).
//
// Every start becomes a key of an ordered tree; each interval then appends its node to
// the keys found in [Start, End), so the cost is O(N log N + K) for K memberships.
func Coverage(intervals []Interval) []Slot {
	tree := btree.NewG(degree, func(a, b *bucket) bool { return a.at < b.at })
	for _, interval := range intervals {
		if _, ok := tree.Get(&bucket{at: interval.Start}); !ok {
			tree.ReplaceOrInsert(&bucket{at: interval.Start})
		}
	}

	for _, interval := range intervals {
		if interval.Start >= interval.End {
			continue
		}
		tree.AscendRange(&bucket{at: interval.Start}, &bucket{at: interval.End}, func(item *bucket) bool {
			item.nodes = append(item.nodes, interval.Node)
			return true
		})
	}

	slots := make([]Slot, 0, tree.Len())
	tree.Ascend(func(item *bucket) bool {
		slots = append(slots, Slot{At: item.at, Nodes: item.nodes})
		return true
	})
	return slots
}

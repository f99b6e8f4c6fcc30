package sweep

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

// bruteForce is the O(N²) reference: for every distinct start, test every interval
func bruteForce(intervals []Interval) []Slot {
	starts := make(map[uint64]bool)
	for _, interval := range intervals {
		starts[interval.Start] = true
	}

	slots := make([]Slot, 0, len(starts))
	for at := range starts {
		slot := Slot{At: at}
		for _, interval := range intervals {
			if interval.Start <= at && at < interval.End {
				slot.Nodes = append(slot.Nodes, interval.Node)
			}
		}
		slots = append(slots, slot)
	}
	return slots
}

func randomIntervals(rng *rand.Rand, n int, horizon uint64) []Interval {
	intervals := make([]Interval, n)
	for i := range intervals {
		start := uint64(rng.Int63n(int64(horizon)))
		length := uint64(0)
		if rng.Float32() > 0.1 { // Some degenerate intervals
			length = uint64(rng.Int63n(int64(horizon / 2)))
		}
		intervals[i] = Interval{Node: i, Start: start, End: start + length}
	}
	return intervals
}

func TestCoverageMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for range 50 {
		//** Arrange
		intervals := randomIntervals(rng, rng.Intn(60)+1, uint64(rng.Intn(100)+2))

		//** Act
		got := Coverage(intervals)

		//** Assert
		want := bruteForce(intervals)
		sortSlots := cmpopts.SortSlices(func(a, b Slot) bool { return a.At < b.At })
		if diff := cmp.Diff(want, got, sortSlots, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("Coverage(%v) mismatch (-want +got):\n%s", intervals, diff)
		}
	}
}

func TestCoverageAscending(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	slots := Coverage(randomIntervals(rng, 200, 1000))
	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1].At, slots[i].At)
	}
}

func TestCoverageNested(t *testing.T) {
	intervals := []Interval{
		{Node: 0, Start: 0, End: 100},
		{Node: 1, Start: 10, End: 90},
		{Node: 2, Start: 20, End: 30},
		{Node: 3, Start: 20, End: 21},
	}

	slots := Coverage(intervals)

	assert.Equal(t, []Slot{
		{At: 0, Nodes: []int{0}},
		{At: 10, Nodes: []int{0, 1}},
		{At: 20, Nodes: []int{0, 1, 2, 3}},
	}, slots)
}

func TestCoverageEmptyIntervals(t *testing.T) {
	intervals := []Interval{
		{Node: 0, Start: 5, End: 5},
		{Node: 1, Start: 0, End: 5},
		{Node: 2, Start: 5, End: 6},
		{Node: 3, Start: 8, End: 8},
	}

	slots := Coverage(intervals)

	// End is exclusive: node 1 does not cover 5
	assert.Equal(t, []Slot{
		{At: 0, Nodes: []int{1}},
		{At: 5, Nodes: []int{2}},
		{At: 8, Nodes: nil},
	}, slots)
}

func TestCoverageNoIntervals(t *testing.T) {
	assert.Empty(t, Coverage(nil))
}

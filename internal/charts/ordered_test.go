package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedTally_KeepsFirstSeenOrder(t *testing.T) {
	counts := newOrderedTally[int]()
	for _, k := range []string{"c", "a", "c", "b", "a", "c"} {
		counts.Add(k, 1)
	}

	var keys []string
	var totals []int
	counts.Each(func(k string, n int) {
		keys = append(keys, k)
		totals = append(totals, n)
	})

	assert.Equal(t, []string{"c", "a", "b"}, keys)
	assert.Equal(t, []int{3, 2, 1}, totals)
	assert.Equal(t, 3, counts.Len())
}

func TestOrderedTally_ZeroDeltaRegistersKey(t *testing.T) {
	sums := newOrderedTally[float64]()
	sums.Add("a", 0)
	sums.Add("b", 1.5)
	sums.Add("a", -2)

	got := map[string]float64{}
	sums.Each(func(k string, v float64) { got[k] = v })
	assert.Equal(t, map[string]float64{"a": -2, "b": 1.5}, got)
}

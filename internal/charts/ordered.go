package charts

// orderedTally accumulates values per key and remembers the order in which
// keys were first seen.
type orderedTally[V int | float64] struct {
	keys   []string
	totals map[string]V
}

func newOrderedTally[V int | float64]() *orderedTally[V] {
	return &orderedTally[V]{totals: make(map[string]V)}
}

// Add adds delta to key, registering key on first sight
func (t *orderedTally[V]) Add(key string, delta V) {
	if _, ok := t.totals[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.totals[key] += delta
}

// Each visits keys in first-seen order
func (t *orderedTally[V]) Each(fn func(key string, total V)) {
	for _, k := range t.keys {
		fn(k, t.totals[k])
	}
}

// Len returns the number of distinct keys
func (t *orderedTally[V]) Len() int {
	return len(t.keys)
}

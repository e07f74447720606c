package series

// Series is an ordered list of measurements in source row order.
type Series []float64

// Grouping maps a key to its series and remembers the order in which keys
// were first seen.
type Grouping[K comparable] struct {
	keys   []K
	series map[K]Series
	total  int
}

// NewGrouping returns an empty grouping.
func NewGrouping[K comparable]() *Grouping[K] {
	return &Grouping[K]{
		series: make(map[K]Series),
	}
}

// Add appends v to the series for k, creating it on first encounter.
func (g *Grouping[K]) Add(k K, v float64) {
	s, ok := g.series[k]
	if !ok {
		g.keys = append(g.keys, k)
	}
	g.series[k] = append(s, v)
	g.total++
}

// Get returns the series for k.
func (g *Grouping[K]) Get(k K) (Series, bool) {
	s, ok := g.series[k]
	return s, ok
}

// Keys returns a copy of the keys in first-seen order.
func (g *Grouping[K]) Keys() []K {
	out := make([]K, len(g.keys))
	copy(out, g.keys)
	return out
}

// Len returns the number of distinct keys.
func (g *Grouping[K]) Len() int {
	return len(g.keys)
}

// Total returns the number of values across all series.
func (g *Grouping[K]) Total() int {
	return g.total
}

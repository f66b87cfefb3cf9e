package stats

import "sort"

// Entry is one key of a Counter with its count.
type Entry[K comparable] struct {
	Key   K
	Count int
}

// Counter is a frequency table that remembers the order in which keys were
// first added. Every tie is broken in favour of the key seen first, so
// results never depend on map iteration order.
type Counter[K comparable] struct {
	index   map[K]int
	entries []Entry[K]
}

// NewCounter returns an empty Counter.
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{index: make(map[K]int)}
}

// Add increments the count of k by one.
func (c *Counter[K]) Add(k K) {
	if i, ok := c.index[k]; ok {
		c.entries[i].Count++
		return
	}
	c.index[k] = len(c.entries)
	c.entries = append(c.entries, Entry[K]{Key: k, Count: 1})
}

// AddAll increments every key in ks.
func (c *Counter[K]) AddAll(ks []K) {
	for _, k := range ks {
		c.Add(k)
	}
}

// Len returns the number of distinct keys.
func (c *Counter[K]) Len() int {
	return len(c.entries)
}

// Max returns the key with the highest count. ok is false when empty.
func (c *Counter[K]) Max() (e Entry[K], ok bool) {
	for i, cur := range c.entries {
		if i == 0 || cur.Count > e.Count {
			e = cur
		}
	}
	return e, len(c.entries) > 0
}

// Min returns the key with the lowest count. ok is false when empty.
func (c *Counter[K]) Min() (e Entry[K], ok bool) {
	for i, cur := range c.entries {
		if i == 0 || cur.Count < e.Count {
			e = cur
		}
	}
	return e, len(c.entries) > 0
}

// MostCommon returns up to n entries by descending count, ties in insertion order.
// n <= 0 returns all entries.
func (c *Counter[K]) MostCommon(n int) []Entry[K] {
	out := make([]Entry[K], len(c.entries))
	copy(out, c.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

package dsp

import "sort"

// SlidingMedian tracks the median of the most recent values with a
// fixed-capacity ring plus a parallel insertion-sorted slice, instead of
// re-sorting the window on every step.
type SlidingMedian struct {
	capacity int
	ring     []float64
	sorted   []float64
	head     int
	count    int
}

// NewSlidingMedian creates a window of the given capacity (minimum 1).
func NewSlidingMedian(capacity int) *SlidingMedian {
	if capacity < 1 {
		capacity = 1
	}
	return &SlidingMedian{
		capacity: capacity,
		ring:     make([]float64, capacity),
		sorted:   make([]float64, 0, capacity),
	}
}

// Push appends a value, evicting the oldest once the window is full.
func (m *SlidingMedian) Push(v float64) {
	if m.count == m.capacity {
		m.removeSorted(m.ring[m.head])
	} else {
		m.count++
	}
	m.ring[m.head] = v
	m.head = (m.head + 1) % m.capacity
	m.insertSorted(v)
}

// Len reports how many values the window currently holds.
func (m *SlidingMedian) Len() int {
	return m.count
}

// Median returns the current median, 0 when empty.
func (m *SlidingMedian) Median() float64 {
	n := len(m.sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return m.sorted[n/2]
	}
	return (m.sorted[n/2-1] + m.sorted[n/2]) / 2.0
}

// Reset empties the window without reallocating.
func (m *SlidingMedian) Reset() {
	m.head = 0
	m.count = 0
	m.sorted = m.sorted[:0]
}

func (m *SlidingMedian) insertSorted(v float64) {
	i := sort.SearchFloat64s(m.sorted, v)
	m.sorted = append(m.sorted, 0)
	copy(m.sorted[i+1:], m.sorted[i:])
	m.sorted[i] = v
}

func (m *SlidingMedian) removeSorted(v float64) {
	i := sort.SearchFloat64s(m.sorted, v)
	if i < len(m.sorted) && m.sorted[i] == v {
		m.sorted = append(m.sorted[:i], m.sorted[i+1:]...)
	}
}

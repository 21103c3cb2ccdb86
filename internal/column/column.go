// Package column provides the finite sets and columns (finite partial maps)
// that models are stored in. Sets and columns remember insertion order so
// enumeration, and therefore validation output, is deterministic.
package column

import "iter"

// FinSet is a finite set that enumerates its elements in insertion order.
type FinSet[T comparable] struct {
	index map[T]int
	elems []T
}

// NewFinSet returns an empty set.
func NewFinSet[T comparable]() *FinSet[T] {
	return &FinSet[T]{index: make(map[T]int)}
}

// Insert adds x and reports whether it was not already present.
func (s *FinSet[T]) Insert(x T) bool {
	if _, ok := s.index[x]; ok {
		return false
	}
	s.index[x] = len(s.elems)
	s.elems = append(s.elems, x)
	return true
}

// Remove deletes x and reports whether it was present.
func (s *FinSet[T]) Remove(x T) bool {
	i, ok := s.index[x]
	if !ok {
		return false
	}
	delete(s.index, x)
	s.elems = append(s.elems[:i], s.elems[i+1:]...)
	for j := i; j < len(s.elems); j++ {
		s.index[s.elems[j]] = j
	}
	return true
}

// Contains reports whether x is in the set.
func (s *FinSet[T]) Contains(x T) bool {
	_, ok := s.index[x]
	return ok
}

// Len returns the number of elements.
func (s *FinSet[T]) Len() int {
	return len(s.elems)
}

// All enumerates the elements in insertion order.
func (s *FinSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, x := range s.elems {
			if !yield(x) {
				return
			}
		}
	}
}

// Column is a finite partial map whose keys enumerate in the order they were
// first set.
type Column[K comparable, V any] struct {
	keys   *FinSet[K]
	values map[K]V
}

// NewColumn returns an empty column.
func NewColumn[K comparable, V any]() *Column[K, V] {
	return &Column[K, V]{keys: NewFinSet[K](), values: make(map[K]V)}
}

// Apply returns the value at k, if set.
func (c *Column[K, V]) Apply(k K) (V, bool) {
	v, ok := c.values[k]
	return v, ok
}

// IsSet reports whether a value is set at k.
func (c *Column[K, V]) IsSet(k K) bool {
	_, ok := c.values[k]
	return ok
}

// Set sets the value at k and returns the previous value, if any.
func (c *Column[K, V]) Set(k K, v V) (V, bool) {
	old, ok := c.values[k]
	c.values[k] = v
	c.keys.Insert(k)
	return old, ok
}

// Len returns the number of keys with a value.
func (c *Column[K, V]) Len() int {
	return len(c.values)
}

// All enumerates key-value pairs in key order.
func (c *Column[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k := range c.keys.All() {
			if !yield(k, c.values[k]) {
				return
			}
		}
	}
}

// Indexed is a column over comparable values that also maintains the
// inverse mapping, so the preimage of a value is found without a scan.
type Indexed[K, V comparable] struct {
	*Column[K, V]
	preimages map[V]*FinSet[K]
}

// NewIndexed returns an empty indexed column.
func NewIndexed[K, V comparable]() *Indexed[K, V] {
	return &Indexed[K, V]{Column: NewColumn[K, V](), preimages: make(map[V]*FinSet[K])}
}

// Set sets the value at k, moving k between preimages, and returns the
// previous value, if any.
func (c *Indexed[K, V]) Set(k K, v V) (V, bool) {
	old, ok := c.Column.Set(k, v)
	if ok {
		if old == v {
			return old, ok
		}
		if pre := c.preimages[old]; pre != nil {
			pre.Remove(k)
			if pre.Len() == 0 {
				delete(c.preimages, old)
			}
		}
	}
	pre := c.preimages[v]
	if pre == nil {
		pre = NewFinSet[K]()
		c.preimages[v] = pre
	}
	pre.Insert(k)
	return old, ok
}

// Preimage enumerates the keys mapped to v.
func (c *Indexed[K, V]) Preimage(v V) iter.Seq[K] {
	pre := c.preimages[v]
	if pre == nil {
		return func(func(K) bool) {}
	}
	return pre.All()
}

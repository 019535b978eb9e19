// Package sets provides a map based set.
package sets

import (
	"cmp"
	"slices"
)

type Empty struct{}

// Set is a set of comparable items, implemented via map[T]struct{} for minimal memory consumption.
type Set[T comparable] map[T]Empty

// New creates a Set from a list of values.
func New[T comparable](items ...T) Set[T] {
	return make(Set[T], len(items)).Insert(items...)
}

// Insert adds items to the set.
func (s Set[T]) Insert(items ...T) Set[T] {
	for _, item := range items {
		s[item] = Empty{}
	}
	return s
}

// Delete removes all items from the set.
func (s Set[T]) Delete(items ...T) Set[T] {
	for _, item := range items {
		delete(s, item)
	}
	return s
}

// Has returns true if and only if item is contained in the set.
func (s Set[T]) Has(item T) bool {
	_, ok := s[item]
	return ok
}

// Len returns the size of the set.
func (s Set[T]) Len() int {
	return len(s)
}

// List returns the sorted contents of s.
func List[T cmp.Ordered](s Set[T]) []T {
	res := make([]T, 0, len(s))
	for key := range s {
		res = append(res, key)
	}
	slices.Sort(res)
	return res
}

package kv

import "iter"

type Pair struct {
	Key, Value string
}

// Storage is an ordered multimap of (string, string) pairs. It acts as a map but uses
// linear search instead, which proves to be more efficient on relatively low amount of
// entries, which often enough is the case for query strings. Keys are compared
// case-sensitively and pairs keep their insertion order.
type Storage struct {
	pairs []Pair
}

func New() *Storage {
	return new(Storage)
}

// NewPrealloc returns an instance of Storage with pre-allocated underlying storage.
func NewPrealloc(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
	}
}

// Add appends a new pair. Existing pairs with the same key are kept.
func (s *Storage) Add(key, value string) *Storage {
	s.pairs = append(s.pairs, Pair{
		Key:   key,
		Value: value,
	})
	return s
}

// Get returns the first value of the key and whether it was found at all.
func (s *Storage) Get(key string) (value string, found bool) {
	for _, pair := range s.pairs {
		if pair.Key == key {
			return pair.Value, true
		}
	}

	return "", false
}

// Count returns how many times the key was added.
func (s *Storage) Count(key string) (n int) {
	for _, pair := range s.pairs {
		if pair.Key == key {
			n++
		}
	}

	return n
}

// Values returns all values of the key in insertion order, or nil if there are none.
// The returned slice is freshly allocated and safe to keep.
func (s *Storage) Values(key string) (values []string) {
	for _, pair := range s.pairs {
		if pair.Key == key {
			values = append(values, pair.Value)
		}
	}

	return values
}

// Keys returns all unique keys in order of their first appearance.
func (s *Storage) Keys() []string {
	keys := make([]string, 0, len(s.pairs))

	for _, pair := range s.pairs {
		if !contains(keys, pair.Key) {
			keys = append(keys, pair.Key)
		}
	}

	return keys
}

// Iter returns an iterator over the pairs.
func (s *Storage) Iter() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range s.pairs {
			if !yield(pair.Key, pair.Value) {
				break
			}
		}
	}
}

// Has indicates, whether there's an entry of the key.
func (s *Storage) Has(key string) bool {
	_, found := s.Get(key)
	return found
}

// Len returns a number of stored pairs.
func (s *Storage) Len() int {
	return len(s.pairs)
}

func (s *Storage) Empty() bool {
	return s.Len() == 0
}

// Clear all the entries. However, all the allocated space won't be freed.
func (s *Storage) Clear() *Storage {
	s.pairs = s.pairs[:0]
	return s
}

func contains(collection []string, key string) bool {
	for _, element := range collection {
		if element == key {
			return true
		}
	}

	return false
}

package query

import (
	"iter"

	"github.com/indigo-web/indigo-core/internal/queryparser"
	"github.com/indigo-web/indigo-core/kv"
)

// Value is what a single query key maps to. A key seen once holds a single value, a
// repeated key holds all its values in order of appearance.
type Value struct {
	values []string
}

// Single wraps one value.
func Single(value string) Value {
	return Value{values: []string{value}}
}

// Multiple wraps an ordered sequence of values.
func Multiple(values ...string) Value {
	return Value{values: values}
}

// Multiple reports whether the key was repeated.
func (v Value) Multiple() bool {
	return len(v.values) > 1
}

// String returns the first value.
func (v Value) String() string {
	if len(v.values) == 0 {
		return ""
	}

	return v.values[0]
}

// Strings returns all the values in order of appearance.
func (v Value) Strings() []string {
	return v.values
}

// Query is a lazy structure for accessing URI parameters. Its laziness is defined
// by the fact that parameters won't be parsed until requested.
//
// Query doesn't own the raw bytes: keys and values are views into them, so the
// query is valid only as long as the buffer it was created from is alive and unchanged.
// A nil *Query behaves like an empty one.
type Query struct {
	parsed bool
	params *kv.Storage
	raw    []byte
}

func New(raw []byte) *Query {
	return &Query{
		params: kv.New(),
		raw:    raw,
	}
}

// Get returns the value of the key, parsing the raw query on the first access.
func (q *Query) Get(key string) (value Value, found bool) {
	if q == nil {
		return value, false
	}

	q.parse()

	switch q.params.Count(key) {
	case 0:
		return value, false
	case 1:
		first, _ := q.params.Get(key)
		return Single(first), true
	default:
		return Multiple(q.params.Values(key)...), true
	}
}

// Has indicates whether the key is presented at least once.
func (q *Query) Has(key string) bool {
	if q == nil {
		return false
	}

	q.parse()

	return q.params.Has(key)
}

// Keys returns all unique keys in order of their first appearance.
func (q *Query) Keys() []string {
	if q == nil {
		return nil
	}

	q.parse()

	return q.params.Keys()
}

// Iter returns an iterator over all the pairs, including repeated keys.
func (q *Query) Iter() iter.Seq2[string, string] {
	if q == nil {
		return func(func(string, string) bool) {}
	}

	q.parse()

	return q.params.Iter()
}

// Raw just returns a raw value of query as it is
func (q *Query) Raw() []byte {
	if q == nil {
		return nil
	}

	return q.raw
}

func (q *Query) parse() {
	if q.parsed {
		return
	}

	q.parsed = true
	queryparser.Parse(q.raw, func(key, value string) {
		q.params.Add(key, value)
	})
}

package domain

import (
	"encoding/json"
	"sort"
)

// StringSet is an unordered set of string identifiers. It is the working
// structure for lineage results: membership and insertion are O(1) and
// iteration order is never significant. JSON output is a sorted array so
// that identical sets always serialize identically.
type StringSet map[string]struct{}

// NewStringSet returns a set containing the given values.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts a value into the set.
func (s StringSet) Add(value string) {
	s[value] = struct{}{}
}

// Has reports whether the set contains the value.
func (s StringSet) Has(value string) bool {
	_, ok := s[value]
	return ok
}

// AddAll inserts every member of other into the set.
func (s StringSet) AddAll(other StringSet) {
	for v := range other {
		s[v] = struct{}{}
	}
}

// Values returns the members as a sorted slice.
func (s StringSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a sorted JSON array.
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON decodes a JSON array into the set.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}

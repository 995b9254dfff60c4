package competency

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Set is an ordered collection of competency tags with no duplicates.
// It is stored as a JSON array in a text column; anything that does not
// parse as a JSON array loads as the empty set. Tags are compared as
// exact strings, case-sensitive, no normalization.
type Set []string

// NewSet builds a Set from tags, collapsing duplicates while keeping the
// first occurrence's position.
func NewSet(tags ...string) Set {
	s := make(Set, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		s = append(s, t)
	}
	return s
}

func (s Set) Contains(tag string) bool {
	for _, t := range s {
		if t == tag {
			return true
		}
	}
	return false
}

// Union returns a new Set with other's tags appended after s's, duplicates
// collapsed.
func (s Set) Union(other Set) Set {
	return NewSet(append(append([]string{}, s...), other...)...)
}

// Scan loads the set from its stored JSON text. The single fallback policy:
// NULL, empty, or malformed values become the empty set rather than an error,
// so one bad row cannot poison unrelated reads.
func (s *Set) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*s = Set{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("competency: cannot scan %T into Set", value)
	}

	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		*s = Set{}
		return nil
	}
	*s = NewSet(tags...)
	return nil
}

// Value serializes the set as a JSON array, never null.
func (s Set) Value() (driver.Value, error) {
	if s == nil {
		s = Set{}
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(NewSet(s...)))
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return err
	}
	*s = NewSet(tags...)
	return nil
}

// Package types holds JSON-in-text column codecs shared by the datamodels.
// Parsing happens once on load and serialization once on save; call sites
// never touch raw column text.
package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a []string stored as a JSON array in a text column.
// Malformed stored values load as the empty list.
type StringList []string

func (l *StringList) Scan(value interface{}) error {
	raw, err := rawBytes(value)
	if err != nil {
		return err
	}
	if raw == nil {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		*l = StringList{}
		return nil
	}
	*l = out
	return nil
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// PositionCount maps position name to open headcount, stored as a JSON object.
type PositionCount map[string]int

func (p *PositionCount) Scan(value interface{}) error {
	raw, err := rawBytes(value)
	if err != nil {
		return err
	}
	if raw == nil {
		*p = PositionCount{}
		return nil
	}
	var out map[string]int
	if err := json.Unmarshal(raw, &out); err != nil {
		*p = PositionCount{}
		return nil
	}
	*p = out
	return nil
}

func (p PositionCount) Value() (driver.Value, error) {
	if p == nil {
		p = PositionCount{}
	}
	b, err := json.Marshal(map[string]int(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// PositionTags maps position name to required competency tags, stored as a
// JSON object.
type PositionTags map[string][]string

func (p *PositionTags) Scan(value interface{}) error {
	raw, err := rawBytes(value)
	if err != nil {
		return err
	}
	if raw == nil {
		*p = PositionTags{}
		return nil
	}
	var out map[string][]string
	if err := json.Unmarshal(raw, &out); err != nil {
		*p = PositionTags{}
		return nil
	}
	*p = out
	return nil
}

func (p PositionTags) Value() (driver.Value, error) {
	if p == nil {
		p = PositionTags{}
	}
	b, err := json.Marshal(map[string][]string(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func rawBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("types: cannot scan %T", value)
	}
}

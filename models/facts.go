// facts.go - FactMap, the free-form key/value annotations on a tree

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// FactMap is an unordered string-to-string map persisted as a JSON TEXT
// column. A nil map marshals and stores as {} so the column never holds NULL.
type FactMap map[string]string

// Value implements driver.Valuer.
func (f FactMap) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (f *FactMap) Scan(value any) error {
	if value == nil {
		*f = FactMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("facts: cannot scan %T", value)
	}
	if len(data) == 0 {
		*f = FactMap{}
		return nil
	}
	m := FactMap{}
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("facts: %w", err)
	}
	*f = m
	return nil
}

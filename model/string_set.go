package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSet is an ordered set of strings stored as a json array column.
// Duplicates are dropped keeping the first occurrence.
type StringSet []string

func NewStringSet(values ...string) StringSet {
	seen := make(map[string]bool, len(values))
	set := StringSet{}
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		set = append(set, v)
	}
	return set
}

func (s StringSet) Value() (driver.Value, error) {
	bytes, err := json.Marshal([]string(NewStringSet(s...)))
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}

func (s *StringSet) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		*s = StringSet{}
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringSet", value)
	}
	var values []string
	if err := json.Unmarshal(bytes, &values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}

// GormDataType makes AutoMigrate create a json column.
func (StringSet) GormDataType() string {
	return "json"
}

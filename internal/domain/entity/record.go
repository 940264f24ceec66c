package entity

import (
	"bytes"
	"encoding/json"
)

// Field one named value of a Record
type Field struct {
	Name  string
	Value string
}

// Record is a flat, ordered mapping from field name to value. It marshals to a
// JSON object whose keys keep the column order of the source file.
type Record []Field

// Get returns the value of the named field.
func (r Record) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Map returns the record as a plain map. Field order is lost.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r))
	for _, f := range r {
		m[f.Name] = f.Value
	}
	return m
}

// MarshalJSON writes the fields in order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

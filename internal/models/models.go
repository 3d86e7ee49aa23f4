package models

import (
	"bytes"
	"encoding/json"
)

// JSONValue is a generic type to represent any JSON value.
// Scalars are nil, bool, string or json.Number; containers are *JSONObject
// and JSONArray.
type JSONValue interface{}

// JSONObject represents a JSON object. Unlike a plain map it remembers the
// order in which its keys first appeared in the source document.
type JSONObject struct {
	keys   []string
	values map[string]JSONValue
}

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// NewObject returns an empty JSONObject.
func NewObject() *JSONObject {
	return &JSONObject{values: make(map[string]JSONValue)}
}

// Set stores value under key. A key that is already present keeps its
// original position and has its value replaced, matching the "last one
// wins" rule encoding/json applies to duplicate keys.
func (o *JSONObject) Set(key string, value JSONValue) {
	if o.values == nil {
		o.values = make(map[string]JSONValue)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key. It is safe to call on a nil object.
func (o *JSONObject) Get(key string) (JSONValue, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *JSONObject) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (o *JSONObject) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of keys.
func (o *JSONObject) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// MarshalJSON encodes the object with its keys in insertion order.
func (o *JSONObject) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, o.values[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeJSON leaves HTML escaping to the outermost encoder.
func writeJSON(buf *bytes.Buffer, v interface{}) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode always appends a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Document is a parsed JSON file together with the raw text it came from.
type Document struct {
	Path string
	Raw  string
	Root JSONValue
	// KeyOffsets holds the byte offset of the opening quote of each
	// top-level key's first occurrence. Empty when the root is not an object.
	KeyOffsets map[string]int
}

// RootIsArray reports whether the document root is an array.
func (d *Document) RootIsArray() bool {
	_, ok := d.Root.(JSONArray)
	return ok
}

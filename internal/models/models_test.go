package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func object(pairs ...interface{}) *JSONObject {
	obj := NewObject()
	for i := 0; i < len(pairs); i += 2 {
		obj.Set(pairs[i].(string), pairs[i+1])
	}
	return obj
}

func TestJSONObject_PreservesInsertionOrder(t *testing.T) {
	obj := object("b", json.Number("1"), "a", json.Number("2"), "c", nil)

	assert.Equal(t, []string{"b", "a", "c"}, obj.Keys())
	assert.Equal(t, 3, obj.Len())

	// Replacing a value keeps the key where it was first seen
	obj.Set("b", "replaced")
	assert.Equal(t, []string{"b", "a", "c"}, obj.Keys())
	v, ok := obj.Get("b")
	require.True(t, ok)
	assert.Equal(t, "replaced", v)
}

func TestJSONObject_NilReceiver(t *testing.T) {
	var obj *JSONObject

	v, ok := obj.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.False(t, obj.Has("missing"))
	assert.Nil(t, obj.Keys())
	assert.Equal(t, 0, obj.Len())
}

func TestJSONObject_HasNullValue(t *testing.T) {
	obj := object("city", nil)
	assert.True(t, obj.Has("city"))
}

func TestJSONObject_MarshalJSON(t *testing.T) {
	obj := object(
		"zeta", json.Number("1.50"),
		"alpha", JSONArray{"x", true, nil},
		"nested", object("k", "v"),
	)

	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1.50,"alpha":["x",true,null],"nested":{"k":"v"}}`, string(data))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		value    JSONValue
		expected Kind
	}{
		{"null", nil, KindNull},
		{"bool", false, KindBool},
		{"number", json.Number("3"), KindNumber},
		{"string", "3", KindString},
		{"array", JSONArray{}, KindArray},
		{"object", NewObject(), KindObject},
		{"unsupported", 3.0, KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.value))
			assert.Equal(t, tt.name != "unsupported", tt.expected.String() == tt.name)
		})
	}
}

func TestSameContainerKind(t *testing.T) {
	assert.True(t, SameContainerKind(NewObject(), NewObject()))
	assert.True(t, SameContainerKind(JSONArray{}, JSONArray{json.Number("1")}))
	assert.False(t, SameContainerKind(NewObject(), JSONArray{}))
	assert.False(t, SameContainerKind(json.Number("1"), JSONArray{json.Number("1")}))
	assert.False(t, SameContainerKind("a", "a"))
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     JSONValue
		expected bool
	}{
		{"null equals null", nil, nil, true},
		{"bools", true, true, true},
		{"different bools", true, false, false},
		{"strings", "x", "x", true},
		{"different strings", "x", "y", false},
		{"number and string with same text", json.Number("1"), "1", false},
		{"same number text", json.Number("42"), json.Number("42"), true},
		{"numerically equal numbers", json.Number("1"), json.Number("1.0"), true},
		{"exponent notation", json.Number("1e2"), json.Number("100"), true},
		{"different numbers", json.Number("1"), json.Number("2"), false},
		{"object vs array", NewObject(), JSONArray{}, false},
		{"null vs empty object", nil, NewObject(), false},
		{"arrays", JSONArray{"a", json.Number("1")}, JSONArray{"a", json.Number("1")}, true},
		{"array order matters", JSONArray{"a", "b"}, JSONArray{"b", "a"}, false},
		{"array length", JSONArray{"a"}, JSONArray{"a", "b"}, false},
		{
			"object key order does not matter",
			object("a", json.Number("1"), "b", json.Number("2")),
			object("b", json.Number("2"), "a", json.Number("1")),
			true,
		},
		{
			"object missing key",
			object("a", json.Number("1")),
			object("a", json.Number("1"), "b", nil),
			false,
		},
		{
			"nested difference",
			object("a", object("b", JSONArray{json.Number("1")})),
			object("a", object("b", JSONArray{json.Number("2")})),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Equal(tt.a, tt.b))
			assert.Equal(t, tt.expected, Equal(tt.b, tt.a))
		})
	}
}

func TestDocument_RootIsArray(t *testing.T) {
	assert.True(t, (&Document{Root: JSONArray{}}).RootIsArray())
	assert.False(t, (&Document{Root: NewObject()}).RootIsArray())
	assert.False(t, (&Document{Root: nil}).RootIsArray())
}

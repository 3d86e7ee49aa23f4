package models

import (
	"encoding/json"
	"math/big"
)

// Kind identifies which JSON type a value holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// KindOf returns the kind of v.
func KindOf(v JSONValue) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case json.Number:
		return KindNumber
	case string:
		return KindString
	case JSONArray:
		return KindArray
	case *JSONObject:
		return KindObject
	default:
		return KindInvalid
	}
}

// IsContainer reports whether v is an object or an array.
func IsContainer(v JSONValue) bool {
	k := KindOf(v)
	return k == KindObject || k == KindArray
}

// SameContainerKind reports whether a and b are both objects or both arrays.
func SameContainerKind(a, b JSONValue) bool {
	return IsContainer(a) && KindOf(a) == KindOf(b)
}

// Equal reports whether a and b are structurally equal. Values of different
// kinds are never equal. Object key order is not significant; numbers are
// compared by exact numeric value.
func Equal(a, b JSONValue) bool {
	if KindOf(a) != KindOf(b) {
		return false
	}
	switch av := a.(type) {
	case nil:
		return true
	case bool:
		return av == b.(bool)
	case string:
		return av == b.(string)
	case json.Number:
		return numbersEqual(av, b.(json.Number))
	case JSONArray:
		bv := b.(JSONArray)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *JSONObject:
		bv := b.(*JSONObject)
		if av.Len() != bv.Len() {
			return false
		}
		for _, key := range av.keys {
			other, ok := bv.Get(key)
			if !ok || !Equal(av.values[key], other) {
				return false
			}
		}
		return true
	}
	return false
}

func numbersEqual(a, b json.Number) bool {
	if a == b {
		return true
	}
	ra, ok := new(big.Rat).SetString(string(a))
	if !ok {
		return false
	}
	rb, ok := new(big.Rat).SetString(string(b))
	if !ok {
		return false
	}
	return ra.Cmp(rb) == 0
}

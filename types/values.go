// Package types provides the value types shared by the event tree packages.
package types

import (
	"github.com/casualjim/eventtree/pkg/jsonx"
	json "github.com/goccy/go-json"
)

// Values is the structured value carried through the event tree. It is used both
// for the context passed to a trigger and for the options attached to a
// registration. The tree never inspects or modifies it; handlers receive the same
// map that was handed to the tree.
//
// Example usage:
//
//	tree.On("order.created", types.Values{"channel": "email"}, notify)
//	tree.Trigger("order.created", types.Values{"order_id": 42})
//
// Thread Safety:
// Values is a map type and is not safe for concurrent modification.
type Values map[string]any

// OrEmpty returns v, or an empty Values when v is nil. It implements the
// "defaults to an empty structured value" rule for omitted options and contexts.
func (v Values) OrEmpty() Values {
	if v == nil {
		return Values{}
	}
	return v
}

// String returns a JSON string representation of the Values.
// If marshaling fails, it returns an empty string.
func (v Values) String() string {
	if v == nil {
		return "{}"
	}
	b, err := json.Marshal(map[string]any(v))
	if err != nil {
		return ""
	}
	return string(b)
}

// ValuesOf converts a struct or map into Values by round-tripping it through JSON,
// so struct fields appear under their json tag names and numbers become float64.
// JSON text passed as a json.RawMessage is decoded directly; it must hold an
// object. A nil input yields an empty Values.
func ValuesOf(val any) (Values, error) {
	if val == nil {
		return Values{}, nil
	}
	if v, ok := val.(Values); ok {
		return v, nil
	}
	m, err := jsonx.ToDynamicJSON(val)
	if err != nil {
		return nil, err
	}
	return Values(m), nil
}

package provenance

import (
	"encoding/json"
	"fmt"
)

// Meta is the open-ended metadata map attached to a record. Producers
// put whatever they want here; consumers get a narrow variant type
// instead of raw interface{} values.
type Meta map[string]Value

// Kind discriminates the payload held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindMap
	KindList
)

// Value is one metadata entry: a string, number, bool, nested map, or
// list. JSON null decodes to the zero Value.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	m    Meta
	list []Value
}

// String builds a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number builds a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool builds a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind reports which payload the value carries.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string payload, if any.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsNumber returns the numeric payload, if any.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsBool returns the boolean payload, if any.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsMap returns the nested map payload, if any.
func (v Value) AsMap() (Meta, bool) { return v.m, v.kind == KindMap }

// AsList returns the list payload, if any.
func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }

// UnmarshalJSON decodes any JSON value into the matching variant.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	converted, err := fromAny(raw)
	if err != nil {
		return err
	}
	*v = converted
	return nil
}

// MarshalJSON re-encodes the variant as plain JSON, so a loaded record
// round-trips byte-compatibly with what the producer wrote.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// Interface unwraps the variant into plain Go values. Used where a
// dynamic view is genuinely needed, e.g. filter expression evaluation.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindMap:
		return v.m.Interface()
	case KindList:
		out := make([]interface{}, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// Interface unwraps the whole map into map[string]interface{}.
func (m Meta) Interface() map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v.Interface()
	}
	return out
}

func fromAny(raw interface{}) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Value{}, nil
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case map[string]interface{}:
		m := make(Meta, len(t))
		for k, item := range t {
			converted, err := fromAny(item)
			if err != nil {
				return Value{}, err
			}
			m[k] = converted
		}
		return Value{kind: KindMap, m: m}, nil
	case []interface{}:
		list := make([]Value, len(t))
		for i, item := range t {
			converted, err := fromAny(item)
			if err != nil {
				return Value{}, err
			}
			list[i] = converted
		}
		return Value{kind: KindList, list: list}, nil
	default:
		return Value{}, fmt.Errorf("unsupported metadata value type %T", raw)
	}
}

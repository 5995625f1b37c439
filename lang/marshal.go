package lang

import "encoding/json"

// ToNative converts v to plain Go types suitable for encoding: nil,
// bool, int64, float64, string, or []any. Function values render as
// their string form.
func (v Value) ToNative() any {
	switch v.typ {
	case TypeNull:
		return nil
	case TypeBool:
		return v.b
	case TypeInt:
		return v.i
	case TypeFloat:
		return v.f
	case TypeString:
		return v.s
	case TypeList:
		items := make([]any, len(v.list))
		for i, item := range v.list {
			items[i] = item.ToNative()
		}
		return items
	default:
		return v.AsString()
	}
}

// MarshalJSON implements [json.Marshaler] via [Value.ToNative].
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToNative())
}

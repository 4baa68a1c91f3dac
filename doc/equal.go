package doc

import "bytes"

// Equal compares two values deeply. Kinds never compare equal across each
// other, so Int32(1) and Int64(1) differ.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int32:
		bv, ok := b.(Int32)
		return ok && av == bv
	case Int64:
		bv, ok := b.(Int64)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Binary:
		bv, ok := b.(Binary)
		return ok && av.Subtype == bv.Subtype && bytes.Equal(av.Data, bv.Data)
	case DateTime:
		bv, ok := b.(DateTime)
		return ok && av == bv
	case ID:
		bv, ok := b.(ID)
		return ok && av == bv
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Doc:
		bv, ok := b.(*Doc)
		return ok && av.Equal(bv)
	case Ref:
		bv, ok := b.(Ref)
		return ok && av.Collection == bv.Collection && Equal(av.Value, bv.Value)
	}
	return false
}

// Clone deep-copies a value. Scalar kinds are returned as-is.
func Clone(v Value) Value {
	switch val := v.(type) {
	case Binary:
		return Binary{Subtype: val.Subtype, Data: bytes.Clone(val.Data)}
	case List:
		out := make(List, len(val))
		for i, elem := range val {
			out[i] = Clone(elem)
		}
		return out
	case *Doc:
		return val.Clone()
	case Ref:
		return Ref{Collection: val.Collection, Value: Clone(val.Value)}
	default:
		return v
	}
}

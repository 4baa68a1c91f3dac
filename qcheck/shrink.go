package qcheck

import (
	"math/rand/v2"
	"slices"

	"qdoc/doc"
)

const reductionBudget = 10

// Simplify performs one randomized simplification step and reports whether
// anything changed. A document drops one field or simplifies one value; a
// list drops one element or simplifies one element. Scalars and references
// never change. The input is never mutated; a changed result is an
// independent copy of the same top-level kind.
func Simplify(r *rand.Rand, v doc.Value) (doc.Value, bool) {
	switch val := v.(type) {
	case *doc.Doc:
		if val.Len() == 0 {
			return v, false
		}
		keys := val.Keys()
		key := keys[r.IntN(len(keys))]
		c := val.Clone()
		if r.IntN(2) == 0 {
			c.Delete(key)
			return c, true
		}
		inner, _ := c.Get(key)
		simplified, changed := Simplify(r, inner)
		if !changed {
			return v, false
		}
		c.Set(key, simplified)
		return c, true

	case doc.List:
		if len(val) == 0 {
			return v, false
		}
		i := r.IntN(len(val))
		c := doc.Clone(val).(doc.List)
		if r.IntN(2) == 0 {
			return slices.Delete(c, i, i+1), true
		}
		simplified, changed := Simplify(r, c[i])
		if !changed {
			return v, false
		}
		c[i] = simplified
		return c, true

	default:
		return v, false
	}
}

// Reduce hill-climbs toward a smaller value that still falsifies pred. Each
// adopted simplification resets the attempt budget; once the budget is spent
// without an adoptable candidate, the count of adopted steps and the current
// value are returned. Values outside the document domain are treated as
// already minimal.
func Reduce[T any](r *rand.Rand, v T, pred func(T) bool) (int, T) {
	count := 0
	attempts := 0
	for attempts < reductionBudget {
		candidate, changed := simplifyValue(r, v)
		if changed && !pred(candidate) {
			v = candidate
			count++
			attempts = 0
			continue
		}
		attempts++
	}
	return count, v
}

func simplifyValue[T any](r *rand.Rand, v T) (T, bool) {
	dv, ok := any(v).(doc.Value)
	if !ok {
		return v, false
	}
	simplified, changed := Simplify(r, dv)
	if !changed {
		return v, false
	}
	out, ok := any(simplified).(T)
	if !ok {
		return v, false
	}
	return out, true
}

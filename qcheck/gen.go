// Package qcheck is a generative testing engine for the document value
// domain: generator combinators, a trial-running checker, and a randomized
// counterexample shrinker.
package qcheck

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

// Gen produces one value per call from an explicit randomness source.
type Gen[T any] func(r *rand.Rand) T

func Const[T any](v T) Gen[T] {
	return func(*rand.Rand) T { return v }
}

// OneConstOf draws uniformly from a fixed set of values. It panics when the
// set is empty.
func OneConstOf[T any](values ...T) Gen[T] {
	if len(values) == 0 {
		panic("qcheck: OneConstOf needs at least one value")
	}
	return func(r *rand.Rand) T {
		return values[r.IntN(len(values))]
	}
}

// OneGenOf picks one of the given generators uniformly, then draws from it.
// It panics when given no generators.
func OneGenOf[T any](gens ...Gen[T]) Gen[T] {
	if len(gens) == 0 {
		panic("qcheck: OneGenOf needs at least one generator")
	}
	return func(r *rand.Rand) T {
		return gens[r.IntN(len(gens))](r)
	}
}

func Map[T, U any](g Gen[T], f func(T) U) Gen[U] {
	return func(r *rand.Rand) U {
		return f(g(r))
	}
}

// IntRange draws uniformly from the closed interval [lo, hi]. It panics when
// the bounds are inverted.
func IntRange(lo, hi int) Gen[int] {
	if hi < lo {
		panic("qcheck: IntRange bounds are inverted")
	}
	return func(r *rand.Rand) int {
		return lo + r.IntN(hi-lo+1)
	}
}

func Int32() Gen[int32] {
	return func(r *rand.Rand) int32 {
		return int32(r.Uint32())
	}
}

func Int64() Gen[int64] {
	return func(r *rand.Rand) int64 {
		return int64(r.Uint64())
	}
}

// Float64 draws from both signs with magnitudes up to half of MaxInt64.
// It never produces NaN or infinities.
func Float64() Gen[float64] {
	return func(r *rand.Rand) float64 {
		return (r.Float64() - 0.5) * float64(math.MaxInt64)
	}
}

func Bool() Gen[bool] {
	return func(r *rand.Rand) bool {
		return r.IntN(2) == 0
	}
}

func SliceOf[T any](elem Gen[T], length Gen[int]) Gen[[]T] {
	return func(r *rand.Rand) []T {
		out := make([]T, length(r))
		for i := range out {
			out[i] = elem(r)
		}
		return out
	}
}

// AnyString draws strings of code points 0 through 255.
func AnyString(length Gen[int]) Gen[string] {
	return runeString(length, 0, 255, "")
}

// PrintableString draws strings of printable ASCII, code points 32 through 126.
func PrintableString(length Gen[int]) Gen[string] {
	return runeString(length, 32, 126, "")
}

// UnicodeString draws strings of code points 1 through 0xFFF, filtering out
// the reserved characters '.' and '$'. Filtering happens after the length is
// drawn, so results may come out shorter.
func UnicodeString(length Gen[int]) Gen[string] {
	return runeString(length, 1, 0xFFF, ".$")
}

func runeString(length Gen[int], lo, hi rune, exclude string) Gen[string] {
	return func(r *rand.Rand) string {
		n := length(r)
		var sb strings.Builder
		for range n {
			c := lo + rune(r.IntN(int(hi-lo)+1))
			if strings.ContainsRune(exclude, c) {
				continue
			}
			sb.WriteRune(c)
		}
		return sb.String()
	}
}

func Bytes(length Gen[int]) Gen[[]byte] {
	return func(r *rand.Rand) []byte {
		out := make([]byte, length(r))
		for i := range out {
			out[i] = byte(r.IntN(256))
		}
		return out
	}
}

// Time draws UTC instants between 1970 and 2037 at millisecond resolution.
// Days stop at 28 so every drawn date is valid in its month.
func Time() Gen[time.Time] {
	return func(r *rand.Rand) time.Time {
		return time.Date(
			1970+r.IntN(68),
			time.Month(1+r.IntN(12)),
			1+r.IntN(28),
			r.IntN(24),
			r.IntN(60),
			r.IntN(60),
			r.IntN(1000)*int(time.Millisecond),
			time.UTC,
		)
	}
}

// Not negates a predicate.
func Not[T any](pred func(T) bool) func(T) bool {
	return func(v T) bool {
		return !pred(v)
	}
}

package qcheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qdoc/doc"
	"qdoc/qcheck"
)

func TestSimplifyLeaves(t *testing.T) {
	leaves := []doc.Value{
		doc.Null{},
		doc.Bool(true),
		doc.Int32(-7),
		doc.Int64(1 << 40),
		doc.Float(2.5),
		doc.String("unchanged"),
		doc.Binary{Subtype: 3, Data: []byte{1, 2}},
		doc.DateTime(123456),
		doc.NewID(),
		doc.Ref{Collection: "c", Value: doc.List{doc.Int32(1), doc.Int32(2)}},
	}

	r := newRand(40)
	for _, leaf := range leaves {
		for range 50 {
			out, changed := qcheck.Simplify(r, leaf)

			require.False(t, changed, "leaf %s must not simplify", leaf)
			require.True(t, doc.Equal(leaf, out))
		}
	}
}

func TestSimplifyEmptyContainers(t *testing.T) {
	r := newRand(41)

	for range 50 {
		_, changed := qcheck.Simplify(r, doc.New())
		require.False(t, changed)

		_, changed = qcheck.Simplify(r, doc.List{})
		require.False(t, changed)
	}
}

func TestSimplifyDocuments(t *testing.T) {
	build := func() *doc.Doc {
		return doc.New().
			Set("a", doc.Int32(1)).
			Set("list", doc.List{doc.Int32(1), doc.Int32(2)}).
			Set("nested", doc.New().Set("x", doc.Bool(true)))
	}

	t.Run("a changed result is strictly smaller and stays a document", func(t *testing.T) {
		r := newRand(42)
		original := build()

		sawChange := false
		for range 300 {
			out, changed := qcheck.Simplify(r, original)
			if !changed {
				continue
			}
			sawChange = true

			smaller, ok := out.(*doc.Doc)
			require.True(t, ok, "simplify must preserve the top-level kind")
			require.Less(t, nodeCount(smaller), nodeCount(original))
		}

		assert.True(t, sawChange)
	})

	t.Run("the input document is never mutated", func(t *testing.T) {
		r := newRand(43)
		original := build()
		pristine := build()

		for range 300 {
			qcheck.Simplify(r, original)
		}

		assert.True(t, pristine.Equal(original))
	})

	t.Run("both the drop and the recurse moves are exercised", func(t *testing.T) {
		r := newRand(44)
		original := build()

		droppedField := false
		simplifiedInner := false
		for range 500 {
			out, changed := qcheck.Simplify(r, original)
			if !changed {
				continue
			}
			d := out.(*doc.Doc)
			if d.Len() < original.Len() {
				droppedField = true
			} else {
				simplifiedInner = true
			}
		}

		assert.True(t, droppedField)
		assert.True(t, simplifiedInner)
	})
}

func TestSimplifyLists(t *testing.T) {
	original := doc.List{
		doc.Int32(1),
		doc.List{doc.Int32(2), doc.Int32(3)},
		doc.String("s"),
	}

	t.Run("a changed result is strictly smaller and stays a list", func(t *testing.T) {
		r := newRand(45)

		sawChange := false
		for range 300 {
			out, changed := qcheck.Simplify(r, original)
			if !changed {
				continue
			}
			sawChange = true

			smaller, ok := out.(doc.List)
			require.True(t, ok, "simplify must preserve the top-level kind")
			require.Less(t, nodeCount(smaller), nodeCount(original))
		}

		assert.True(t, sawChange)
	})

	t.Run("the input list is never mutated", func(t *testing.T) {
		r := newRand(46)
		pristine := doc.Clone(original)

		for range 300 {
			qcheck.Simplify(r, original)
		}

		assert.True(t, doc.Equal(pristine, original))
	})
}

func TestReduceLeaves(t *testing.T) {
	t.Run("values outside the document domain stay put", func(t *testing.T) {
		r := newRand(47)

		n, v := qcheck.Reduce(r, 1, isEven)

		assert.Zero(t, n)
		assert.Equal(t, 1, v)
	})

	t.Run("scalar document values stay put", func(t *testing.T) {
		r := newRand(48)

		n, v := qcheck.Reduce(r, doc.Value(doc.Int32(5)), func(doc.Value) bool { return false })

		assert.Zero(t, n)
		assert.True(t, doc.Equal(doc.Int32(5), v))
	})
}

func TestReduceAlwaysFalse(t *testing.T) {
	t.Run("a flat document counts one reduction per dropped field", func(t *testing.T) {
		drained := false
		for seed := range uint64(20) {
			r := newRand(400 + seed)
			d := doc.New().
				Set("a", doc.Int32(1)).
				Set("b", doc.Int32(2)).
				Set("c", doc.Int32(3)).
				Set("d", doc.Int32(4)).
				Set("e", doc.Int32(5))

			n, minimized := qcheck.Reduce(r, d, func(*doc.Doc) bool { return false })

			require.Equal(t, 5-minimized.Len(), n)
			if minimized.Len() == 0 {
				drained = true
			}
		}

		assert.True(t, drained, "at least one run should drain the document completely")
	})

	t.Run("reduction terminates on deep random structures", func(t *testing.T) {
		r := newRand(50)
		gen := qcheck.AnyDoc(4, true)

		for range 20 {
			d := gen(r)
			_, minimized := qcheck.Reduce(r, d, func(*doc.Doc) bool { return false })
			assert.LessOrEqual(t, minimized.Len(), d.Len())
		}
	})
}

func nodeCount(v doc.Value) int {
	switch val := v.(type) {
	case doc.List:
		total := 1
		for _, elem := range val {
			total += nodeCount(elem)
		}
		return total
	case *doc.Doc:
		total := 1
		for _, inner := range val.Values() {
			total += nodeCount(inner)
		}
		return total
	default:
		return 1
	}
}

package doc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qdoc/doc"
)

func TestDocSetGet(t *testing.T) {
	t.Run("set then get returns the value", func(t *testing.T) {
		d := doc.New().Set("name", doc.String("widget"))

		v, ok := d.Get("name")

		require.True(t, ok)
		assert.True(t, doc.Equal(doc.String("widget"), v))
	})

	t.Run("get of a missing key reports absence", func(t *testing.T) {
		d := doc.New()

		v, ok := d.Get("missing")

		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("overwriting a key keeps its original position", func(t *testing.T) {
		d := doc.New().
			Set("a", doc.Int32(1)).
			Set("b", doc.Int32(2)).
			Set("a", doc.Int32(3))

		assert.Equal(t, []string{"a", "b"}, d.Keys())
		v, _ := d.Get("a")
		assert.True(t, doc.Equal(doc.Int32(3), v))
		assert.Equal(t, 2, d.Len())
	})

	t.Run("zero value document is usable", func(t *testing.T) {
		var d doc.Doc
		d.Set("k", doc.Bool(true))

		assert.Equal(t, 1, d.Len())
	})
}

func TestDocDelete(t *testing.T) {
	t.Run("deleting removes the key and closes the order gap", func(t *testing.T) {
		d := doc.New().
			Set("a", doc.Int32(1)).
			Set("b", doc.Int32(2)).
			Set("c", doc.Int32(3))

		ok := d.Delete("b")

		require.True(t, ok)
		assert.Equal(t, []string{"a", "c"}, d.Keys())
		_, found := d.Get("b")
		assert.False(t, found)
	})

	t.Run("deleting a missing key reports false", func(t *testing.T) {
		d := doc.New().Set("a", doc.Int32(1))

		assert.False(t, d.Delete("zzz"))
		assert.Equal(t, 1, d.Len())
	})

	t.Run("re-setting a deleted key appends it at the end", func(t *testing.T) {
		d := doc.New().
			Set("a", doc.Int32(1)).
			Set("b", doc.Int32(2))
		d.Delete("a")

		d.Set("a", doc.Int32(9))

		assert.Equal(t, []string{"b", "a"}, d.Keys())
	})
}

func TestDocIteration(t *testing.T) {
	t.Run("keys and values follow insertion order", func(t *testing.T) {
		d := doc.New().
			Set("z", doc.Int32(26)).
			Set("a", doc.Int32(1)).
			Set("m", doc.Int32(13))

		assert.Equal(t, []string{"z", "a", "m"}, d.Keys())
		values := d.Values()
		require.Len(t, values, 3)
		assert.True(t, doc.Equal(doc.Int32(26), values[0]))
		assert.True(t, doc.Equal(doc.Int32(13), values[2]))
	})

	t.Run("all pairs arrive in insertion order", func(t *testing.T) {
		d := doc.New().
			Set("first", doc.Int32(1)).
			Set("second", doc.Int32(2))

		var keys []string
		for k, v := range d.All() {
			keys = append(keys, k)
			assert.NotNil(t, v)
		}

		assert.Equal(t, []string{"first", "second"}, keys)
	})

	t.Run("mutating the returned key slice leaves the document intact", func(t *testing.T) {
		d := doc.New().Set("a", doc.Int32(1)).Set("b", doc.Int32(2))

		keys := d.Keys()
		keys[0] = "corrupted"

		assert.Equal(t, []string{"a", "b"}, d.Keys())
	})
}

func TestDocEqual(t *testing.T) {
	t.Run("same pairs in same order are equal", func(t *testing.T) {
		a := doc.New().Set("x", doc.Int32(1)).Set("y", doc.String("s"))
		b := doc.New().Set("x", doc.Int32(1)).Set("y", doc.String("s"))

		assert.True(t, a.Equal(b))
	})

	t.Run("same pairs in different order are not equal", func(t *testing.T) {
		a := doc.New().Set("x", doc.Int32(1)).Set("y", doc.Int32(2))
		b := doc.New().Set("y", doc.Int32(2)).Set("x", doc.Int32(1))

		assert.False(t, a.Equal(b))
	})

	t.Run("value kind participates in equality", func(t *testing.T) {
		a := doc.New().Set("n", doc.Int32(1))
		b := doc.New().Set("n", doc.Int64(1))

		assert.False(t, a.Equal(b))
	})

	t.Run("nested documents compare deeply", func(t *testing.T) {
		a := doc.New().Set("inner", doc.New().Set("k", doc.Bool(true)))
		b := doc.New().Set("inner", doc.New().Set("k", doc.Bool(true)))
		c := doc.New().Set("inner", doc.New().Set("k", doc.Bool(false)))

		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c))
	})
}

func TestDocClone(t *testing.T) {
	t.Run("clone equals the original", func(t *testing.T) {
		d := doc.New().
			Set("s", doc.String("text")).
			Set("nested", doc.New().Set("n", doc.Int64(42)))

		c := d.Clone()

		assert.True(t, d.Equal(c))
	})

	t.Run("mutating the clone leaves the original untouched", func(t *testing.T) {
		d := doc.New().Set("nested", doc.New().Set("n", doc.Int32(1)))

		c := d.Clone()
		inner, ok := c.Get("nested")
		require.True(t, ok)
		inner.(*doc.Doc).Set("n", doc.Int32(999))
		c.Set("extra", doc.Null{})

		assert.Equal(t, 1, d.Len())
		orig, _ := d.Get("nested")
		v, _ := orig.(*doc.Doc).Get("n")
		assert.True(t, doc.Equal(doc.Int32(1), v))
	})

	t.Run("binary payloads are copied, not shared", func(t *testing.T) {
		d := doc.New().Set("b", doc.Binary{Subtype: 2, Data: []byte{1, 2, 3}})

		c := d.Clone()
		v, _ := c.Get("b")
		v.(doc.Binary).Data[0] = 99

		orig, _ := d.Get("b")
		assert.Equal(t, byte(1), orig.(doc.Binary).Data[0])
	})
}

func TestDocString(t *testing.T) {
	t.Run("renders pairs in order", func(t *testing.T) {
		d := doc.New().
			Set("n", doc.Int32(7)).
			Set("s", doc.String("hi"))

		assert.Equal(t, `{"n": 7, "s": "hi"}`, d.String())
	})

	t.Run("empty document renders as braces", func(t *testing.T) {
		assert.Equal(t, "{}", doc.New().String())
	})
}

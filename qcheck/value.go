package qcheck

import (
	"math/rand/v2"
	"time"

	"qdoc/doc"
)

const (
	maxKeyLen       = 20
	maxContainerLen = 10
	maxTextLen      = 50
	maxBinaryLen    = 1000
)

func ListOf(elem Gen[doc.Value], length Gen[int]) Gen[doc.List] {
	return func(r *rand.Rand) doc.List {
		out := make(doc.List, length(r))
		for i := range out {
			out[i] = elem(r)
		}
		return out
	}
}

// DocOf builds documents by drawing length pairs. Duplicate keys overwrite,
// so the resulting document can hold fewer fields than drawn.
func DocOf(key Gen[string], value Gen[doc.Value], length Gen[int]) Gen[*doc.Doc] {
	return func(r *rand.Rand) *doc.Doc {
		d := doc.New()
		n := length(r)
		for range n {
			d.Set(key(r), value(r))
		}
		return d
	}
}

// AnyValue draws a value of any kind, nesting at most depth container levels
// below it. With refs enabled the mix also includes database references;
// a reference payload carries its own one-level budget.
func AnyValue(depth int, refs bool) Gen[doc.Value] {
	choices := []Gen[doc.Value]{
		Map(UnicodeString(IntRange(0, maxTextLen)), func(s string) doc.Value { return doc.String(s) }),
		Map(PrintableString(IntRange(0, maxTextLen)), func(s string) doc.Value { return doc.String(s) }),
		Map(Bytes(IntRange(0, maxBinaryLen)), func(b []byte) doc.Value { return doc.Binary{Data: b} }),
		Map(Int32(), func(n int32) doc.Value { return doc.Int32(n) }),
		Map(Int64(), func(n int64) doc.Value { return doc.Int64(n) }),
		Map(Float64(), func(f float64) doc.Value { return doc.Float(f) }),
		Map(Bool(), func(b bool) doc.Value { return doc.Bool(b) }),
		Map(Time(), func(t time.Time) doc.Value { return doc.NewDateTime(t) }),
		Map(AnyID(), func(id doc.ID) doc.Value { return id }),
		Const[doc.Value](doc.Null{}),
	}
	if refs {
		choices = append(choices, Map(AnyRef(), func(ref doc.Ref) doc.Value { return ref }))
	}
	if depth > 0 {
		choices = append(choices,
			Map(AnyList(depth, refs), func(l doc.List) doc.Value { return l }),
			Map(AnyDoc(depth, refs), func(d *doc.Doc) doc.Value { return d }),
		)
	}
	return OneGenOf(choices...)
}

func AnyList(depth int, refs bool) Gen[doc.List] {
	return ListOf(AnyValue(depth-1, refs), IntRange(0, maxContainerLen))
}

func AnyDoc(depth int, refs bool) Gen[*doc.Doc] {
	return DocOf(docKey(), AnyValue(depth-1, refs), IntRange(0, maxContainerLen))
}

// AnyRef draws a reference whose payload is generated with references
// disabled, so reference chains never exceed one level.
func AnyRef() Gen[doc.Ref] {
	collection := UnicodeString(IntRange(0, maxKeyLen))
	value := AnyValue(1, false)
	return func(r *rand.Rand) doc.Ref {
		return doc.Ref{Collection: collection(r), Value: value(r)}
	}
}

// AnyID draws a fresh identifier per call. Identifiers come from the uuid
// source, not from r, so they stay unique across seeded runs.
func AnyID() Gen[doc.ID] {
	return func(*rand.Rand) doc.ID {
		return doc.NewID()
	}
}

func docKey() Gen[string] {
	return UnicodeString(IntRange(0, maxKeyLen))
}

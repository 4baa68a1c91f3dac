package proptest

import (
	"fmt"

	"pgregory.net/rapid"

	"qdoc/doc"
)

const (
	InvLenMatchesKeys      = "INV-1"
	InvKeysUnique          = "INV-2"
	InvKeysResolve         = "INV-3"
	InvValuesAligned       = "INV-4"
	InvIterationOrdered    = "INV-5"
	InvModelConsistent     = "INV-6"
	InvEncodeRoundTrip     = "INV-10"
	InvEncodeDeterministic = "INV-11"
	InvSimplifyShrinks     = "INV-20"
	InvSimplifyKeepsKind   = "INV-21"
	InvSimplifyPure        = "INV-22"
	InvScalarsTerminal     = "INV-23"
	InvReduceStillFailing  = "INV-24"
	InvDepthBounded        = "INV-30"
	InvSeedDeterministic   = "INV-31"
	InvGeneratorBounds     = "INV-32"
	InvCorpusRoundTrip     = "INV-50"
)

func verifyDocInvariants(t *rapid.T, d *doc.Doc) {
	keys := d.Keys()
	values := d.Values()

	if d.Len() != len(keys) {
		t.Fatalf("[%s] violated: Len()=%d but len(Keys())=%d", InvLenMatchesKeys, d.Len(), len(keys))
	}
	if len(values) != len(keys) {
		t.Fatalf("[%s] violated: %d keys but %d values", InvLenMatchesKeys, len(keys), len(values))
	}

	seen := make(map[string]bool)
	for i, key := range keys {
		if seen[key] {
			t.Fatalf("[%s] violated: duplicate key %q in Keys()", InvKeysUnique, key)
		}
		seen[key] = true

		v, ok := d.Get(key)
		if !ok {
			t.Fatalf("[%s] violated: listed key %q does not resolve", InvKeysResolve, key)
		}
		if !doc.Equal(v, values[i]) {
			t.Fatalf("[%s] violated: Values()[%d] diverges from Get(%q)", InvValuesAligned, i, key)
		}
	}

	i := 0
	for key, v := range d.All() {
		if key != keys[i] {
			t.Fatalf("[%s] violated: All() yields %q at position %d, Keys() has %q", InvIterationOrdered, key, i, keys[i])
		}
		if !doc.Equal(v, values[i]) {
			t.Fatalf("[%s] violated: All() value for key %q diverges", InvIterationOrdered, key)
		}
		i++
	}
	if i != len(keys) {
		t.Fatalf("[%s] violated: All() yielded %d pairs for %d keys", InvIterationOrdered, i, len(keys))
	}
}

func kindOf(v doc.Value) string {
	switch v.(type) {
	case doc.Null:
		return "null"
	case doc.Bool:
		return "bool"
	case doc.Int32:
		return "int32"
	case doc.Int64:
		return "int64"
	case doc.Float:
		return "float"
	case doc.String:
		return "string"
	case doc.Binary:
		return "binary"
	case doc.DateTime:
		return "datetime"
	case doc.ID:
		return "id"
	case doc.List:
		return "list"
	case *doc.Doc:
		return "doc"
	case doc.Ref:
		return "ref"
	}
	return fmt.Sprintf("%T", v)
}

// nodeCount counts every value in the tree, containers included. References
// count as a single node because simplification never descends into them.
func nodeCount(v doc.Value) int {
	switch val := v.(type) {
	case *doc.Doc:
		n := 1
		for _, inner := range val.Values() {
			n += nodeCount(inner)
		}
		return n
	case doc.List:
		n := 1
		for _, elem := range val {
			n += nodeCount(elem)
		}
		return n
	default:
		return 1
	}
}

// containerDepth measures document and list nesting. Scalars and references
// sit at depth zero.
func containerDepth(v doc.Value) int {
	switch val := v.(type) {
	case *doc.Doc:
		deepest := 0
		for _, inner := range val.Values() {
			deepest = max(deepest, containerDepth(inner))
		}
		return deepest + 1
	case doc.List:
		deepest := 0
		for _, elem := range val {
			deepest = max(deepest, containerDepth(elem))
		}
		return deepest + 1
	default:
		return 0
	}
}

package proptest

import (
	"testing"

	"pgregory.net/rapid"

	"qdoc/doc"
)

func TestProperty_StateMachine_DocOperations(t *testing.T) {
	RunWithDoc(t, func(h *DocHarness) {
		checked := NewCheckedDoc(h.T, h.Doc)

		h.T.Repeat(map[string]func(*rapid.T){
			"set": func(rt *rapid.T) {
				key := keyGen().Draw(rt, "key")
				checked.Set(key, GenValue(rt, WithDepth(1)))
			},

			"overwrite": func(rt *rapid.T) {
				keys := checked.Model().Keys()
				if len(keys) == 0 {
					rt.Skip("no fields to overwrite")
				}
				key := rapid.SampledFrom(keys).Draw(rt, "key")
				checked.Set(key, GenValue(rt, ScalarsOnly()))
			},

			"delete": func(rt *rapid.T) {
				keys := checked.Model().Keys()
				if len(keys) == 0 {
					rt.Skip("no fields to delete")
				}
				checked.Delete(rapid.SampledFrom(keys).Draw(rt, "key"))
			},

			"deleteMissing": func(rt *rapid.T) {
				key := keyGen().Draw(rt, "key")
				if _, ok := checked.Model().Get(key); ok {
					rt.Skip("key exists")
				}
				if checked.Delete(key) {
					rt.Fatalf("Delete(%q) reported a change for an absent key", key)
				}
			},

			"get": func(rt *rapid.T) {
				keys := checked.Model().Keys()
				if len(keys) == 0 {
					rt.Skip("no fields")
				}
				_, _ = checked.Get(rapid.SampledFrom(keys).Draw(rt, "key"))
			},

			"getMissing": func(rt *rapid.T) {
				key := keyGen().Draw(rt, "key")
				if _, ok := checked.Model().Get(key); ok {
					rt.Skip("key exists")
				}
				if _, found := checked.Get(key); found {
					rt.Fatalf("Get(%q) found an absent key", key)
				}
			},

			"clone": func(rt *rapid.T) {
				clone := h.Doc.Clone()
				if !clone.Equal(h.Doc) {
					rt.Fatalf("clone differs from its source")
				}
			},

			"roundTrip": func(rt *rapid.T) {
				data, err := doc.Marshal(h.Doc)
				if err != nil {
					rt.Fatalf("marshal: %v", err)
				}
				decoded, err := doc.Unmarshal(data)
				if err != nil {
					rt.Fatalf("unmarshal: %v", err)
				}
				assertDocsEqual(rt, h.Doc, decoded)
			},
		})
	})
}

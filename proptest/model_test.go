package proptest

import (
	"slices"

	"pgregory.net/rapid"

	"qdoc/doc"
)

// DocModel is a deliberately naive reference implementation of an ordered
// document: a flat slice of pairs with linear lookups.
type DocModel struct {
	fields []modelField
}

type modelField struct {
	key   string
	value doc.Value
}

func newDocModel() *DocModel {
	return &DocModel{}
}

func (m *DocModel) Set(key string, v doc.Value) {
	for i := range m.fields {
		if m.fields[i].key == key {
			m.fields[i].value = v
			return
		}
	}
	m.fields = append(m.fields, modelField{key: key, value: v})
}

func (m *DocModel) Delete(key string) bool {
	for i := range m.fields {
		if m.fields[i].key == key {
			m.fields = slices.Delete(m.fields, i, i+1)
			return true
		}
	}
	return false
}

func (m *DocModel) Get(key string) (doc.Value, bool) {
	for _, f := range m.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return nil, false
}

func (m *DocModel) Keys() []string {
	keys := make([]string, len(m.fields))
	for i, f := range m.fields {
		keys[i] = f.key
	}
	return keys
}

func (m *DocModel) Len() int {
	return len(m.fields)
}

// CheckedDoc mirrors every operation onto both the real document and the
// model and fails the test on any divergence.
type CheckedDoc struct {
	real  *doc.Doc
	model *DocModel
	t     *rapid.T
}

func NewCheckedDoc(t *rapid.T, d *doc.Doc) *CheckedDoc {
	return &CheckedDoc{
		real:  d,
		model: newDocModel(),
		t:     t,
	}
}

func (c *CheckedDoc) Model() *DocModel {
	return c.model
}

func (c *CheckedDoc) Set(key string, v doc.Value) {
	c.real.Set(key, v)
	c.model.Set(key, v)
	c.verify()
}

func (c *CheckedDoc) Delete(key string) bool {
	realRemoved := c.real.Delete(key)
	modelRemoved := c.model.Delete(key)
	if realRemoved != modelRemoved {
		c.t.Fatalf("Delete(%q) divergence: real=%v model=%v", key, realRemoved, modelRemoved)
	}
	c.verify()
	return realRemoved
}

func (c *CheckedDoc) Get(key string) (doc.Value, bool) {
	realValue, realOK := c.real.Get(key)
	modelValue, modelOK := c.model.Get(key)
	if realOK != modelOK {
		c.t.Fatalf("Get(%q) divergence: real=%v model=%v", key, realOK, modelOK)
	}
	if realOK && !doc.Equal(realValue, modelValue) {
		c.t.Fatalf("Get(%q) divergence: real=%v model=%v", key, realValue, modelValue)
	}
	return realValue, realOK
}

func (c *CheckedDoc) verify() {
	verifyDocInvariants(c.t, c.real)

	if c.real.Len() != c.model.Len() {
		c.t.Fatalf("[%s] violated: real holds %d fields, model %d", InvModelConsistent, c.real.Len(), c.model.Len())
	}

	realKeys := c.real.Keys()
	modelKeys := c.model.Keys()
	for i := range realKeys {
		if realKeys[i] != modelKeys[i] {
			c.t.Fatalf("[%s] violated: key order diverges at %d: real %q, model %q", InvModelConsistent, i, realKeys[i], modelKeys[i])
		}
	}

	for _, key := range modelKeys {
		want, _ := c.model.Get(key)
		got, ok := c.real.Get(key)
		if !ok || !doc.Equal(want, got) {
			c.t.Fatalf("[%s] violated: value for key %q diverges", InvModelConsistent, key)
		}
	}
}

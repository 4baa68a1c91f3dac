package proptest

import (
	"os"
	"path/filepath"
	"testing"

	"pgregory.net/rapid"

	"qdoc/doc"
)

const (
	maxValueDepth    = 3
	minDocFields     = 0
	maxContainerSize = 6
	typicalMinFields = 1
	typicalMaxFields = 8
	minCorpusEntries = 1
	maxCorpusEntries = 8
)

type ValueGenOpt func(*valueGenConfig)

type valueGenConfig struct {
	depth      *int
	scalarOnly bool
}

func WithDepth(depth int) ValueGenOpt {
	return func(c *valueGenConfig) {
		c.depth = &depth
	}
}

func ScalarsOnly() ValueGenOpt {
	return func(c *valueGenConfig) {
		c.scalarOnly = true
	}
}

func GenValue(t *rapid.T, opts ...ValueGenOpt) doc.Value {
	cfg := &valueGenConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.scalarOnly {
		return scalarGen().Draw(t, "scalar")
	}
	depth := maxValueDepth
	if cfg.depth != nil {
		depth = *cfg.depth
	}
	return valueGen(depth).Draw(t, "value")
}

type Harness struct {
	T   *rapid.T
	Dir string
}

func (h *Harness) GenValue(opts ...ValueGenOpt) doc.Value {
	return GenValue(h.T, opts...)
}

func (h *Harness) GenKey() string {
	return keyGen().Draw(h.T, "key")
}

type DocHarness struct {
	Harness
	Doc *doc.Doc
}

func (h *DocHarness) SetField(opts ...ValueGenOpt) (string, doc.Value) {
	key := h.GenKey()
	v := h.GenValue(opts...)
	h.Doc.Set(key, v)
	return key, v
}

// FillDoc draws between minCount and maxCount fields into the document and
// returns the keys it holds afterwards. Duplicate keys overwrite, so the
// result can be shorter than the drawn count.
func (h *DocHarness) FillDoc(minCount, maxCount int) []string {
	n := rapid.IntRange(minCount, maxCount).Draw(h.T, "numFields")
	for range n {
		h.SetField()
	}
	return h.Doc.Keys()
}

func RunWithDoc(t *testing.T, fn func(h *DocHarness)) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		iterDir := filepath.Join(tempDir, iterDirGen.Draw(rt, "iterDir"))
		if err := os.MkdirAll(iterDir, 0o755); err != nil {
			rt.Fatalf("failed to create iter dir: %v", err)
		}

		harness := &DocHarness{
			Harness: Harness{
				T:   rt,
				Dir: iterDir,
			},
			Doc: doc.New(),
		}

		fn(harness)
	})
}

func RunBasic(t *testing.T, fn func(h *Harness)) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		iterDir := filepath.Join(tempDir, iterDirGen.Draw(rt, "iterDir"))
		if err := os.MkdirAll(iterDir, 0o755); err != nil {
			rt.Fatalf("failed to create iter dir: %v", err)
		}

		harness := &Harness{
			T:   rt,
			Dir: iterDir,
		}

		fn(harness)
	})
}

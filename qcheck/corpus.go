package qcheck

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"qdoc/doc"
)

// CorpusEntry is one recorded counterexample. Data holds the wire encoding
// of a single-field document carrying the value, when the value was a
// document-domain value.
type CorpusEntry struct {
	Repr       string    `yaml:"repr"`
	Data       []byte    `yaml:"data,omitempty"`
	Reductions int       `yaml:"reductions"`
	Error      string    `yaml:"error,omitempty"`
	RecordedAt time.Time `yaml:"recorded_at"`
}

const corpusValueKey = "v"

// String renders the entry the way Check reports a counterexample.
func (e CorpusEntry) String() string {
	if e.Error != "" {
		return e.Repr + " : " + e.Error
	}
	return fmt.Sprintf("after %d reductions: %s", e.Reductions, e.Repr)
}

type corpusFile struct {
	Version int           `yaml:"version"`
	Entries []CorpusEntry `yaml:"entries"`
}

// Value decodes the recorded value, if one was recorded.
func (e CorpusEntry) Value() (doc.Value, bool) {
	if len(e.Data) == 0 {
		return nil, false
	}
	d, err := doc.Unmarshal(e.Data)
	if err != nil {
		return nil, false
	}
	return d.Get(corpusValueKey)
}

// SaveCorpus replaces the corpus at path with the given entries, creating
// parent directories as needed.
func SaveCorpus(path string, entries []CorpusEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(corpusFile{Version: 1, Entries: entries})
	if err != nil {
		return fmt.Errorf("encoding corpus: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadCorpus reads the corpus at path. A missing file is an empty corpus.
func LoadCorpus(path string) ([]CorpusEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var file corpusFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing corpus %s: %w", path, err)
	}
	return file.Entries, nil
}

// ReplayCorpus re-evaluates recorded counterexamples against pred and
// reports entries that still fail. Entries without a decodable value are
// skipped.
func ReplayCorpus(t testing.TB, path string, pred func(doc.Value) bool) {
	t.Helper()

	entries, err := LoadCorpus(path)
	if err != nil {
		t.Fatalf("loading corpus: %v", err)
	}

	for _, entry := range entries {
		v, ok := entry.Value()
		if !ok {
			continue
		}
		switch passed, panicMsg := replayOne(pred, v); {
		case panicMsg != "":
			t.Errorf("corpus counterexample panics: %s : %s", entry.Repr, panicMsg)
		case !passed:
			t.Errorf("corpus counterexample still failing: %s", entry.Repr)
		}
	}
}

func replayOne(pred func(doc.Value) bool, v doc.Value) (passed bool, panicMsg string) {
	defer func() {
		if rec := recover(); rec != nil {
			passed = false
			panicMsg = fmt.Sprintf("panic: %v", rec)
		}
	}()
	return pred(v), ""
}

func corpusEntries(failures []counterexample) []CorpusEntry {
	now := time.Now().UTC()
	entries := make([]CorpusEntry, 0, len(failures))
	for _, f := range failures {
		entry := CorpusEntry{
			Repr:       f.repr,
			Reductions: f.reductions,
			Error:      f.errText,
			RecordedAt: now,
		}
		if f.value != nil {
			if data, err := doc.Marshal(doc.New().Set(corpusValueKey, f.value)); err == nil {
				entry.Data = data
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

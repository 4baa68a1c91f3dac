package proptest

import (
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"pgregory.net/rapid"

	"qdoc/connstring"
	"qdoc/doc"
	"qdoc/qcheck"
)

func assertValuesEqual(t *rapid.T, want, got doc.Value) {
	t.Helper()
	if !doc.Equal(want, got) {
		t.Fatalf("value mismatch:\nwant: %v\ngot:  %v", want, got)
	}
}

func assertDocsEqual(t *rapid.T, want, got *doc.Doc) {
	t.Helper()
	if !want.Equal(got) {
		t.Fatalf("document mismatch:\nwant: %v\ngot:  %v", want, got)
	}
}

func assertKeysEqual(t *rapid.T, want, got []string) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("key mismatch (-want +got):\n%s", diff)
	}
}

func assertEntriesEqual(t *rapid.T, want, got []qcheck.CorpusEntry) {
	t.Helper()
	opts := cmp.Options{
		cmpopts.EquateApproxTime(time.Second),
		cmpopts.EquateEmpty(),
	}
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Fatalf("corpus entries mismatch (-want +got):\n%s", diff)
	}
}

func assertHostsEqual(t *rapid.T, want, got []connstring.HostPort) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("host list mismatch (-want +got):\n%s", diff)
	}
}

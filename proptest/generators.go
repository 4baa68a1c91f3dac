package proptest

import (
	"fmt"
	"time"

	"pgregory.net/rapid"

	"qdoc/connstring"
	"qdoc/doc"
	"qdoc/qcheck"
)

var (
	iterDirGen    = rapid.StringMatching(`[a-z]{8}`)
	asciiKeyGen   = rapid.StringMatching(`[a-zA-Z0-9_-]{0,12}`)
	punctKeyGen   = rapid.StringMatching(`[ -~]{1,8}`)
	reprGen       = rapid.StringMatching(`[ -~]{0,40}`)
	messageGen    = rapid.StringMatching(`[a-z ]{3,24}`)
	collectionGen = rapid.StringMatching(`[a-z]{0,10}`)
	hostGen       = rapid.StringMatching(`[a-z][a-z0-9]{0,9}`)
	databaseGen   = rapid.StringMatching(`[a-z]{1,8}`)
	userGen       = rapid.StringMatching(`[a-z]{3,8}`)
	passwordGen   = rapid.StringMatching(`[A-Z]{6,12}`)
)

// keyGen draws field keys across the full range the codec accepts: plain
// ASCII, punctuation including '.' and '$', and multi-byte runes. NUL is the
// only byte Marshal rejects in keys, so no arm produces it.
func keyGen() *rapid.Generator[string] {
	return rapid.OneOf(
		asciiKeyGen,
		punctKeyGen,
		rapid.SampledFrom([]string{"ключ", "キー", "clé", "a.b", "$inc", "🔑"}),
	)
}

func scalarGen() *rapid.Generator[doc.Value] {
	return rapid.Custom(func(t *rapid.T) doc.Value {
		switch rapid.IntRange(0, 8).Draw(t, "kind") {
		case 0:
			return doc.Null{}
		case 1:
			return doc.Bool(rapid.Bool().Draw(t, "bool"))
		case 2:
			return doc.Int32(rapid.Int32().Draw(t, "int32"))
		case 3:
			return doc.Int64(rapid.Int64().Draw(t, "int64"))
		case 4:
			return doc.Float(rapid.Float64().Draw(t, "float"))
		case 5:
			return doc.String(rapid.String().Draw(t, "string"))
		case 6:
			return binaryGen().Draw(t, "binary")
		case 7:
			return doc.DateTime(rapid.Int64().Draw(t, "millis"))
		default:
			return idGen().Draw(t, "id")
		}
	})
}

func binaryGen() *rapid.Generator[doc.Binary] {
	return rapid.Custom(func(t *rapid.T) doc.Binary {
		data := make([]byte, rapid.IntRange(0, 64).Draw(t, "len"))
		for i := range data {
			data[i] = byte(rapid.IntRange(0, 255).Draw(t, "byte"))
		}
		return doc.Binary{
			Subtype: byte(rapid.IntRange(0, 255).Draw(t, "subtype")),
			Data:    data,
		}
	})
}

func idGen() *rapid.Generator[doc.ID] {
	return rapid.Custom(func(t *rapid.T) doc.ID {
		var id doc.ID
		for i := range id {
			id[i] = byte(rapid.IntRange(0, 255).Draw(t, "byte"))
		}
		return id
	})
}

func refGen() *rapid.Generator[doc.Ref] {
	return rapid.Custom(func(t *rapid.T) doc.Ref {
		return doc.Ref{
			Collection: collectionGen.Draw(t, "collection"),
			Value:      scalarGen().Draw(t, "payload"),
		}
	})
}

// valueGen draws a value whose containers nest at most depth levels.
func valueGen(depth int) *rapid.Generator[doc.Value] {
	return rapid.Custom(func(t *rapid.T) doc.Value {
		top := 1
		if depth > 0 {
			top = 3
		}
		switch rapid.IntRange(0, top).Draw(t, "arm") {
		case 0:
			return scalarGen().Draw(t, "scalar")
		case 1:
			return refGen().Draw(t, "ref")
		case 2:
			return listGen(depth - 1).Draw(t, "list")
		default:
			return docGen(depth - 1).Draw(t, "doc")
		}
	})
}

func listGen(depth int) *rapid.Generator[doc.List] {
	return rapid.Custom(func(t *rapid.T) doc.List {
		out := make(doc.List, rapid.IntRange(0, maxContainerSize).Draw(t, "len"))
		for i := range out {
			out[i] = valueGen(depth).Draw(t, "elem")
		}
		return out
	})
}

// docGen draws documents whose values nest at most depth container levels.
// Duplicate keys overwrite, so a document can end up with fewer fields than
// were drawn.
func docGen(depth int) *rapid.Generator[*doc.Doc] {
	return rapid.Custom(func(t *rapid.T) *doc.Doc {
		d := doc.New()
		n := rapid.IntRange(minDocFields, maxContainerSize).Draw(t, "fields")
		for range n {
			d.Set(keyGen().Draw(t, "key"), valueGen(depth).Draw(t, "value"))
		}
		return d
	})
}

func recordedAtGen() *rapid.Generator[time.Time] {
	return rapid.Custom(func(t *rapid.T) time.Time {
		sec := rapid.Int64Range(946684800, 4102444800).Draw(t, "unixSec") // 2000-01-01 .. 2100-01-01 UTC
		return time.Unix(sec, 0).UTC()
	})
}

func corpusEntryGen() *rapid.Generator[qcheck.CorpusEntry] {
	return rapid.Custom(func(t *rapid.T) qcheck.CorpusEntry {
		entry := qcheck.CorpusEntry{
			Repr:       reprGen.Draw(t, "repr"),
			Reductions: rapid.IntRange(0, 12).Draw(t, "reductions"),
			RecordedAt: recordedAtGen().Draw(t, "recordedAt"),
		}
		switch rapid.IntRange(0, 2).Draw(t, "shape") {
		case 0:
			entry.Error = "panic: " + messageGen.Draw(t, "message")
		case 1:
			wrapped := doc.New().Set("v", scalarGen().Draw(t, "value"))
			data, err := doc.Marshal(wrapped)
			if err != nil {
				t.Fatalf("encoding corpus value: %v", err)
			}
			entry.Data = data
		}
		return entry
	})
}

func malformedYAMLGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just("{{{{"),
		rapid.Just("- - - -"),
		rapid.Just(":::"),
		rapid.Just("[\n["),
		rapid.Just("entries: [unclosed"),
		rapid.Just("entries: {unclosed"),
		rapid.Just("- item\n  bad indent"),
		rapid.Just("\t\ttabs: everywhere"),
		rapid.Just("version: \"unmatched quote"),
		rapid.Just("entries:\n  - repr: missing\n  data: value"),
		rapid.StringMatching(`[^a-zA-Z0-9\s]{10,50}`),
		rapid.Custom(func(t *rapid.T) string {
			junk := make([]byte, rapid.IntRange(10, 100).Draw(t, "size"))
			for i := range junk {
				junk[i] = byte(rapid.IntRange(0, 255).Draw(t, "byte"))
			}
			return string(junk)
		}),
	)
}

func missingFieldsGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just("version: 1\nentries:\n  - repr: lone\n"),
		rapid.Just("version: 1\nentries:\n  - reductions: 3\n"),
		rapid.Just("version: 1\nentries:\n  - recorded_at: 2026-01-01T00:00:00Z\n"),
		rapid.Just("version: 1\nentries:\n  - {}\n"),
		rapid.Just("entries:\n  - repr: x\n    reductions: 1\n"),
		rapid.Just("version: 1\n"),
	)
}

func extraFieldsGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		extraField := rapid.SampledFrom([]string{
			"unknown_field",
			"extra",
			"foo",
			"bar_baz",
			"randomField123",
		}).Draw(t, "fieldName")
		extraValue := rapid.SampledFrom([]string{
			"string_value",
			"123",
			"true",
			"[1, 2, 3]",
			"{nested: value}",
		}).Draw(t, "fieldValue")

		return fmt.Sprintf(`version: 1
%s: %s
entries:
  - repr: '{}'
    reductions: 2
    %s: %s
    recorded_at: 2026-01-01T00:00:00Z
`, extraField, extraValue, extraField, extraValue)
	})
}

func invalidTypesGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just("version: \"not_a_number\"\nentries: []\n"),
		rapid.Just("version: 1\nentries: 5\n"),
		rapid.Just("version: 1\nentries:\n  - repr: [not, a, string]\n"),
		rapid.Just("version: 1\nentries:\n  - repr: x\n    reductions: many\n"),
		rapid.Just("version: 1\nentries:\n  - repr: x\n    data: \"///not base64///\"\n"),
		rapid.Just("version: 1\nentries:\n  - repr: x\n    recorded_at: not-a-date\n"),
	)
}

func hostPortGen() *rapid.Generator[connstring.HostPort] {
	return rapid.Custom(func(t *rapid.T) connstring.HostPort {
		host := hostGen.Draw(t, "host")
		if rapid.Bool().Draw(t, "ipv6") {
			host = rapid.SampledFrom([]string{"::1", "fe80::2", "2001:db8::5"}).Draw(t, "literal")
		}
		return connstring.HostPort{
			Host: host,
			Port: rapid.IntRange(1, 65535).Draw(t, "port"),
		}
	})
}

package main

import (
	"fmt"
	"math/rand/v2"

	"qdoc/doc"
)

// resolveSeed picks a fresh seed when none was given, so a run can always
// report the seed that reproduces it.
func resolveSeed(seed uint64) uint64 {
	if seed == 0 {
		return rand.Uint64()
	}
	return seed
}

func docRoundTrips(d *doc.Doc) bool {
	data, err := doc.Marshal(d)
	if err != nil {
		return false
	}
	decoded, err := doc.Unmarshal(data)
	if err != nil {
		return false
	}
	return d.Equal(decoded)
}

func valueRoundTrips(v doc.Value) bool {
	return docRoundTrips(doc.New().Set("v", v))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

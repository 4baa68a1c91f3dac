package qcheck

import (
	"fmt"
	"math/rand/v2"
	"runtime/debug"
	"strings"
	"testing"

	"qdoc/doc"
)

const (
	DefaultTrials       = 100
	DefaultExampleLimit = 5
)

type settings struct {
	trials       int
	exampleLimit int
	rand         *rand.Rand
	corpusPath   string
}

type Option func(*settings)

func WithTrials(n int) Option {
	return func(s *settings) { s.trials = n }
}

// WithExampleLimit caps how many counterexamples CheckT displays.
func WithExampleLimit(n int) Option {
	return func(s *settings) { s.exampleLimit = n }
}

// WithSeed makes the engine's randomness reproducible. Generators that draw
// entropy elsewhere, such as AnyID, stay unique per call regardless.
func WithSeed(seed uint64) Option {
	return func(s *settings) { s.rand = rand.New(rand.NewPCG(seed, seed)) }
}

func WithRand(r *rand.Rand) Option {
	return func(s *settings) { s.rand = r }
}

// WithCorpusFile makes CheckT record the run's counterexamples to path.
func WithCorpusFile(path string) Option {
	return func(s *settings) { s.corpusPath = path }
}

func newSettings(opts []Option) *settings {
	s := &settings{
		trials:       DefaultTrials,
		exampleLimit: DefaultExampleLimit,
		rand:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type counterexample struct {
	repr       string
	value      doc.Value
	reductions int
	errText    string
}

func (c counterexample) String() string {
	if c.errText != "" {
		return c.repr + " : " + c.errText
	}
	return fmt.Sprintf("after %d reductions: %s", c.reductions, c.repr)
}

// Check runs pred against generated values and returns one report line per
// failed trial, in trial order. A false verdict is shrunk before reporting;
// a panicking predicate is reported with its stack and never shrunk. An
// empty result means every trial passed. Check itself does not panic on
// predicate failures.
func Check[T any](pred func(T) bool, gen Gen[T], opts ...Option) []string {
	failures := check(pred, gen, newSettings(opts))
	out := make([]string, len(failures))
	for i, f := range failures {
		out[i] = f.String()
	}
	return out
}

// Failures runs the same trials as Check but returns the full counterexample
// records, ready for SaveCorpus.
func Failures[T any](pred func(T) bool, gen Gen[T], opts ...Option) []CorpusEntry {
	return corpusEntries(check(pred, gen, newSettings(opts)))
}

// CheckT runs Check and fails t when any trial failed, displaying up to the
// example limit. With a corpus file configured, failures are recorded first.
func CheckT[T any](t testing.TB, pred func(T) bool, gen Gen[T], opts ...Option) {
	t.Helper()
	s := newSettings(opts)
	failures := check(pred, gen, s)
	if len(failures) == 0 {
		return
	}

	if s.corpusPath != "" {
		if err := SaveCorpus(s.corpusPath, corpusEntries(failures)); err != nil {
			t.Logf("recording counterexamples: %v", err)
		}
	}

	t.Fatal(report(failures, s.exampleLimit))
}

func check[T any](pred func(T) bool, gen Gen[T], s *settings) []counterexample {
	var failures []counterexample
	for range s.trials {
		val := gen(s.rand)
		if ce, failed := runTrial(pred, val, s.rand); failed {
			failures = append(failures, ce)
		}
	}
	return failures
}

// runTrial evaluates one generated value. A recovered panic is attributed to
// the original value even when it fired while probing shrink candidates.
func runTrial[T any](pred func(T) bool, val T, r *rand.Rand) (ce counterexample, failed bool) {
	defer func() {
		if rec := recover(); rec != nil {
			ce = counterexample{
				repr:    fmt.Sprintf("%v", val),
				value:   asDocValue(val),
				errText: fmt.Sprintf("panic: %v\n%s", rec, debug.Stack()),
			}
			failed = true
		}
	}()

	if pred(val) {
		return counterexample{}, false
	}

	n, minimized := Reduce(r, val, pred)
	return counterexample{
		repr:       fmt.Sprintf("%v", minimized),
		value:      asDocValue(minimized),
		reductions: n,
	}, true
}

func report(failures []counterexample, limit int) string {
	shown := min(limit, len(failures))
	var sb strings.Builder
	fmt.Fprintf(&sb, "found %d counter examples, displaying first %d:", len(failures), shown)
	for _, f := range failures[:shown] {
		sb.WriteString("\n    -> ")
		sb.WriteString(f.String())
	}
	return sb.String()
}

func asDocValue(v any) doc.Value {
	dv, _ := v.(doc.Value)
	return dv
}

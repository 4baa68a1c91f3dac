package main

import (
	"fmt"

	"qdoc/cmd/qdoc/render"
	"qdoc/qcheck"
)

type CheckCmd struct {
	Trials   int    `short:"t" default:"100" help:"Number of random documents to test"`
	Depth    int    `short:"d" default:"3" help:"Maximum nesting depth"`
	Refs     bool   `help:"Allow reference values"`
	Seed     uint64 `short:"s" help:"Seed for reproducible runs (0 draws one)"`
	Examples int    `short:"e" default:"5" help:"Counterexamples to display"`
	Record   bool   `short:"r" help:"Record counterexamples to the corpus"`
}

func (cmd *CheckCmd) Run(g *Globals) error {
	if cmd.Trials < 1 {
		return fmt.Errorf("trials must be at least 1, got %d", cmd.Trials)
	}
	if cmd.Depth < 0 {
		return fmt.Errorf("depth cannot be negative, got %d", cmd.Depth)
	}
	if cmd.Examples < 0 {
		return fmt.Errorf("examples cannot be negative, got %d", cmd.Examples)
	}

	seed := resolveSeed(cmd.Seed)
	entries := qcheck.Failures(
		docRoundTrips,
		qcheck.AnyDoc(cmd.Depth, cmd.Refs),
		qcheck.WithTrials(cmd.Trials),
		qcheck.WithSeed(seed),
	)

	view := render.CheckReportView{
		Property: "marshal/unmarshal round trip",
		Trials:   cmd.Trials,
		Seed:     seed,
		Total:    len(entries),
	}
	for _, e := range entries[:min(cmd.Examples, len(entries))] {
		view.Examples = append(view.Examples, e.String())
	}
	fmt.Fprint(g.Out, g.Render.RenderCheckReport(view))

	if len(entries) == 0 {
		return nil
	}

	if cmd.Record {
		if err := qcheck.SaveCorpus(g.CorpusPath, entries); err != nil {
			return fmt.Errorf("recording corpus: %w", err)
		}
		fmt.Fprintf(g.Out, "Recorded %s to %s\n", plural(len(entries), "counterexample"), g.CorpusPath)
	}

	return fmt.Errorf("%s failed", view.Property)
}

package main

import (
	"fmt"

	"qdoc/cmd/qdoc/render"
	"qdoc/qcheck"
)

type CorpusCmd struct {
	Replay bool `short:"r" help:"Re-evaluate recorded counterexamples against the codec"`
}

func (cmd *CorpusCmd) Run(g *Globals) error {
	entries, err := qcheck.LoadCorpus(g.CorpusPath)
	if err != nil {
		return err
	}

	if cmd.Replay {
		return cmd.replay(g, entries)
	}

	view := render.CorpusListView{}
	for _, e := range entries {
		view.Items = append(view.Items, render.CorpusItem{
			Repr:       e.Repr,
			Reductions: e.Reductions,
			Panicked:   e.Error != "",
			RecordedAt: e.RecordedAt,
		})
	}
	fmt.Fprint(g.Out, g.Render.RenderCorpusList(view))
	return nil
}

func (cmd *CorpusCmd) replay(g *Globals, entries []qcheck.CorpusEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(g.Out, "No recorded failures.")
		return nil
	}

	stillFailing := 0
	for _, entry := range entries {
		v, ok := entry.Value()
		if !ok {
			fmt.Fprintf(g.Out, "skip  %s (no recorded value)\n", entry.Repr)
			continue
		}
		if valueRoundTrips(v) {
			fmt.Fprintf(g.Out, "ok    %s\n", entry.Repr)
		} else {
			stillFailing++
			fmt.Fprintf(g.Out, "FAIL  %s\n", entry.Repr)
		}
	}

	if stillFailing > 0 {
		return fmt.Errorf("%s still failing", plural(stillFailing, "counterexample"))
	}
	return nil
}

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"qdoc/doc"
	"qdoc/internal/config"
	"qdoc/internal/ui"
	"qdoc/internal/util"
	"qdoc/qcheck"
)

type GenCmd struct {
	Count       int    `short:"n" default:"1" help:"How many documents to generate"`
	Depth       int    `short:"d" default:"3" help:"Maximum nesting depth"`
	Refs        bool   `help:"Allow reference values"`
	Seed        uint64 `short:"s" help:"Seed for reproducible output (0 draws one)"`
	Format      string `short:"f" default:"repr" enum:"repr,hex,wire" help:"Output format"`
	Output      string `short:"o" placeholder:"FILE" help:"Write to FILE instead of stdout"`
	Interactive bool   `short:"i" help:"Pick parameters interactively"`
}

func (cmd *GenCmd) Run(g *Globals) error {
	if cmd.Interactive {
		aborted, err := cmd.promptParams(g)
		if err != nil || aborted {
			return err
		}
	}

	if cmd.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", cmd.Count)
	}
	if cmd.Depth < 0 {
		return fmt.Errorf("depth cannot be negative, got %d", cmd.Depth)
	}

	out := g.Out
	if cmd.Output != "" {
		path, err := config.ExpandPath(cmd.Output)
		if err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	seed := resolveSeed(cmd.Seed)
	rng := rand.New(rand.NewPCG(seed, seed))
	gen := qcheck.AnyDoc(cmd.Depth, cmd.Refs)

	for range cmd.Count {
		if err := writeDoc(out, gen(rng), cmd.Format); err != nil {
			return err
		}
	}

	if cmd.Interactive {
		target := cmd.Output
		if target == "" {
			target = "stdout"
		}
		fmt.Fprint(g.Out, ui.RenderSummary(
			"Generated "+plural(cmd.Count, "document"),
			target,
			[]string{
				fmt.Sprintf("depth ≤ %d", cmd.Depth),
				fmt.Sprintf("seed %d", seed),
			},
		))
	}
	return nil
}

func writeDoc(w io.Writer, d *doc.Doc, format string) error {
	switch format {
	case "repr":
		_, err := fmt.Fprintln(w, d.String())
		return err
	case "hex":
		data, err := doc.Marshal(d)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, hex.EncodeToString(data))
		return err
	case "wire":
		data, err := doc.Marshal(d)
		if err != nil {
			return err
		}
		assert.Success(w.Write(data))
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

func (cmd *GenCmd) promptParams(g *Globals) (bool, error) {
	count := strconv.Itoa(cmd.Count)
	depth := strconv.Itoa(cmd.Depth)
	seed := ""
	if cmd.Seed != 0 {
		seed = strconv.FormatUint(cmd.Seed, 10)
	}
	refs := cmd.Refs

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Documents").
				Value(&count).
				Validate(validateCount),
			huh.NewInput().
				Title("Depth").
				Value(&depth).
				Validate(validateDepth),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Include references?").
				Value(&refs),
			huh.NewInput().
				Title("Seed").
				Description("Press Enter to draw one").
				Value(&seed).
				Validate(validateSeed),
		),
	).WithTheme(ui.WizardTheme())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return true, nil
		}
		return true, err
	}

	cmd.Count, _ = strconv.Atoi(strings.TrimSpace(count))
	cmd.Depth, _ = strconv.Atoi(strings.TrimSpace(depth))
	cmd.Refs = refs
	if s := strings.TrimSpace(seed); s != "" {
		cmd.Seed, _ = strconv.ParseUint(s, 10, 64)
	}

	fields := []ui.Field{
		{Label: "Documents", Value: strconv.Itoa(cmd.Count)},
		{Label: "Depth", Value: strconv.Itoa(cmd.Depth)},
		{Label: "References", Value: strconv.FormatBool(cmd.Refs)},
	}
	if cmd.Seed != 0 {
		fields = append(fields, ui.Field{Label: "Seed", Value: strconv.FormatUint(cmd.Seed, 10), Optional: true})
	}
	fmt.Fprint(g.Out, ui.RenderWizard("Generate documents", fields, -1))
	return false, nil
}

func validateCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errors.New("enter a positive number")
	}
	return nil
}

func validateDepth(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return errors.New("enter zero or a positive number")
	}
	return nil
}

func validateSeed(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseUint(s, 10, 64); err != nil {
		return errors.New("enter a number, or leave empty")
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"qdoc/cmd/qdoc/render"
	"qdoc/internal/config"
)

type CLI struct {
	Gen    GenCmd    `cmd:"" aliases:"g" help:"Generate random documents"`
	Check  CheckCmd  `cmd:"" aliases:"c" help:"Check the codec round trip over random documents"`
	Corpus CorpusCmd `cmd:"" help:"Inspect recorded counterexamples"`
	Uri    UriCmd    `cmd:"" help:"Parse and display a qdoc:// connection string"`

	CorpusFile string `name:"corpus-file" short:"c" help:"Path to the failure corpus"`
}

func (c *CLI) AfterApply(ctx *kong.Context) error {
	corpusPath := c.CorpusFile
	if corpusPath == "" {
		corpusPath = config.DefaultCorpusPath()
	}
	expanded, err := config.ExpandPath(corpusPath)
	if err != nil {
		return fmt.Errorf("resolving corpus path: %w", err)
	}

	globals := &Globals{
		CorpusPath: expanded,
		Out:        os.Stdout,
		Render:     render.NewLipglossRendererAuto(os.Stdout),
	}
	ctx.Bind(globals)
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("qdoc"),
		kong.Description("Random document generator and codec checker"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

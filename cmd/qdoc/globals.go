package main

import (
	"io"

	"qdoc/cmd/qdoc/render"
)

type Globals struct {
	CorpusPath string
	Out        io.Writer
	Render     render.Renderer
}

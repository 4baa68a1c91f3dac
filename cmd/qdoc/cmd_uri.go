package main

import (
	"fmt"
	"sort"
	"strings"

	"qdoc/connstring"
)

type UriCmd struct {
	URI   string `arg:"" help:"Connection string to parse"`
	Nodes bool   `help:"Output only the host list (for scripting)"`
}

func (cmd *UriCmd) Run(g *Globals) error {
	cs, err := connstring.Parse(cmd.URI)
	if err != nil {
		return err
	}

	hosts := make([]string, len(cs.Nodes))
	for i, node := range cs.Nodes {
		hosts[i] = node.String()
	}

	if cmd.Nodes {
		for _, h := range hosts {
			fmt.Fprintln(g.Out, h)
		}
		return nil
	}

	fmt.Fprintf(g.Out, "URI:        %s\n", cs.Redacted())
	fmt.Fprintf(g.Out, "Nodes:      %s\n", strings.Join(hosts, ", "))
	if cs.Username != "" {
		fmt.Fprintf(g.Out, "User:       %s\n", cs.Username)
	}
	if cs.Database != "" {
		fmt.Fprintf(g.Out, "Database:   %s\n", cs.Database)
	}
	if cs.Collection != "" {
		fmt.Fprintf(g.Out, "Collection: %s\n", cs.Collection)
	}
	if len(cs.Options) > 0 {
		keys := make([]string, 0, len(cs.Options))
		for k := range cs.Options {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(g.Out, "Option:     %s=%v\n", k, cs.Options[k])
		}
	}
	return nil
}

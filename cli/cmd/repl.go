package cmd

import (
	"context"

	"github.com/ardnew/forma/cli/cmd/repl"
)

// Repl starts an interactive evaluation session.
type Repl struct {
	Vars map[string]string `name:"var" placeholder:"NAME=VALUE" short:"V" help:"Bind a static variable"`
}

// Run implements the repl command.
func (c *Repl) Run(ctx context.Context) error {
	return repl.Run(ctx, environ(c.Vars))
}

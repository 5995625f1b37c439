package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/forma/lang"
	"github.com/ardnew/forma/log"
)

// Check parses an expression and prints its syntax tree without
// evaluating it.
type Check struct {
	Expression string `arg:"" optional:"" help:"Expression to check, or '-' for stdin"`
}

// Run implements the check command.
func (c *Check) Run(ctx context.Context) error {
	x, err := readExpression(c.Expression, os.Stdin, lang.WithLogger(log.Default()))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "check"))
	}

	log.DebugContext(ctx, "expression is well-formed",
		slog.String("source", x.Source()),
	)

	lang.Print(os.Stdout, x.Root())

	return nil
}

package cmd

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/forma/lang"
	"github.com/ardnew/forma/log"
)

// Eval parses an expression, evaluates it, and prints the result.
type Eval struct {
	Expression string            `arg:""           optional:""          help:"Expression to evaluate, or '-' for stdin"`
	Vars       map[string]string `name:"var"       placeholder:"NAME=VALUE" short:"V" help:"Bind a static variable"`
	Output     string            `default:"text"   enum:"text,json,yaml"    short:"o" help:"Output format"`
}

// Run implements the eval command.
func (c *Eval) Run(ctx context.Context) error {
	x, err := readExpression(c.Expression, os.Stdin, lang.WithLogger(log.Default()))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "eval"))
	}

	result, err := x.Evaluate(environ(c.Vars))
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "eval"),
				slog.String("source", x.Source()),
			)
	}

	log.DebugContext(ctx, "evaluated expression",
		slog.String("source", x.Source()),
		slog.Any("result", result),
	)

	out, err := render(result, c.Output)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(out)

	return err
}

// render encodes a result value in the requested output format,
// terminated by a newline.
func render(v lang.Value, format string) ([]byte, error) {
	switch format {
	case "json":
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}

		return append(out, '\n'), nil

	case "yaml":
		return yaml.Marshal(v.ToNative())

	default:
		return []byte(v.AsString() + "\n"), nil
	}
}

// Package cmd implements the forma subcommands.
package cmd

import (
	"io"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/ardnew/forma/lang"
)

// readExpression parses the positional argument, or reads the
// expression from stdin when the argument is empty or "-".
func readExpression(arg string, stdin io.Reader, opts ...lang.Option) (*lang.Expression, error) {
	if arg == "" || arg == "-" {
		return lang.ParseReader(stdin, opts...)
	}

	return lang.ParseString(arg, opts...)
}

// environ builds the evaluation environment for commands: static
// bindings from --var flags plus the live variables "now" (Unix
// seconds) and "rand" (uniform float in [0, 1)).
func environ(vars map[string]string) lang.Environment {
	static := make(map[string]lang.Value, len(vars))
	for name, raw := range vars {
		static[name] = parseBinding(raw)
	}

	return &lang.MapEnvironment{
		Static: static,
		Live: map[string]func() lang.Value{
			"now":  func() lang.Value { return lang.NewInt(time.Now().Unix()) },
			"rand": func() lang.Value { return lang.NewFloat(rand.Float64()) },
		},
	}
}

// parseBinding interprets a --var value the way expression literals
// read: null, booleans, and numbers bind as such, anything else as a
// string.
func parseBinding(raw string) lang.Value {
	switch raw {
	case "null":
		return lang.NewNull()
	case "true":
		return lang.NewBool(true)
	case "false":
		return lang.NewBool(false)
	}

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return lang.NewInt(i)
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return lang.NewFloat(f)
	}

	return lang.NewString(raw)
}

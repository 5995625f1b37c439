// Package cli contains the command line interface for forma.
//
// # Usage
//
// The default command evaluates an expression and prints its result:
//
//	forma '1 + 2 * 3'
//	forma --var count=4 'count > 3 && "yes" & "!"'
//	echo '2 ^ 10' | forma eval -
//
// The check command prints the syntax tree without evaluating:
//
//	forma check '-(a + b) == c'
//
// The repl command starts an interactive session with history and
// tab completion over the known variable and function names.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/forma/pprof)
package cli

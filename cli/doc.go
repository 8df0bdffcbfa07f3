// Package cli contains the command line interface for tpp.
//
// # Usage
//
// Render a template from stdin to stdout, defining a nested variable:
//
//	tpp -D sys.ipv4.lo=127.0.0.1 < in.tmpl
//
// The render command is the default; dump and init are explicit:
//
//	tpp render -D arch=x86 -I ./include -i in.tmpl -o out.txt
//	tpp dump yaml -D a.b=1 -D a.c=2
//	tpp init --force
//
// # Configuration Loader
//
// Flag values are read from config.json and config.yaml in the user config
// directory (for example ~/.config/tpp). The YAML loader ([resolve]) reads
// the mapping named "config" at the top level of the document; flag names may
// use hyphens or underscores. Command-line flags take precedence.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize output when writing to a terminal
//
// Logs are written to stderr; stdout carries rendered output.
//
// # Profiling Options
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/tpp/pprof)
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o tpp .
package cli

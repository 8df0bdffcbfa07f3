// Package profile provides optional runtime profiling for tpp.
//
// # Overview
//
// This package integrates [github.com/pkg/profile] behind the "pprof" build
// tag. Without the tag, [Config.Start] returns a no-op and [Modes] is empty.
//
//	go build -tags pprof -o tpp .
//
// # Modes
//
// The following modes are supported when built with the pprof tag:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// # Usage
//
// A [Config] is composed from functional options and started once:
//
//	var cfg profile.Config = func() (string, string, bool) { return "", "", false }
//
//	cfg = profile.WithMode("cpu")(cfg)
//	cfg = profile.WithPath("/tmp/profiles")(cfg)
//
//	defer cfg.Start().Stop()
//
// The tpp command exposes the same through flags:
//
//	tpp --pprof-mode=cpu -D arch=x86 -i in.tmpl -o out.txt
//	tpp --pprof-mode=heap --pprof-dir=./profiles -i in.tmpl
//
// Profiles land in the user cache directory by default (for example
// $XDG_CACHE_HOME/tpp/pprof) and are read with go tool pprof:
//
//	go tool pprof -http=: ~/.cache/tpp/pprof/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

package cmd

import "github.com/ardnew/tpp/pkg"

// Predefined errors (sentinel values).
var (
	ErrReadInput    = pkg.NewError("read input template")
	ErrWriteOutput  = pkg.NewError("write output")
	ErrCheckOutput  = pkg.NewError("--check requires --output")
	ErrStale        = pkg.NewError("output is out of date")
	ErrJSONMarshal  = pkg.NewError("marshal JSON")
	ErrYAMLMarshal  = pkg.NewError("marshal YAML")
	ErrWriteConfig  = pkg.NewError("write configuration file")
	ErrFileExists   = pkg.NewError("file exists (use --force to overwrite)")
	ErrBuildDefines = pkg.NewError("invalid define")
)

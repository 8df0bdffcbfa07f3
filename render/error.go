package render

import "github.com/ardnew/tpp/pkg"

// Predefined errors (sentinel values).
var (
	ErrSearchPath   = pkg.NewError("invalid search path")
	ErrPattern      = pkg.NewError("invalid template pattern")
	ErrLoadTemplate = pkg.NewError("failed to load template")
	ErrParse        = pkg.NewError("failed to parse template")
	ErrExecute      = pkg.NewError("failed to render template")
	ErrUndefined    = pkg.NewError("undefined template variable")
	ErrExpr         = pkg.NewError("failed to evaluate expression")
)

package cmd

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tpp/define"
	"github.com/ardnew/tpp/log"
)

// DefaultValueIdentifier is the kong variable identifier containing the
// default value of a bare VAR.
const DefaultValueIdentifier = "defineDefault"

// Defines are the flags that build a define tree.
type Defines struct {
	Define       []string `help:"Substitute VALUE for VAR in the input template. If VALUE is not given, assume --default-value."  placeholder:"VAR[=VALUE]" sep:"none" short:"D"`
	DefaultValue string   `default:"${defineDefault}"                                                                            help:"Value of a VAR given without VALUE (integers and booleans keep their type)."`
	Lengthen     bool     `default:"true"                                                                                        help:"Replace a value with a key tree when a later VAR extends its key."            negatable:""`
	Shorten      bool     `default:"false"                                                                                       help:"Replace a key tree with a value when a later VAR truncates its key."          negatable:""`
}

// Vars returns the kong variables referenced by the define flags.
func (Defines) Vars() kong.Vars {
	return kong.Vars{
		DefaultValueIdentifier: strconv.Itoa(define.DefaultValue),
	}
}

// build folds the -D flags into a define tree, reporting assignment
// conflicts to the default logger.
func (d *Defines) build(ctx context.Context) (*define.Map, error) {
	tree, err := define.Build(
		d.Define,
		define.WithDefault(define.ParseDefault(d.DefaultValue)),
		define.WithLengthen(d.Lengthen),
		define.WithShorten(d.Shorten),
		define.WithObserver(logObserver(ctx, log.Default())),
	)
	if err != nil {
		return nil, ErrBuildDefines.Wrap(err)
	}

	log.DebugContext(ctx, "defines built",
		slog.Int("count", len(d.Define)),
		slog.Int("keys", tree.Len()),
	)

	return tree, nil
}

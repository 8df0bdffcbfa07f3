package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tpp/log"
	"github.com/ardnew/tpp/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// initIgnore lists flag names, or name prefixes, never written to the
// configuration file: they either select per-invocation files and modes or
// are unavailable in some builds.
//
//nolint:gochecknoglobals
var initIgnore = []string{"help", "version", "input", "output", "check", "define", profile.Tag}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	doc := yaml.MapSlice{{Key: ConfigIdentifier, Value: configEntries(ktx)}}

	data, err := yaml.MarshalWithOptions(doc, yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	err = writeFile(confPath, data, defaultConfigMode)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// defaultConfigMode is the permission mode of a new configuration file.
const defaultConfigMode os.FileMode = 0o600

// configEntries returns the application flags and the flags of the default
// command in declaration order, paired with their current values. Unset
// and ignored flags are omitted.
func configEntries(ktx *kong.Context) yaml.MapSlice {
	flags := slices.Clone(ktx.Model.Flags)

	if def := ktx.Model.DefaultCmd; def != nil {
		flags = append(flags, def.Flags...)
	}

	var entries yaml.MapSlice

	seen := make(map[string]bool)

	for _, flag := range flags {
		if flag.Hidden || seen[flag.Name] || slices.ContainsFunc(initIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		seen[flag.Name] = true

		if val := configValue(ktx.FlagValue(flag)); val != nil {
			entries = append(entries, yaml.MapItem{Key: flag.Name, Value: val})
		}
	}

	return entries
}

// configValue returns the YAML value for a flag value, or nil if unset.
func configValue(val any) any {
	switch v := val.(type) {
	case nil:
		return nil

	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return v

	case string:
		if v == "" {
			return nil
		}

		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	default:
		return fmt.Sprint(v)
	}
}

package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag values from
// the mapping called name at the top level of a YAML document.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve("config"), "/path/to/config.yaml")
//
// Values are converted as follows:
//   - Flag names may use hyphens (e.g., "log-level") or underscores
//     (e.g., "log_level")
//   - Numbers are passed to kong as strings for parsing
//   - Booleans and strings are passed as-is
//   - Sequences are passed as lists, for repeatable flags such as --define
//
// Example config file:
//
//	config:
//	  log-level: debug
//	  log-format: json
//	  shorten: true
//	  search:
//	    - ~/.local/share/tpp
//
// This configuration will be applied to kong flags:
//
//	--log-level=debug
//	--log-format=json
//	--shorten
//	--search=~/.local/share/tpp
//
// Command-line flags override config file values. A document that fails to
// parse, or lacks the mapping, configures nothing.
func resolve(name string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return config{}, nil
		}

		section, ok := doc[name].(map[string]any)
		if !ok {
			return config{}, nil
		}

		result := make(config, len(section))
		for key, value := range section {
			result[key] = flagValue(value)
		}

		return result, nil
	}
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys
	// may use underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flagValue converts a decoded YAML value to a form kong can parse.
func flagValue(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		list := make([]any, len(v))
		for i, e := range v {
			list[i] = flagValue(e)
		}

		return list
	default:
		return v
	}
}

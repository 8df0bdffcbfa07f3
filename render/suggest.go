package render

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/tpp/define"
)

// maxSuggestions bounds the candidates named in an undefined-variable error.
const maxSuggestions = 3

// missingKey matches the text/template error for a map lookup that failed
// under missingkey=error, capturing the field chain and the missing key.
var missingKey = regexp.MustCompile(
	`at <\.?([^>]*)>: map has no entry for key "([^"]*)"`,
)

// executeError classifies an execution failure. An undefined variable in
// strict mode becomes [ErrUndefined] listing the closest defined keys.
func (e *Engine) executeError(err error, name string, defines *define.Map) error {
	m := missingKey.FindStringSubmatch(err.Error())
	if m == nil {
		return ErrExecute.Wrap(err).With(slog.String("template", name))
	}

	chain, key := m[1], m[2]

	suggest := suggestKeys(defines, chain, key)
	if len(suggest) > 0 {
		err = fmt.Errorf("%w (did you mean %s?)", err, strings.Join(suggest, ", "))
	}

	return ErrUndefined.Wrap(err).With(
		slog.String("template", name),
		slog.String("key", chain),
		slog.Any("suggest", suggest),
	)
}

// suggestKeys returns up to maxSuggestions define paths that fuzzily match
// chain, falling back to matching the missing key alone.
func suggestKeys(defines *define.Map, chain, key string) []string {
	var paths []string
	for path := range defines.Walk() {
		paths = append(paths, path.String())
	}

	for _, pattern := range []string{chain, key} {
		if pattern == "" {
			continue
		}

		matches := fuzzy.Find(pattern, paths)
		if len(matches) == 0 {
			continue
		}

		out := make([]string, 0, maxSuggestions)
		for _, match := range matches[:min(len(matches), maxSuggestions)] {
			out = append(out, match.Str)
		}

		return out
	}

	return nil
}

package substitute

import (
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

// Fill replaces {name} tokens in templateText with values from ctx. Each
// occurrence is substituted independently; a name missing from ctx (or
// mapped to "") is left in place and recorded once per occurrence in the
// returned unfilled list. Pure function, no side effects.
func Fill(templateText string, ctx map[string]string) (string, []string) {
	var unfilled []string
	filled := placeholderRe.ReplaceAllStringFunc(templateText, func(token string) string {
		name := token[1 : len(token)-1]
		if value := ctx[name]; value != "" {
			return value
		}
		unfilled = append(unfilled, name)
		return token
	})
	return filled, unfilled
}

// PlaceholderNames returns every placeholder name in the template text, in
// order of occurrence, duplicates included.
func PlaceholderNames(templateText string) []string {
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(templateText, -1) {
		names = append(names, m[1])
	}
	return names
}

// CanUseDirectly reports whether a matched template can answer the guest
// without any LLM call. It fails fast on a short score or empty text, then
// requires every placeholder to fill from ctx.
func CanUseDirectly(templateText string, score, scoreThreshold float64, ctx map[string]string) (bool, string, []string) {
	if score < scoreThreshold {
		return false, "", nil
	}
	if strings.TrimSpace(templateText) == "" {
		return false, "", nil
	}

	filled, unfilled := Fill(templateText, ctx)
	return len(unfilled) == 0, filled, unfilled
}

package config

import (
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// lookupFunc reports the value of a variable and whether it is defined.
type lookupFunc func(name string) (string, bool)

// interpolate replaces every ${name} and ${name:default} token in template.
//
// The name is split from the default at the first ':' and both parts are
// trimmed, so a default may itself contain ':'. Undefined names without a
// default become the empty string. Replacement text is not scanned again.
func interpolate(template string, lookup lookupFunc) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
		inside := token[2 : len(token)-1]

		name, def, hasDefault := strings.Cut(inside, ":")
		if v, ok := lookup(strings.TrimSpace(name)); ok {
			return v
		}
		if hasDefault {
			return strings.TrimSpace(def)
		}
		return ""
	})
}

// hasPlaceholder reports whether s contains at least one ${...} token.
func hasPlaceholder(s string) bool {
	return placeholderPattern.MatchString(s)
}

// Package placeholder substitutes file paths into the wrapped command's argv.
package placeholder

import (
	"sort"
	"strings"
)

const (
	// StdinFile is replaced by the path of the temporary stdin copy.
	StdinFile = "{stdin_file}"
	// File is replaced by the --file path.
	File = "{file}"
)

// Expand replaces every occurrence of each token in values within every
// argument, including the executable name. Replacement is plain text: a
// substituted path that itself contains a token is not expanded again, and
// there is no escape syntax. args is not modified.
func Expand(args []string, values map[string]string) []string {
	out := make([]string, len(args))
	copy(out, args)
	if len(values) == 0 {
		return out
	}

	pairs := make([]string, 0, len(values)*2)
	for _, token := range sortedTokens(values) {
		if token == "" {
			continue
		}
		pairs = append(pairs, token, values[token])
	}
	r := strings.NewReplacer(pairs...)
	for i, arg := range out {
		out[i] = r.Replace(arg)
	}
	return out
}

// Longer tokens first so that a token that prefixes another never wins.
func sortedTokens(values map[string]string) []string {
	tokens := make([]string, 0, len(values))
	for token := range values {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})
	return tokens
}

package step

import (
	"fmt"
	"strconv"
	"strings"
)

// rawEntity is one parsed `#id=KIND(f0,f1,...);` record with its
// top-level comma-separated argument fields split out but not yet
// interpreted — interpretation is kind-specific and happens in
// reader.go.
type rawEntity struct {
	kind   string
	fields []string
}

// splitTopLevel splits s on commas that are not nested inside parens
// or a quoted string, leaving each field's own parens/quotes intact
// for the next level of parsing.
func splitTopLevel(s string) []string {
	var out []string
	depth := 0
	inQuote := false
	start := 0
	for i, r := range s {
		switch r {
		case '\'':
			inQuote = !inQuote
		case '(':
			if !inQuote {
				depth++
			}
		case ')':
			if !inQuote {
				depth--
			}
		case ',':
			if !inQuote && depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

func stripParens(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		return s[1 : len(s)-1]
	}
	return s
}

func parseRef(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return 0, fmt.Errorf("step: %q is not an entity reference", s)
	}
	return strconv.Atoi(s[1:])
}

func parseRefList(s string) ([]int, error) {
	fields := splitTopLevel(stripParens(s))
	var out []int
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		ref, err := parseRef(f)
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseFloatList(s string) ([]float64, error) {
	fields := splitTopLevel(stripParens(s))
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseFloat(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseBool(s string) bool {
	return strings.TrimSpace(s) == ".T."
}

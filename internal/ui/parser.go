package ui

import (
	"strings"
)

// ParseCSS parses a primitive CSS file: selectors .class or #id (comma-separated lists allowed) and blocks
// of "key: value;". No combinators, no @rules. Later rules override earlier ones for the same property.
// Blocks with unsupported selectors are skipped.
func ParseCSS(content string) *Stylesheet {
	sheet := &Stylesheet{}
	content = stripCSSComments(content)
	for {
		rules, rest, ok := parseOneBlock(content)
		if !ok {
			break
		}
		sheet.Rules = append(sheet.Rules, rules...)
		content = rest
	}
	return sheet
}

func stripCSSComments(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if i+1 < len(s) && s[i] == '/' && s[i+1] == '*' {
			j := i + 2
			for j+1 < len(s) && !(s[j] == '*' && s[j+1] == '/') {
				j++
			}
			i = j + 2
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// parseOneBlock finds the next "selectors { ... }" and returns one rule per supported selector plus the rest.
func parseOneBlock(s string) ([]Rule, string, bool) {
	for {
		open := strings.Index(s, "{")
		if open == -1 {
			return nil, "", false
		}
		close := findMatchingBrace(s, open)
		if close == -1 {
			return nil, "", false
		}
		var rules []Rule
		props := parseDeclarations(s[open+1 : close])
		for _, sel := range strings.Split(s[:open], ",") {
			sel = strings.TrimSpace(sel)
			if !validSelector(sel) {
				continue
			}
			own := make(map[string]string, len(props))
			for k, v := range props {
				own[k] = v
			}
			rules = append(rules, Rule{Selector: sel, Props: own})
		}
		rest := s[close+1:]
		if len(rules) > 0 {
			return rules, rest, true
		}
		s = rest
	}
}

func validSelector(sel string) bool {
	if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
		return false
	}
	return !strings.ContainsAny(sel[1:], " .#>:+~[")
}

func findMatchingBrace(s string, openIdx int) int {
	depth := 1
	for i := openIdx + 1; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parseDeclarations(body string) map[string]string {
	props := make(map[string]string)
	for _, part := range strings.Split(body, ";") {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			props[k] = strings.TrimSpace(v)
		}
	}
	return props
}

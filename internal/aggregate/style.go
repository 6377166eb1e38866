package aggregate

import (
	"fmt"
	"sort"
	"strings"
)

// StyleRule maps SKUs containing any keyword to a style name.
type StyleRule struct {
	Keywords []string `json:"keywords"`
	Style    string   `json:"style"`
}

// ParseStyleRules reads "kw1, kw2 => Style" lines. Blank lines and lines
// starting with # are ignored.
func ParseStyleRules(lines []string) ([]StyleRule, error) {
	rules := make([]StyleRule, 0, len(lines))
	for n, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lhs, rhs, ok := strings.Cut(line, "=>")
		if !ok {
			return nil, fmt.Errorf("style rule %d: missing \"=>\" in %q", n+1, line)
		}
		style := strings.TrimSpace(rhs)
		if style == "" {
			return nil, fmt.Errorf("style rule %d: empty style name", n+1)
		}
		keywords := make([]string, 0)
		for _, kw := range strings.Split(lhs, ",") {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("style rule %d: no keywords", n+1)
		}
		rules = append(rules, StyleRule{Keywords: keywords, Style: style})
	}
	return rules, nil
}

// ParseStyleRulesText splits free text into lines and parses them.
func ParseStyleRulesText(text string) ([]StyleRule, error) {
	return ParseStyleRules(strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n"))
}

// ApplyStyle returns the style of the first rule with a keyword in sku, or
// the trimmed sku itself.
func ApplyStyle(sku string, rules []StyleRule) string {
	lower := strings.ToLower(sku)
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Style
			}
		}
	}
	return strings.TrimSpace(sku)
}

func colorKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DetectColor finds the longest listed colour inside text, ignoring case,
// spaces and punctuation. It returns "" when none is present.
func DetectColor(text string, colors []string) string {
	candidates := make([]string, len(colors))
	copy(candidates, colors)
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(colorKey(candidates[i])) > len(colorKey(candidates[j]))
	})
	key := colorKey(text)
	for _, c := range candidates {
		if k := colorKey(c); k != "" && strings.Contains(key, k) {
			return strings.ToUpper(strings.TrimSpace(c))
		}
	}
	return ""
}

// NormalizeCourier maps courier spellings onto canonical names. The longest
// alias contained in the name wins, ties going to the alphabetically first;
// unknown couriers are returned trimmed.
func NormalizeCourier(name string, aliases map[string]string) string {
	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)
	if v, ok := aliases[lower]; ok {
		return v
	}
	for _, alias := range aliasesByLength(aliases) {
		if alias != "" && strings.Contains(lower, alias) {
			return aliases[alias]
		}
	}
	return trimmed
}

func aliasesByLength(aliases map[string]string) []string {
	keys := make([]string, 0, len(aliases))
	for alias := range aliases {
		keys = append(keys, alias)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

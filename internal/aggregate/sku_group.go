package aggregate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"meesho-recon/internal/domain"
)

// ParseSKUGroupRule reads a "kw1, kw2 => Group Name" definition.
func ParseSKUGroupRule(rule string) (string, []string, error) {
	lhs, rhs, ok := strings.Cut(rule, "=>")
	if !ok {
		return "", nil, fmt.Errorf("sku group rule: missing \"=>\" in %q", rule)
	}
	return strings.TrimSpace(rhs), strings.Split(lhs, ","), nil
}

// NewSKUGroup snapshots every known SKU containing any of the keywords,
// case-insensitively. Later uploads do not change the group.
func NewSKUGroup(name string, keywords []string, knownSKUs []string, now time.Time) (domain.SKUGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.SKUGroup{}, fmt.Errorf("sku group name is required")
	}
	needles := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			needles = append(needles, kw)
		}
	}
	if len(needles) == 0 {
		return domain.SKUGroup{}, fmt.Errorf("sku group %q needs at least one keyword", name)
	}

	seen := make(map[string]bool)
	skus := make([]string, 0)
	for _, sku := range knownSKUs {
		sku = strings.TrimSpace(sku)
		if sku == "" || seen[sku] {
			continue
		}
		lower := strings.ToLower(sku)
		for _, kw := range needles {
			if strings.Contains(lower, strings.ToLower(kw)) {
				seen[sku] = true
				skus = append(skus, sku)
				break
			}
		}
	}
	sort.Strings(skus)

	return domain.SKUGroup{Name: name, Keywords: needles, SKUs: skus, CreatedAt: now}, nil
}

// ActiveGroups picks the groups named in names, ignoring case. Unknown names
// are returned separately.
func ActiveGroups(groups []domain.SKUGroup, names []string) ([]domain.SKUGroup, []string) {
	active := make([]domain.SKUGroup, 0, len(names))
	unknown := make([]string, 0)
	for _, name := range names {
		found := false
		for _, g := range groups {
			if strings.EqualFold(g.Name, strings.TrimSpace(name)) {
				active = append(active, g)
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, name)
		}
	}
	return active, unknown
}

// UnionSKUs merges manual picks with the members of every group, sorted and
// deduplicated so the result does not depend on activation order.
func UnionSKUs(manual []string, groups []domain.SKUGroup) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range manual {
		add(s)
	}
	for _, g := range groups {
		for _, s := range g.SKUs {
			add(s)
		}
	}
	sort.Strings(out)
	return out
}

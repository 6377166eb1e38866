package resolver

import (
	"sort"
	"strings"

	"meesho-recon/internal/domain"
)

// Column is the outcome of resolving a semantic field. The zero value is
// "not found"; callers must check Found before using Name.
type Column struct {
	Name  string
	Index int
	found bool
}

func (c Column) Found() bool {
	return c.found
}

// Resolver finds the column backing each semantic field by ordered keyword
// groups. A group matches a column when every keyword occurs in it,
// case-insensitively.
type Resolver struct {
	groups map[domain.Field][][]string
}

func New(groups map[domain.Field][][]string) *Resolver {
	normalized := make(map[domain.Field][][]string, len(groups))
	for field, gs := range groups {
		out := make([][]string, 0, len(gs))
		for _, g := range gs {
			kws := make([]string, 0, len(g))
			for _, kw := range g {
				if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
					kws = append(kws, kw)
				}
			}
			if len(kws) > 0 {
				out = append(out, kws)
			}
		}
		normalized[field] = out
	}
	return &Resolver{groups: normalized}
}

// Resolve returns the first column matching the first group that has any
// match. Fields without configured groups never resolve.
func (r *Resolver) Resolve(table *domain.Table, field domain.Field) Column {
	if table == nil {
		return Column{}
	}
	return match(table.Columns, r.groups[field])
}

func match(columns []string, groups [][]string) Column {
	lowered := make([]string, len(columns))
	for i, c := range columns {
		lowered[i] = strings.ToLower(strings.TrimSpace(c))
	}
	for _, group := range groups {
		for i, col := range lowered {
			if containsAll(col, group) {
				return Column{Name: columns[i], Index: i, found: true}
			}
		}
	}
	return Column{}
}

func containsAll(s string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(s, kw) {
			return false
		}
	}
	return true
}

// ResolveAll resolves each field against table.
func (r *Resolver) ResolveAll(table *domain.Table, fields ...domain.Field) Resolution {
	res := Resolution{columns: make(map[domain.Field]Column, len(fields))}
	for _, f := range fields {
		res.columns[f] = r.Resolve(table, f)
	}
	return res
}

// Resolution is a set of resolved fields for one table.
type Resolution struct {
	columns map[domain.Field]Column
}

func (res Resolution) Column(field domain.Field) Column {
	return res.columns[field]
}

// Name returns the resolved column name and whether the field resolved.
func (res Resolution) Name(field domain.Field) (string, bool) {
	c := res.columns[field]
	return c.Name, c.found
}

// Missing lists the given fields that did not resolve, in argument order.
// With no arguments every unresolved field is listed, sorted.
func (res Resolution) Missing(fields ...domain.Field) []domain.Field {
	missing := make([]domain.Field, 0)
	if len(fields) == 0 {
		for f, c := range res.columns {
			if !c.found {
				missing = append(missing, f)
			}
		}
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return missing
	}
	for _, f := range fields {
		if !res.columns[f].found {
			missing = append(missing, f)
		}
	}
	return missing
}

// Require fails with a *domain.MissingFieldError when any field is unresolved.
func (res Resolution) Require(operation string, fields ...domain.Field) error {
	if missing := res.Missing(fields...); len(missing) > 0 {
		return &domain.MissingFieldError{Operation: operation, Fields: missing}
	}
	return nil
}

// Resolved maps every resolved field to its column name.
func (res Resolution) Resolved() map[domain.Field]string {
	out := make(map[domain.Field]string)
	for f, c := range res.columns {
		if c.found {
			out[f] = c.Name
		}
	}
	return out
}

package aggregate

import (
	"fmt"
	"strings"
	"time"

	"meesho-recon/internal/domain"
)

// Filter is the operator's current selection. Dimensions compose by AND;
// an empty dimension does not restrict.
type Filter struct {
	// DateField selects which record date From/To apply to. Defaults to order date.
	DateField domain.Field `json:"date_field,omitempty"`
	From      *time.Time   `json:"from,omitempty"`
	To        *time.Time   `json:"to,omitempty"`

	// Statuses and IncludeBlank combine by OR: a row passes when its status is
	// selected or, with IncludeBlank, when its status is blank.
	Statuses     []domain.Status `json:"statuses,omitempty"`
	IncludeBlank bool            `json:"include_blank,omitempty"`

	SKUs []string `json:"skus,omitempty"`
	// ActiveGroups names the session SKU groups applied to this filter.
	// Groups holds those groups and is attached by the session.
	ActiveGroups []string          `json:"active_groups,omitempty"`
	Groups       []domain.SKUGroup `json:"-"`
	Sizes      []string          `json:"sizes,omitempty"`
	States     []string          `json:"states,omitempty"`
	CatalogIDs []string          `json:"catalog_ids,omitempty"`
}

// Validate rejects inverted ranges and date fields records do not carry.
func (f Filter) Validate() error {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return fmt.Errorf("from date %s is after to date %s", f.From.Format("2006-01-02"), f.To.Format("2006-01-02"))
	}
	switch f.DateField {
	case "", domain.FieldOrderDate, domain.FieldDispatchDate, domain.FieldPaymentDate:
		return nil
	}
	return fmt.Errorf("unsupported date field %q", f.DateField)
}

// SKUSet is the union of manually picked SKUs and every active group.
func (f Filter) SKUSet() map[string]bool {
	set := make(map[string]bool)
	for _, s := range UnionSKUs(f.SKUs, f.Groups) {
		set[s] = true
	}
	return set
}

// Matcher is a compiled filter.
type Matcher struct {
	filter     Filter
	statuses   map[domain.Status]bool
	skus       map[string]bool
	sizes      map[string]bool
	states     map[string]bool
	catalogIDs map[string]bool
	blank      bool
	from, to   *time.Time
}

func lowerSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = true
	}
	return set
}

func day(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// Compile prepares a filter for repeated matching.
func Compile(f Filter) (*Matcher, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	m := &Matcher{
		filter:     f,
		sizes:      lowerSet(f.Sizes),
		states:     lowerSet(f.States),
		catalogIDs: lowerSet(f.CatalogIDs),
		blank:      f.IncludeBlank,
		from:       day(f.From),
		to:         day(f.To),
	}
	if len(f.Statuses) > 0 {
		m.statuses = make(map[domain.Status]bool, len(f.Statuses))
		for _, s := range f.Statuses {
			if s == domain.StatusBlank {
				m.blank = true
				continue
			}
			m.statuses[s] = true
		}
	}
	if skus := f.SKUSet(); len(skus) > 0 {
		m.skus = skus
	}
	return m, nil
}

func (m *Matcher) date(r domain.OrderRecord) *time.Time {
	switch m.filter.DateField {
	case domain.FieldDispatchDate:
		return r.DispatchDate
	case domain.FieldPaymentDate:
		return r.PaymentDate
	default:
		return r.OrderDate
	}
}

// Match reports whether a record passes every active dimension.
func (m *Matcher) Match(r domain.OrderRecord) bool {
	if m.from != nil || m.to != nil {
		d := day(m.date(r))
		if d == nil {
			return false
		}
		if m.from != nil && d.Before(*m.from) {
			return false
		}
		if m.to != nil && d.After(*m.to) {
			return false
		}
	}

	if m.statuses != nil || m.blank {
		named := r.Bucket.IsNamed() && m.statuses[r.Status]
		blank := m.blank && r.Bucket == domain.BucketPlatformRecovery
		if !named && !blank {
			return false
		}
	}

	if m.skus != nil && !m.skus[strings.TrimSpace(r.SKU)] {
		return false
	}
	if m.sizes != nil && !m.sizes[strings.ToLower(r.Size)] {
		return false
	}
	if m.states != nil && !m.states[strings.ToLower(r.State)] {
		return false
	}
	if m.catalogIDs != nil && !m.catalogIDs[strings.ToLower(r.CatalogID)] {
		return false
	}
	return true
}

// Apply returns the matching records and a view of the matching table rows.
// Neither the source table nor the records are modified.
func Apply(table *domain.Table, records []domain.OrderRecord, f Filter) ([]domain.OrderRecord, *domain.Table, error) {
	m, err := Compile(f)
	if err != nil {
		return nil, nil, err
	}
	kept := make([]domain.OrderRecord, 0, len(records))
	view := domain.NewTable(table.Columns)
	for _, r := range records {
		if !m.Match(r) {
			continue
		}
		kept = append(kept, r)
		if r.Row >= 0 && r.Row < table.Len() {
			view.Rows = append(view.Rows, table.Rows[r.Row])
		}
	}
	return kept, view, nil
}

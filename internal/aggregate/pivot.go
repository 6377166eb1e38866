package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"meesho-recon/internal/domain"
	"meesho-recon/internal/parser"
)

const (
	GrandTotal      = "Grand Total"
	SingleAxisTotal = "Total"
	BlankKey        = "(blank)"
)

type Aggregation string

const (
	AggSum   Aggregation = "sum"
	AggCount Aggregation = "count"
)

// PivotSpec describes a pivot. With Column set the distinct values of that
// column become value columns and exactly one value is aggregated; without
// it every entry of Values becomes a column.
type PivotSpec struct {
	Rows   []string    `json:"rows"`
	Column string      `json:"column,omitempty"`
	Values []string    `json:"values,omitempty"`
	Agg    Aggregation `json:"agg"`
}

func (s PivotSpec) validate(t *domain.Table) error {
	if len(s.Rows) == 0 {
		return fmt.Errorf("pivot needs at least one row key")
	}
	for _, c := range s.Rows {
		if !t.HasColumn(c) {
			return fmt.Errorf("pivot row key %q: %w", c, domain.ErrTableNotFound)
		}
	}
	if s.Column != "" && !t.HasColumn(s.Column) {
		return fmt.Errorf("pivot column %q: %w", s.Column, domain.ErrTableNotFound)
	}
	if s.Agg != AggSum && s.Agg != AggCount {
		return fmt.Errorf("unsupported aggregation %q", s.Agg)
	}
	if s.Agg == AggSum && len(s.Values) == 0 {
		return fmt.Errorf("sum pivot needs a value column")
	}
	if s.Column != "" && len(s.Values) > 1 {
		return fmt.Errorf("two-axis pivot takes a single value column")
	}
	for _, v := range s.Values {
		if !t.HasColumn(v) {
			return fmt.Errorf("pivot value %q: %w", v, domain.ErrTableNotFound)
		}
	}
	return nil
}

func keyOf(v domain.Value) string {
	s := strings.TrimSpace(v.String())
	if s == "" {
		return BlankKey
	}
	return s
}

// Pivot groups table rows and aggregates them. Absent combinations are 0,
// never null, and the result carries its Grand Total row and, for two-axis
// or multi-value pivots, a total column.
func Pivot(t *domain.Table, spec PivotSpec) (*domain.Table, error) {
	if err := spec.validate(t); err != nil {
		return nil, err
	}

	rowIdx := make([]int, len(spec.Rows))
	for i, c := range spec.Rows {
		rowIdx[i] = t.ColumnIndex(c)
	}

	valueLabels := spec.Values
	if spec.Agg == AggCount && len(valueLabels) == 0 {
		valueLabels = []string{"Count"}
	}

	type group struct {
		keys  []string
		cells map[string]decimal.Decimal
	}
	groups := make(map[string]*group)
	colSet := make(map[string]bool)

	for _, row := range t.Rows {
		keys := make([]string, len(rowIdx))
		for i, idx := range rowIdx {
			keys[i] = keyOf(row[idx])
		}
		gk := strings.Join(keys, "\x1f")
		g, ok := groups[gk]
		if !ok {
			g = &group{keys: keys, cells: make(map[string]decimal.Decimal)}
			groups[gk] = g
		}

		add := func(col string, valueColumn string) {
			colSet[col] = true
			inc := decimal.NewFromInt(1)
			if spec.Agg == AggSum {
				inc = decimal.Zero
				if d, ok := parser.AmountOf(t.Cell(row, valueColumn)); ok {
					inc = d
				}
			}
			g.cells[col] = g.cells[col].Add(inc)
		}

		if spec.Column != "" {
			value := ""
			if len(spec.Values) > 0 {
				value = spec.Values[0]
			}
			add(keyOf(t.Cell(row, spec.Column)), value)
			continue
		}
		for i, label := range valueLabels {
			value := ""
			if i < len(spec.Values) {
				value = spec.Values[i]
			}
			add(label, value)
		}
	}

	valueCols := valueLabels
	if spec.Column != "" {
		valueCols = make([]string, 0, len(colSet))
		for c := range colSet {
			valueCols = append(valueCols, c)
		}
		sort.Strings(valueCols)
	}

	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i].keys, ordered[j].keys
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})

	out := domain.NewTable(append(append([]string{}, spec.Rows...), valueCols...))
	for _, g := range ordered {
		row := make([]domain.Value, 0, len(out.Columns))
		for _, k := range g.keys {
			row = append(row, domain.Text(k))
		}
		for _, c := range valueCols {
			row = append(row, domain.Number(g.cells[c]))
		}
		out.Rows = append(out.Rows, row)
	}

	totalColumn := ""
	switch {
	case spec.Column != "":
		totalColumn = GrandTotal
	case len(valueCols) > 1:
		totalColumn = SingleAxisTotal
	}
	return AddGrandTotals(out, len(spec.Rows), totalColumn), nil
}

// AddGrandTotals appends the total column (when totalColumn is non-empty)
// and then the Grand Total row, so the bottom-right cell is the sum of all
// data cells. The first labelCols columns are labels; the rest are summed
// with blanks counted as 0. A table that already ends in a Grand Total row
// is returned unchanged.
func AddGrandTotals(t *domain.Table, labelCols int, totalColumn string) *domain.Table {
	if n := t.Len(); n > 0 && t.Rows[n-1][0].String() == GrandTotal {
		return t
	}

	sumRow := func(row []domain.Value) decimal.Decimal {
		total := decimal.Zero
		for i := labelCols; i < len(row); i++ {
			if d, ok := parser.AmountOf(row[i]); ok {
				total = total.Add(d)
			}
		}
		return total
	}
	if totalColumn != "" && !t.HasColumn(totalColumn) {
		t.AddColumn(totalColumn, func(_ int, row []domain.Value) domain.Value {
			return domain.Number(sumRow(row))
		})
	}

	grand := make([]domain.Value, len(t.Columns))
	for i := range grand {
		if i < labelCols {
			grand[i] = domain.Null()
			continue
		}
		total := decimal.Zero
		for _, row := range t.Rows {
			if d, ok := parser.AmountOf(row[i]); ok {
				total = total.Add(d)
			}
		}
		grand[i] = domain.Number(total)
	}
	if labelCols > 0 {
		grand[0] = domain.Text(GrandTotal)
	}
	t.Rows = append(t.Rows, grand)
	return t
}

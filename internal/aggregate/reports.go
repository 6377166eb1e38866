package aggregate

import (
	"fmt"
	"strings"

	"meesho-recon/internal/domain"
	"meesho-recon/internal/parser"
	"meesho-recon/internal/resolver"
)

// column is one derived column of a working table.
type column struct {
	name string
	fn   func(row []domain.Value) domain.Value
}

func project(t *domain.Table, cols []column) *domain.Table {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	out := domain.NewTable(names)
	for _, row := range t.Rows {
		cells := make([]domain.Value, len(cols))
		for i, c := range cols {
			cells[i] = c.fn(row)
		}
		out.Rows = append(out.Rows, cells)
	}
	return out
}

func copyOf(t *domain.Table, name string) func(row []domain.Value) domain.Value {
	return func(row []domain.Value) domain.Value {
		return t.Cell(row, name)
	}
}

func dateKey(t *domain.Table, name string) func(row []domain.Value) domain.Value {
	return func(row []domain.Value) domain.Value {
		if d, ok := parser.DateOf(t.Cell(row, name)); ok {
			return domain.Text(d.Format("2006-01-02"))
		}
		return domain.Null()
	}
}

// StyleOptions configure the Style / Size / Color pivot.
type StyleOptions struct {
	Rules  []StyleRule
	Colors []string
}

// StylePivot groups by derived Style, Size and Color. With a reason column
// the reasons become value columns; quantities are summed when a quantity
// column resolves, otherwise rows are counted.
func StylePivot(t *domain.Table, res resolver.Resolution, opts StyleOptions) (*domain.Table, error) {
	if err := res.Require("style pivot", domain.FieldSKU); err != nil {
		return nil, err
	}
	skuCol, _ := res.Name(domain.FieldSKU)
	sizeCol, hasSize := res.Name(domain.FieldSize)
	colorCol, hasColor := res.Name(domain.FieldColor)
	reasonCol, hasReason := res.Name(domain.FieldReason)
	qtyCol, hasQty := res.Name(domain.FieldQuantity)

	cols := []column{
		{domain.ColumnStyle, func(row []domain.Value) domain.Value {
			return domain.Text(ApplyStyle(t.Cell(row, skuCol).String(), opts.Rules))
		}},
		{"Size", func(row []domain.Value) domain.Value {
			if !hasSize {
				return domain.Null()
			}
			return t.Cell(row, sizeCol)
		}},
		{"Color", func(row []domain.Value) domain.Value {
			if hasColor {
				if c := strings.TrimSpace(t.Cell(row, colorCol).String()); c != "" {
					return domain.Text(strings.ToUpper(c))
				}
			}
			if c := DetectColor(t.Cell(row, skuCol).String(), opts.Colors); c != "" {
				return domain.Text(c)
			}
			return domain.Null()
		}},
	}
	spec := PivotSpec{Rows: []string{domain.ColumnStyle, "Size", "Color"}, Agg: AggCount}
	if hasReason {
		cols = append(cols, column{"Reason", copyOf(t, reasonCol)})
		spec.Column = "Reason"
	}
	if hasQty {
		cols = append(cols, column{"Quantity", copyOf(t, qtyCol)})
		spec.Agg = AggSum
		spec.Values = []string{"Quantity"}
	}
	return Pivot(project(t, cols), spec)
}

// CourierPivot counts orders per dispatch (or order) date and normalised courier.
func CourierPivot(t *domain.Table, res resolver.Resolution, aliases map[string]string) (*domain.Table, error) {
	dateField := domain.FieldDispatchDate
	if _, ok := res.Name(dateField); !ok {
		dateField = domain.FieldOrderDate
	}
	if err := res.Require("courier pivot", dateField, domain.FieldCourier); err != nil {
		return nil, err
	}
	dateCol, _ := res.Name(dateField)
	courierCol, _ := res.Name(domain.FieldCourier)

	work := project(t, []column{
		{"Date", dateKey(t, dateCol)},
		{"Courier", func(row []domain.Value) domain.Value {
			c := NormalizeCourier(t.Cell(row, courierCol).String(), aliases)
			if c == "" {
				return domain.Null()
			}
			return domain.Text(c)
		}},
	})
	return Pivot(work, PivotSpec{Rows: []string{"Date"}, Column: "Courier", Agg: AggCount})
}

// ReturnReasonPivot sums quantity per SKU and reason for returns exports.
func ReturnReasonPivot(t *domain.Table, res resolver.Resolution) (*domain.Table, error) {
	if err := res.Require("return reason pivot", domain.FieldSKU, domain.FieldReason); err != nil {
		return nil, err
	}
	skuCol, _ := res.Name(domain.FieldSKU)
	reasonCol, _ := res.Name(domain.FieldReason)
	qtyCol, hasQty := res.Name(domain.FieldQuantity)

	cols := []column{
		{"SKU", copyOf(t, skuCol)},
		{"Reason", copyOf(t, reasonCol)},
	}
	spec := PivotSpec{Rows: []string{"SKU"}, Column: "Reason", Agg: AggCount}
	if hasQty {
		cols = append(cols, column{"Quantity", copyOf(t, qtyCol)})
		spec.Agg = AggSum
		spec.Values = []string{"Quantity"}
	}
	return Pivot(project(t, cols), spec)
}

// PaymentPivot sums settlement per payment date and status bucket.
func PaymentPivot(records []domain.OrderRecord) *domain.Table {
	work := domain.NewTable([]string{"Payment Date", "Status", "Amount"})
	for _, r := range records {
		date := domain.Null()
		if r.PaymentDate != nil {
			date = domain.Text(r.PaymentDate.Format("2006-01-02"))
		}
		amount := domain.Null()
		if r.Settlement != nil {
			amount = domain.Number(*r.Settlement)
		}
		work.AppendRow([]domain.Value{date, domain.Text(string(r.Bucket)), amount})
	}
	out, _ := Pivot(work, PivotSpec{Rows: []string{"Payment Date"}, Column: "Status", Values: []string{"Amount"}, Agg: AggSum})
	return out
}

// FieldPivotSpec names a pivot by semantic fields. An empty Value counts rows.
type FieldPivotSpec struct {
	Rows   []domain.Field `json:"rows"`
	Column domain.Field   `json:"column,omitempty"`
	Value  domain.Field   `json:"value,omitempty"`
}

func isDateField(f domain.Field) bool {
	return f == domain.FieldOrderDate || f == domain.FieldDispatchDate || f == domain.FieldPaymentDate
}

// FieldPivot pivots a filtered view whose rows line up with records. Status
// is the classified bucket, dates are day keys and other fields are the
// resolved cell values.
func FieldPivot(view *domain.Table, records []domain.OrderRecord, res resolver.Resolution, spec FieldPivotSpec) (*domain.Table, error) {
	if len(spec.Rows) == 0 {
		return nil, fmt.Errorf("pivot needs at least one row field")
	}
	if view.Len() != len(records) {
		return nil, fmt.Errorf("pivot rows (%d) and records (%d) out of step", view.Len(), len(records))
	}

	fields := append([]domain.Field{}, spec.Rows...)
	if spec.Column != "" {
		fields = append(fields, spec.Column)
	}
	seen := make(map[domain.Field]bool)
	for _, f := range fields {
		if seen[f] {
			return nil, fmt.Errorf("pivot field %q used twice", f)
		}
		seen[f] = true
	}
	needed := make([]domain.Field, 0, len(fields)+1)
	for _, f := range fields {
		if f != domain.FieldStatus {
			needed = append(needed, f)
		}
	}
	if spec.Value != "" {
		needed = append(needed, spec.Value)
	}
	if err := res.Require("pivot", needed...); err != nil {
		return nil, err
	}

	cols := make([]column, 0, len(fields)+1)
	for _, f := range fields {
		if f == domain.FieldStatus {
			cols = append(cols, column{string(f), nil})
			continue
		}
		name, _ := res.Name(f)
		if isDateField(f) {
			cols = append(cols, column{string(f), dateKey(view, name)})
			continue
		}
		cols = append(cols, column{string(f), copyOf(view, name)})
	}
	if spec.Value != "" {
		name, _ := res.Name(spec.Value)
		cols = append(cols, column{string(spec.Value), copyOf(view, name)})
	}

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	work := domain.NewTable(names)
	for i, row := range view.Rows {
		cells := make([]domain.Value, len(cols))
		for j, c := range cols {
			if c.fn == nil {
				cells[j] = domain.Text(string(records[i].Bucket))
				continue
			}
			cells[j] = c.fn(row)
		}
		work.Rows = append(work.Rows, cells)
	}

	pivot := PivotSpec{Column: string(spec.Column), Agg: AggCount}
	for _, f := range spec.Rows {
		pivot.Rows = append(pivot.Rows, string(f))
	}
	if spec.Value != "" {
		pivot.Agg = AggSum
		pivot.Values = []string{string(spec.Value)}
	}
	return Pivot(work, pivot)
}

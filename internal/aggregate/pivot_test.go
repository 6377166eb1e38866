package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meesho-recon/internal/config"
	"meesho-recon/internal/domain"
	"meesho-recon/internal/parser"
	"meesho-recon/internal/resolver"
)

func mkTable(cols []string, rows ...[]string) *domain.Table {
	t := domain.NewTable(cols)
	for _, r := range rows {
		cells := make([]domain.Value, len(r))
		for i, s := range r {
			cells[i] = parser.CoerceCell(s)
		}
		t.AppendRow(cells)
	}
	return t
}

func num(t *testing.T, v domain.Value) decimal.Decimal {
	d, ok := v.Decimal()
	require.True(t, ok, "expected number, got %q", v.String())
	return d
}

func TestPivot_GrandTotalsAreConsistent(t *testing.T) {
	src := mkTable([]string{"Style", "Size", "Reason", "Quantity"},
		[]string{"A", "M", "DAMAGED", "2"},
		[]string{"A", "M", "WRONG", "1"},
		[]string{"A", "L", "DAMAGED", "3"},
		[]string{"B", "M", "WRONG", "4"},
	)

	pv, err := Pivot(src, PivotSpec{Rows: []string{"Style", "Size"}, Column: "Reason", Values: []string{"Quantity"}, Agg: AggSum})
	require.NoError(t, err)

	assert.Equal(t, []string{"Style", "Size", "DAMAGED", "WRONG", GrandTotal}, pv.Columns)
	require.Equal(t, 4, pv.Len(), "three groups plus the Grand Total row")

	// B/M has no DAMAGED rows: filled with 0, not null.
	bm := pv.Rows[2]
	assert.Equal(t, "B", bm[0].String())
	assert.True(t, num(t, bm[2]).IsZero())

	data := pv.Rows[:pv.Len()-1]
	grand := pv.Rows[pv.Len()-1]
	assert.Equal(t, GrandTotal, grand[0].String())

	all := decimal.Zero
	for c := 2; c < 4; c++ {
		col := decimal.Zero
		for _, row := range data {
			col = col.Add(num(t, row[c]))
		}
		assert.True(t, col.Equal(num(t, grand[c])), "column %d", c)
		all = all.Add(col)
	}
	for _, row := range data {
		assert.True(t, num(t, row[2]).Add(num(t, row[3])).Equal(num(t, row[4])))
	}
	assert.True(t, all.Equal(num(t, grand[4])), "bottom-right is the sum of all cells")
	assert.True(t, decimal.NewFromInt(10).Equal(num(t, grand[4])))
}

func TestPivot_SingleAxis(t *testing.T) {
	src := mkTable([]string{"Date", "Orders", "Amount"},
		[]string{"2024-01-02", "1", "100"},
		[]string{"2024-01-01", "2", "50"},
		[]string{"2024-01-02", "1", "25"},
	)

	pv, err := Pivot(src, PivotSpec{Rows: []string{"Date"}, Values: []string{"Orders", "Amount"}, Agg: AggSum})
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Orders", "Amount", SingleAxisTotal}, pv.Columns)
	assert.Equal(t, "2024-01-01", pv.Rows[0][0].String())
	assert.True(t, decimal.NewFromInt(179).Equal(num(t, pv.Rows[2][3])))

	counted, err := Pivot(src, PivotSpec{Rows: []string{"Date"}, Agg: AggCount})
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Count"}, counted.Columns)
	assert.True(t, decimal.NewFromInt(3).Equal(num(t, counted.Rows[2][1])))
}

func TestPivot_InvalidSpecs(t *testing.T) {
	src := mkTable([]string{"a", "b"}, []string{"x", "1"})
	_, err := Pivot(src, PivotSpec{Agg: AggCount})
	assert.Error(t, err)
	_, err = Pivot(src, PivotSpec{Rows: []string{"missing"}, Agg: AggCount})
	assert.Error(t, err)
	_, err = Pivot(src, PivotSpec{Rows: []string{"a"}, Agg: AggSum})
	assert.Error(t, err)
	_, err = Pivot(src, PivotSpec{Rows: []string{"a"}, Agg: "median"})
	assert.Error(t, err)
}

func TestAddGrandTotals_NotAppliedTwice(t *testing.T) {
	tbl := mkTable([]string{"k", "v"}, []string{"a", "1"}, []string{"b", "2"})
	AddGrandTotals(tbl, 1, "")
	AddGrandTotals(tbl, 1, "")
	assert.Equal(t, 3, tbl.Len())
	assert.True(t, decimal.NewFromInt(3).Equal(num(t, tbl.Rows[2][1])))
}

func TestStylePivot(t *testing.T) {
	src := mkTable([]string{"SKU", "Size", "Reason for Credit Entry", "Quantity"},
		[]string{"tape-of-black", "M", "DELIVERED", "2"},
		[]string{"2tape-black", "M", "DELIVERED", "1"},
		[]string{"crop-navy blue", "L", "RTO", "1"},
	)
	vocab := config.DefaultVocabulary()
	vocab.Colors = append(vocab.Colors, "navy blue")
	res := resolver.New(vocab.Fields).ResolveAll(src, domain.FieldSKU, domain.FieldSize, domain.FieldColor, domain.FieldReason, domain.FieldQuantity)
	rules, err := ParseStyleRulesText("of, -2-s => 2 TAPE COMBO\n2tape, 2strip => 2 TAPE PANT\ncrop => CROP HOODIE")
	require.NoError(t, err)

	pv, err := StylePivot(src, res, StyleOptions{Rules: rules, Colors: vocab.Colors})
	require.NoError(t, err)

	assert.Equal(t, []string{domain.ColumnStyle, "Size", "Color", "DELIVERED", "RTO", GrandTotal}, pv.Columns)
	require.Equal(t, 4, pv.Len())
	assert.Equal(t, "2 TAPE COMBO", pv.Rows[0][0].String())
	assert.Equal(t, "BLACK", pv.Rows[0][2].String())
	assert.Equal(t, "2 TAPE PANT", pv.Rows[1][0].String())
	assert.Equal(t, "CROP HOODIE", pv.Rows[2][0].String())
	assert.Equal(t, "NAVY BLUE", pv.Rows[2][2].String())
	assert.True(t, decimal.NewFromInt(4).Equal(num(t, pv.Rows[3][5])))
}

func TestCourierPivot_NormalisesNames(t *testing.T) {
	src := mkTable([]string{"Dispatch Date", "Courier Partner"},
		[]string{"2024-01-01", "PocketShip"},
		[]string{"01/01/2024", "Valmo"},
		[]string{"2024-01-02", "Delhivery Surface"},
	)
	vocab := config.DefaultVocabulary()
	res := resolver.New(vocab.Fields).ResolveAll(src, domain.FieldDispatchDate, domain.FieldOrderDate, domain.FieldCourier)

	pv, err := CourierPivot(src, res, vocab.CourierAliases)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Delhivery", "Valmo", GrandTotal}, pv.Columns)
	assert.True(t, decimal.NewFromInt(2).Equal(num(t, pv.Rows[0][2])))
}

func TestFieldPivot_UsesBucketsForStatus(t *testing.T) {
	view := mkTable([]string{"Reason for Credit Entry", "Customer State", "Final Settlement Amount"},
		[]string{"DELIVERED", "Gujarat", "100"},
		[]string{"", "Kerala", "-20"},
		[]string{"DELIVERED", "Gujarat", "50"},
	)
	res := resolver.New(config.DefaultVocabulary().Fields).ResolveAll(view, domain.FieldState, domain.FieldSettlement)
	records := []domain.OrderRecord{
		{Bucket: domain.BucketDelivered},
		{Bucket: domain.BucketPlatformRecovery},
		{Bucket: domain.BucketDelivered},
	}

	pv, err := FieldPivot(view, records, res, FieldPivotSpec{
		Rows:   []domain.Field{domain.FieldState},
		Column: domain.FieldStatus,
		Value:  domain.FieldSettlement,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"state", "Delivered", "Platform Recovery", GrandTotal}, pv.Columns)
	require.Equal(t, 3, pv.Len())
	assert.True(t, decimal.NewFromInt(150).Equal(num(t, pv.Rows[0][1])))
	assert.True(t, decimal.NewFromInt(130).Equal(num(t, pv.Rows[2][3])))

	counted, err := FieldPivot(view, records, res, FieldPivotSpec{Rows: []domain.Field{domain.FieldStatus}})
	require.NoError(t, err)
	assert.Equal(t, []string{"status", "Count"}, counted.Columns)

	_, err = FieldPivot(view, records, res, FieldPivotSpec{Rows: []domain.Field{domain.FieldState}, Column: domain.FieldState})
	assert.Error(t, err)
	_, err = FieldPivot(view, records, res, FieldPivotSpec{Rows: []domain.Field{domain.FieldCourier}})
	var missing *domain.MissingFieldError
	assert.ErrorAs(t, err, &missing)
	_, err = FieldPivot(view, records[:1], res, FieldPivotSpec{Rows: []domain.Field{domain.FieldState}})
	assert.Error(t, err)
}

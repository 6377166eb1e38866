package classifier

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meesho-recon/internal/config"
	"meesho-recon/internal/domain"
	"meesho-recon/internal/parser"
	"meesho-recon/internal/resolver"
)

var orderColumns = []string{
	"Sub Order No",
	"Live Order Status",
	"Final Settlement Amount",
	"Profit Amount",
	"Listing Price (Incl. taxes)",
	"Total Sale Amount (Incl. Shipping & GST)",
}

func buildTable(rows ...[]string) *domain.Table {
	t := domain.NewTable(orderColumns)
	for _, r := range rows {
		cells := make([]domain.Value, len(r))
		for i, s := range r {
			cells[i] = parser.CoerceCell(s)
		}
		t.AppendRow(cells)
	}
	return t
}

func setup(t *domain.Table) (*Classifier, resolver.Resolution) {
	vocab := config.DefaultVocabulary()
	r := resolver.New(vocab.Fields)
	return New(vocab.Statuses), r.ResolveAll(t, OrderFields...)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestClassifier_Classify(t *testing.T) {
	c := New(config.DefaultVocabulary().Statuses)

	tests := []struct {
		raw    string
		status domain.Status
		bucket domain.Bucket
	}{
		{"Delivered", domain.StatusDelivered, domain.BucketDelivered},
		{" rto ", domain.StatusRTO, domain.BucketRTO},
		{"RETURN", domain.StatusReturn, domain.BucketReturn},
		{"", domain.StatusBlank, domain.BucketPlatformRecovery},
		{"   ", domain.StatusBlank, domain.BucketPlatformRecovery},
		{"Lost in transit", domain.StatusBlank, domain.BucketUnclassified},
		{"Deliver", domain.StatusBlank, domain.BucketUnclassified},
	}
	for _, tt := range tests {
		status, bucket := c.Classify(tt.raw)
		assert.Equal(t, tt.status, status, tt.raw)
		assert.Equal(t, tt.bucket, bucket, tt.raw)
	}
}

func TestSummarize_BlankStatusIsPlatformRecoveryOnly(t *testing.T) {
	tbl := buildTable(
		[]string{"O1", "Delivered", "500", "", "", ""},
		[]string{"O2", "", "-40", "", "", ""},
		[]string{"O3", "Mystery", "10", "", "", ""},
	)
	c, res := setup(tbl)
	summary := Summarize(c.BuildOrders(tbl, res), true)

	assert.Equal(t, 3, summary.TotalCount)
	assert.Equal(t, 1, summary.Get(domain.BucketPlatformRecovery).Count)
	assert.Equal(t, 1, summary.Get(domain.BucketUnclassified).Count)
	named := 0
	for _, bt := range summary.Buckets {
		if bt.Bucket.IsNamed() {
			named += bt.Count
		}
	}
	assert.Equal(t, 1, named, "blank and unknown statuses stay out of named buckets")
	assert.True(t, dec("470").Equal(summary.TotalAmount))

	tbl2 := summary.Table()
	last := tbl2.Rows[tbl2.Len()-1]
	assert.Equal(t, "Grand Total", last[0].String())
	count, _ := last[1].Decimal()
	assert.True(t, count.Equal(decimal.NewFromInt(3)))
}

func TestComputeRTO_Identity(t *testing.T) {
	f := ComputeRTO(dec("100"), dec("140"))
	assert.True(t, dec("40").Equal(f.ShippingCharge))
	assert.True(t, dec("7.2").Equal(f.ShippingChargeGST))
	assert.True(t, dec("92.8").Equal(f.RTOAmount))
}

func TestEnsureRTOColumns_Idempotent(t *testing.T) {
	tbl := buildTable(
		[]string{"O1", "RTO", "0", "", "100", "140"},
		[]string{"O2", "Delivered", "90", "", "100", "140"},
	)
	c, res := setup(tbl)

	wrote, err := c.EnsureRTOColumns(tbl, res)
	require.NoError(t, err)
	assert.True(t, wrote)
	require.Len(t, tbl.Columns, len(orderColumns)+3)

	rto, ok := tbl.Cell(tbl.Rows[0], domain.ColumnRTOAmount).Decimal()
	require.True(t, ok)
	assert.True(t, dec("92.8").Equal(rto))
	assert.True(t, tbl.Cell(tbl.Rows[1], domain.ColumnRTOAmount).IsNull(), "non-RTO rows get no derived values")

	snapshot := tbl.Clone()
	wrote, err = c.EnsureRTOColumns(tbl, res)
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Equal(t, snapshot, tbl)

	records := c.BuildOrders(tbl, res)
	require.NotNil(t, records[0].ShippingChargeGST)
	assert.True(t, dec("7.2").Equal(*records[0].ShippingChargeGST))
	assert.Nil(t, records[1].RTOAmount)
}

func TestEnsureRTOColumns_SkipsWhenPricesMissing(t *testing.T) {
	tbl := domain.NewTable([]string{"Sub Order No", "Live Order Status"})
	tbl.AppendRow([]domain.Value{domain.Text("O1"), domain.Text("RTO")})
	c, res := setup(tbl)

	wrote, err := c.EnsureRTOColumns(tbl, res)
	assert.False(t, wrote)
	var mf *domain.MissingFieldError
	require.True(t, errors.As(err, &mf))
	assert.ElementsMatch(t, []domain.Field{domain.FieldListingPrice, domain.FieldTotalSale}, mf.Fields)
	assert.Len(t, tbl.Columns, 2)
}

func TestComputeFinancials_Identities(t *testing.T) {
	tbl := buildTable(
		[]string{"O1", "Delivered", "500", "150", "", ""},
		[]string{"O2", "Delivered", "300", "100", "", ""},
		[]string{"O3", "Return", "-100", "0", "", ""},
		[]string{"O4", "Exchange", "50", "50", "", ""},
		[]string{"O5", "Cancelled", "0", "0", "", ""},
		[]string{"O6", "Shipped", "200", "100", "", ""},
	)
	c, res := setup(tbl)
	records := c.BuildOrders(tbl, res)
	summary := Summarize(records, true)
	ads := dec("-60")

	f := ComputeFinancials(records, summary, res, FinancialInputs{PerUnitCost: dec("10"), AdsCost: &ads})

	require.NotNil(t, f.TotalAmount)
	assert.True(t, dec("750").Equal(*f.TotalAmount), f.TotalAmount.String())
	assert.True(t, dec("850").Equal(*f.ShippedWithTotal), f.ShippedWithTotal.String())

	assert.True(t, f.ExchangeLossEstimated)
	require.NotNil(t, f.ExchangeLossSum)
	assert.True(t, dec("100").Equal(*f.ExchangeLossSum))
	assert.True(t, dec("20").Equal(f.COGS))
	require.NotNil(t, f.NetProfit)
	assert.True(t, dec("180").Equal(*f.NetProfit), f.NetProfit.String())

	assert.True(t, dec("10").Equal(*f.AdsCostPerOrder))
	assert.True(t, dec("690").Equal(*f.Payable))

	table := f.Table()
	assert.Equal(t, "Exchange Loss (estimated)", table.Rows[4][0].String())
}

func TestComputeFinancials_MissingColumnsAreNotZeroed(t *testing.T) {
	tbl := domain.NewTable([]string{"Sub Order No", "Live Order Status"})
	tbl.AppendRow([]domain.Value{domain.Text("O1"), domain.Text("Delivered")})
	c, res := setup(tbl)
	records := c.BuildOrders(tbl, res)

	f := ComputeFinancials(records, Summarize(records, false), res, FinancialInputs{})
	assert.Nil(t, f.TotalAmount)
	assert.Nil(t, f.NetProfit)
	assert.Contains(t, f.Missing, domain.FieldSettlement)
	assert.True(t, f.Table().Rows[0][1].IsNull())
}

func TestComputeFinancials_NoLossSourceLeavesNetProfitEmpty(t *testing.T) {
	tbl := domain.NewTable([]string{"Sub Order No", "Live Order Status", "Profit Amount"})
	tbl.AppendRow([]domain.Value{domain.Text("O1"), domain.Text("Delivered"), parser.CoerceCell("150")})
	tbl.AppendRow([]domain.Value{domain.Text("O2"), domain.Text("Return"), parser.CoerceCell("0")})
	c, res := setup(tbl)
	records := c.BuildOrders(tbl, res)

	f := ComputeFinancials(records, Summarize(records, false), res, FinancialInputs{})
	require.NotNil(t, f.ProfitSum)
	assert.True(t, dec("150").Equal(*f.ProfitSum))
	assert.Nil(t, f.ReturnLossSum)
	assert.Nil(t, f.ExchangeLossSum)
	assert.False(t, f.ExchangeLossEstimated)
	assert.Nil(t, f.NetProfit)
	assert.ElementsMatch(t, []domain.Field{domain.FieldSettlement, domain.FieldExchangeLoss, domain.FieldReturnLoss}, f.Missing)

	table := f.Table()
	assert.Equal(t, "Return Loss", table.Rows[3][0].String())
	assert.True(t, table.Rows[3][1].IsNull())
	assert.Equal(t, "Exchange Loss", table.Rows[4][0].String())
	assert.True(t, table.Rows[4][1].IsNull())
	assert.True(t, table.Rows[6][1].IsNull(), "net profit")
}

func TestEstimateExchangeLoss(t *testing.T) {
	assert.True(t, EstimateExchangeLoss(dec("-300"), 3, 2).Equal(dec("200")))
	assert.True(t, EstimateExchangeLoss(dec("-300"), 0, 2).IsZero())
}

func TestAdsTotal(t *testing.T) {
	ads := domain.NewTable([]string{"Date", "Total Ads Cost"})
	ads.AppendRow([]domain.Value{domain.Text("2024-01-01"), parser.CoerceCell("1,200")})
	ads.AppendRow([]domain.Value{domain.Text("2024-01-02"), parser.CoerceCell("300.50")})
	ads.AppendRow([]domain.Value{domain.Text("2024-01-03"), domain.Null()})

	r := resolver.New(config.DefaultVocabulary().Fields)
	total, err := AdsTotal(ads, r)
	require.NoError(t, err)
	assert.True(t, dec("1500.5").Equal(total))

	_, err = AdsTotal(domain.NewTable([]string{"Date"}), r)
	assert.Error(t, err)
}

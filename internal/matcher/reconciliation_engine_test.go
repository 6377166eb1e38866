package matcher

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

func rec(id, status string, amount float64) domain.SnapshotRecord {
	return domain.SnapshotRecord{OrderID: id, Status: status, Amount: decimal.NewFromFloat(amount)}
}

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func entryFor(t *testing.T, report *domain.ReconciliationReport, id string) domain.LedgerEntry {
	t.Helper()
	var found []domain.LedgerEntry
	for _, e := range report.Ledger {
		if e.OrderID == id {
			found = append(found, e)
		}
	}
	require.Len(t, found, 1, "ledger entries for %s", id)
	return found[0]
}

func TestReconciliationEngine_EndToEnd(t *testing.T) {
	engine := NewReconciliationEngine(nil)

	report, err := engine.Reconcile(ReconciliationInput{
		Old:    []domain.SnapshotRecord{rec("O1", "Delivered", 500), rec("O2", "Return", -100)},
		Payout: []domain.SnapshotRecord{rec("O1", "Delivered", 500)},
		New:    []domain.SnapshotRecord{rec("O2", "Return", -100), rec("O3", "Delivered", 300)},
	})
	require.NoError(t, err)
	require.Len(t, report.Ledger, 3)
	assert.NotEmpty(t, report.RunID)

	o1 := entryFor(t, report, "O1")
	assert.Equal(t, domain.PayoutSettled, o1.State)
	assert.Equal(t, domain.RemarkPayoutSettled, o1.Remark)
	assert.True(t, o1.Difference.IsZero())

	o2 := entryFor(t, report, "O2")
	assert.Equal(t, domain.PresentInBoth, o2.State)
	assert.Equal(t, domain.RemarkNoChange, o2.Remark)
	assert.True(t, o2.Difference.IsZero())

	o3 := entryFor(t, report, "O3")
	assert.Equal(t, domain.NewOrder, o3.State)
	assert.True(t, dec(300).Equal(*o3.NewAmount))
	assert.Nil(t, o3.OldAmount)
	assert.Nil(t, o3.Difference)

	totals := report.Totals
	assert.True(t, dec(400).Equal(totals.OldTotal))
	assert.True(t, dec(500).Equal(totals.PayoutTotal))
	assert.True(t, dec(-100).Equal(totals.PendingOld))
	assert.Equal(t, 1, totals.PendingOldCount)
	assert.True(t, dec(300).Equal(totals.NewOnlyTotal))
	assert.True(t, dec(200).Equal(totals.TotalPending))
	assert.True(t, totals.NetDiscrepancy.IsZero())
	assert.True(t, dec(200).Equal(totals.FinalNetDue))
}

func TestReconciliationEngine_PayoutConsumesOldOrder(t *testing.T) {
	engine := NewReconciliationEngine(nil)

	report, err := engine.Reconcile(ReconciliationInput{
		Old:    []domain.SnapshotRecord{rec("X", "Delivered", 250)},
		Payout: []domain.SnapshotRecord{rec("X", "Delivered", 250)},
	})
	require.NoError(t, err)

	require.Len(t, report.Ledger, 1)
	assert.Equal(t, domain.PayoutSettled, report.Ledger[0].State)
	assert.Equal(t, 0, report.StateCounts[domain.MissingInNew])
	assert.True(t, report.Totals.PendingOld.IsZero())
	assert.True(t, report.Totals.FinalNetDue.IsZero())
}

func TestReconciliationEngine_WarnsWhenSettledOrderReappearsInNew(t *testing.T) {
	engine := NewReconciliationEngine(nil)

	report, err := engine.Reconcile(ReconciliationInput{
		Old:    []domain.SnapshotRecord{rec("X", "Delivered", 250), rec("Y", "Shipped", 80)},
		Payout: []domain.SnapshotRecord{rec("X", "Delivered", 250)},
		New:    []domain.SnapshotRecord{rec("X", "Return", -40), rec("Y", "Shipped", 80)},
	})
	require.NoError(t, err)

	require.Len(t, report.Ledger, 2)
	assert.Equal(t, domain.PayoutSettled, entryFor(t, report, "X").State)
	assert.Equal(t, domain.PresentInBoth, entryFor(t, report, "Y").State)
	assert.Equal(t, 0, report.Totals.NewOnlyCount)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "1 orders already settled by payout")

	report, err = engine.Reconcile(ReconciliationInput{
		Old:    []domain.SnapshotRecord{rec("X", "Delivered", 250)},
		Payout: []domain.SnapshotRecord{rec("X", "Delivered", 250)},
	})
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)
}

func TestReconciliationEngine_MatchesAcrossWhitespaceAndCase(t *testing.T) {
	engine := NewReconciliationEngine(nil)

	report, err := engine.Reconcile(ReconciliationInput{
		Old: []domain.SnapshotRecord{rec(" ab-9 ", "Shipped", 120)},
		New: []domain.SnapshotRecord{rec("AB-9", "shipped ", 100)},
	})
	require.NoError(t, err)

	require.Len(t, report.Ledger, 1)
	e := report.Ledger[0]
	assert.Equal(t, "ab-9", e.OrderID)
	assert.Equal(t, domain.PresentInBoth, e.State)
	assert.Equal(t, domain.RemarkPriceDifference, e.Remark)
	assert.True(t, dec(20).Equal(*e.Difference))
	assert.True(t, dec(20).Equal(report.Totals.NetDiscrepancy))
}

func TestReconciliationEngine_MissingInNewIsFlagged(t *testing.T) {
	engine := NewReconciliationEngine(&ExactMatchStrategy{})

	report, err := engine.Reconcile(ReconciliationInput{
		Old: []domain.SnapshotRecord{rec("O1", "Shipped", 80), rec("O2", "Shipped", 20)},
		New: []domain.SnapshotRecord{rec("O2", "Delivered", 20)},
	})
	require.NoError(t, err)

	o1 := entryFor(t, report, "O1")
	assert.Equal(t, domain.MissingInNew, o1.State)
	assert.Equal(t, domain.RemarkMissingInNew, o1.Remark)
	assert.Nil(t, o1.NewStatus)
	assert.Nil(t, o1.NewAmount)
	assert.Nil(t, o1.Difference)

	assert.Equal(t, domain.RemarkStatusChanged, entryFor(t, report, "O2").Remark)
	assert.True(t, dec(100).Equal(report.Totals.FinalNetDue))
}

func TestReconciliationEngine_DuplicatesKeepLast(t *testing.T) {
	engine := NewReconciliationEngine(nil)

	report, err := engine.Reconcile(ReconciliationInput{
		Old: []domain.SnapshotRecord{rec("O1", "Shipped", 100), rec("O2", "Shipped", 5), rec("O1", "Delivered", 150)},
		New: []domain.SnapshotRecord{rec("O1", "Delivered", 150)},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Duplicates[domain.SnapshotOld])
	assert.NotContains(t, report.Duplicates, domain.SnapshotNew)
	assert.NotEmpty(t, report.Warnings)
	assert.Equal(t, 2, report.Totals.OldCount)
	assert.True(t, dec(155).Equal(report.Totals.OldTotal))

	o1 := entryFor(t, report, "O1")
	assert.Equal(t, domain.RemarkNoChange, o1.Remark)
	assert.True(t, dec(150).Equal(*o1.OldAmount))
}

func TestReconciliationEngine_UnmatchedPayoutExcludedFromTotals(t *testing.T) {
	engine := NewReconciliationEngine(nil)

	report, err := engine.Reconcile(ReconciliationInput{
		Old:    []domain.SnapshotRecord{rec("O1", "Delivered", 100)},
		Payout: []domain.SnapshotRecord{rec("O1", "Delivered", 90), rec("P9", "Delivered", 999)},
		New:    []domain.SnapshotRecord{},
	})
	require.NoError(t, err)

	require.Len(t, report.UnmatchedPayout, 1)
	assert.Equal(t, "P9", report.UnmatchedPayout[0].OrderID)
	assert.Equal(t, 1, report.Totals.PayoutCount)
	assert.True(t, dec(90).Equal(report.Totals.PayoutTotal))
	assert.True(t, dec(10).Equal(report.Totals.NetDiscrepancy))
	// pending 10, discrepancy 10
	assert.True(t, report.Totals.FinalNetDue.IsZero())
}

func TestReconciliationEngine_EmptyInput(t *testing.T) {
	_, err := NewReconciliationEngine(nil).Reconcile(ReconciliationInput{})
	assert.True(t, errors.Is(err, domain.ErrSnapshotIncomplete))
}

func TestRemarkFor(t *testing.T) {
	tests := []struct {
		name      string
		oldStatus string
		newStatus string
		diff      float64
		want      domain.Remark
	}{
		{"unchanged", "Delivered", "Delivered", 0, domain.RemarkNoChange},
		{"within threshold", "Delivered", "delivered", 0.01, domain.RemarkNoChange},
		{"price only", "Delivered", "Delivered", -12.5, domain.RemarkPriceDifference},
		{"status only", "Shipped", "Delivered", 0, domain.RemarkStatusChanged},
		{"both", "Shipped", "Return", 300, domain.RemarkStatusAndPriceChanged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemarkFor(tt.oldStatus, tt.newStatus, dec(tt.diff)))
		})
	}
}

func TestExtractSnapshot(t *testing.T) {
	table := domain.NewTable([]string{"Sub Order No", "Live Order Status", "Final Settlement Amount"})
	for _, row := range [][]string{
		{" 1001_1 ", "Delivered", "₹1,200.50"},
		{"1002_1", "", "n/a"},
	} {
		cells := make([]domain.Value, len(row))
		for i, s := range row {
			cells[i] = parser.CoerceCell(s)
		}
		table.AppendRow(cells)
	}
	vocab := config.DefaultVocabulary()
	res := resolver.New(vocab.Fields).ResolveAll(table, domain.FieldOrderID, domain.FieldAmount, domain.FieldStatus)

	records, err := ExtractSnapshot(table, res)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1001_1", records[0].OrderID)
	assert.Equal(t, "Delivered", records[0].Status)
	assert.True(t, dec(1200.5).Equal(records[0].Amount))
	assert.True(t, records[1].Amount.IsZero())

	bare := domain.NewTable([]string{"Sub Order No"})
	_, err = ExtractSnapshot(bare, resolver.New(vocab.Fields).ResolveAll(bare, SnapshotFields...))
	var missing *domain.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Fields, domain.FieldAmount)
}

func TestReportTables(t *testing.T) {
	report, err := NewReconciliationEngine(nil).Reconcile(ReconciliationInput{
		Old:    []domain.SnapshotRecord{rec("O1", "Delivered", 500), rec("O2", "Return", -100)},
		Payout: []domain.SnapshotRecord{rec("O1", "Delivered", 500)},
		New:    []domain.SnapshotRecord{rec("O3", "Delivered", 300)},
	})
	require.NoError(t, err)

	sheets := ReportTables(report)
	require.Len(t, sheets, 5)
	assert.Equal(t, SheetFinalCombined, sheets[0].Name)
	assert.Equal(t, 3, sheets[0].Table.Len())
	assert.Equal(t, 1, sheets[1].Table.Len())
	assert.Equal(t, 1, sheets[2].Table.Len())
	assert.Equal(t, 1, sheets[3].Table.Len())

	missing := sheets[2].Table.Rows[0]
	assert.Equal(t, "O2", missing[0].String())
	assert.True(t, missing[2].IsNull(), "new status stays empty, not zero")
	assert.True(t, missing[5].IsNull())

	summary := sheets[4].Table
	last := summary.Rows[summary.Len()-1]
	assert.Equal(t, "Final Net Due", last[0].String())
	d, ok := last[2].Decimal()
	require.True(t, ok)
	assert.True(t, dec(200).Equal(d))
}

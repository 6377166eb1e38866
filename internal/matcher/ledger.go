package matcher

import (
	"github.com/shopspring/decimal"

	"meesho-recon/internal/domain"
)

// Sheet names of the reconciliation workbook.
const (
	SheetFinalCombined    = "Final_Combined"
	SheetPayoutComparison = "Payout_Comparison"
	SheetOldNewComparison = "OldNew_Comparison"
	SheetNewOrders        = "New_Orders"
	SheetSummary          = "Summary"
)

var ledgerColumns = []string{"Order ID", "Old Status", "New Status", "Old Amount", "New Amount", "Difference", "Remark"}

func textOrNull(s *string) domain.Value {
	if s == nil {
		return domain.Null()
	}
	return domain.Text(*s)
}

func numberOrNull(d *decimal.Decimal) domain.Value {
	if d == nil {
		return domain.Null()
	}
	return domain.Number(*d)
}

// LedgerTable renders ledger entries, keeping absent sides as nulls.
func LedgerTable(entries []domain.LedgerEntry) *domain.Table {
	t := domain.NewTable(ledgerColumns)
	for _, e := range entries {
		t.AppendRow([]domain.Value{
			domain.Text(e.OrderID),
			textOrNull(e.OldStatus),
			textOrNull(e.NewStatus),
			numberOrNull(e.OldAmount),
			numberOrNull(e.NewAmount),
			numberOrNull(e.Difference),
			domain.Text(string(e.Remark)),
		})
	}
	return t
}

func entriesIn(entries []domain.LedgerEntry, states ...domain.LedgerState) []domain.LedgerEntry {
	want := make(map[domain.LedgerState]bool, len(states))
	for _, s := range states {
		want[s] = true
	}
	out := make([]domain.LedgerEntry, 0)
	for _, e := range entries {
		if want[e.State] {
			out = append(out, e)
		}
	}
	return out
}

// SummaryTable lays out the dashboard figures of a run.
func SummaryTable(t domain.ReconciliationTotals) *domain.Table {
	out := domain.NewTable([]string{"Metric", "Orders", "Amount"})
	row := func(label string, count domain.Value, amount decimal.Decimal) {
		out.AppendRow([]domain.Value{domain.Text(label), count, domain.Number(amount)})
	}
	count := func(n int) domain.Value {
		return domain.Number(decimal.NewFromInt(int64(n)))
	}
	row("Old Total", count(t.OldCount), t.OldTotal)
	row("Payout Settled", count(t.PayoutCount), t.PayoutTotal)
	row("Pending Old", count(t.PendingOldCount), t.PendingOld)
	row("New Orders", count(t.NewOnlyCount), t.NewOnlyTotal)
	row("Total Pending", count(t.TotalPendingCount), t.TotalPending)
	row("Net Discrepancy", domain.Null(), t.NetDiscrepancy)
	row("Final Net Due", domain.Null(), t.FinalNetDue)
	return out
}

// ReportTables returns the workbook sheets of a reconciliation run.
func ReportTables(report *domain.ReconciliationReport) []domain.NamedTable {
	return []domain.NamedTable{
		{Name: SheetFinalCombined, Table: LedgerTable(report.Ledger)},
		{Name: SheetPayoutComparison, Table: LedgerTable(entriesIn(report.Ledger, domain.PayoutSettled))},
		{Name: SheetOldNewComparison, Table: LedgerTable(entriesIn(report.Ledger, domain.PresentInBoth, domain.MissingInNew))},
		{Name: SheetNewOrders, Table: LedgerTable(entriesIn(report.Ledger, domain.NewOrder))},
		{Name: SheetSummary, Table: SummaryTable(report.Totals)},
	}
}

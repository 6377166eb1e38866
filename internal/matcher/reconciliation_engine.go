package matcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"meesho-recon/internal/domain"
	"meesho-recon/pkg/logger"
)

// PriceThreshold is the smallest |Old - New| treated as a price change.
var PriceThreshold = decimal.NewFromFloat(0.01)

// MatchingStrategy turns an order identifier into its join key.
type MatchingStrategy interface {
	Key(orderID string) string
}

// ExactMatchStrategy joins on the trimmed identifier.
type ExactMatchStrategy struct{}

func (s *ExactMatchStrategy) Key(orderID string) string {
	return strings.TrimSpace(orderID)
}

// NormalizedMatchStrategy joins on the trimmed, upper-cased identifier.
type NormalizedMatchStrategy struct{}

func (s *NormalizedMatchStrategy) Key(orderID string) string {
	return strings.ToUpper(strings.TrimSpace(orderID))
}

// ReconciliationEngine performs the three-way Old / New / Payout reconciliation
type ReconciliationEngine struct {
	strategy MatchingStrategy
	now      func() time.Time
}

func NewReconciliationEngine(strategy MatchingStrategy) *ReconciliationEngine {
	if strategy == nil {
		strategy = &NormalizedMatchStrategy{}
	}
	return &ReconciliationEngine{
		strategy: strategy,
		now:      time.Now,
	}
}

// ReconciliationInput holds the three snapshots. Payout may be empty.
type ReconciliationInput struct {
	Old    []domain.SnapshotRecord
	New    []domain.SnapshotRecord
	Payout []domain.SnapshotRecord
}

// keyed is a deduplicated snapshot in first-seen key order.
type keyed struct {
	keys    []string
	records map[string]domain.SnapshotRecord
	dropped int
}

// dedupe keeps the last occurrence of every key at the position of that
// last occurrence. Records with a blank key are dropped.
func (e *ReconciliationEngine) dedupe(records []domain.SnapshotRecord) (keyed, int) {
	last := make(map[string]int, len(records))
	blank := 0
	for i, r := range records {
		k := e.strategy.Key(r.OrderID)
		if k == "" {
			blank++
			continue
		}
		last[k] = i
	}

	out := keyed{records: make(map[string]domain.SnapshotRecord, len(last))}
	for i, r := range records {
		k := e.strategy.Key(r.OrderID)
		if k == "" {
			continue
		}
		if last[k] != i {
			out.dropped++
			continue
		}
		r.OrderID = strings.TrimSpace(r.OrderID)
		out.keys = append(out.keys, k)
		out.records[k] = r
	}
	return out, blank
}

func statusEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// RemarkFor annotates an order present in both Old and New.
func RemarkFor(oldStatus, newStatus string, difference decimal.Decimal) domain.Remark {
	priceChanged := difference.Abs().GreaterThan(PriceThreshold)
	switch {
	case statusEqual(oldStatus, newStatus) && priceChanged:
		return domain.RemarkPriceDifference
	case statusEqual(oldStatus, newStatus):
		return domain.RemarkNoChange
	case priceChanged:
		return domain.RemarkStatusAndPriceChanged
	default:
		return domain.RemarkStatusChanged
	}
}

func ptrString(s string) *string {
	return &s
}

func ptrDecimal(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// Reconcile matches Payout against Old first, removes every consumed Old
// order, then outer-joins the remaining Old orders with New.
func (e *ReconciliationEngine) Reconcile(input ReconciliationInput) (*domain.ReconciliationReport, error) {
	if err := ValidateReconciliationInput(input); err != nil {
		return nil, err
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"old_count":    len(input.Old),
		"new_count":    len(input.New),
		"payout_count": len(input.Payout),
	}).Info("Starting reconciliation")

	report := &domain.ReconciliationReport{
		RunID:           uuid.New().String(),
		Ledger:          make([]domain.LedgerEntry, 0),
		StateCounts:     make(map[domain.LedgerState]int),
		UnmatchedPayout: make([]domain.SnapshotRecord, 0),
		Duplicates:      make(map[domain.Snapshot]int),
		Warnings:        make([]string, 0),
		CreatedAt:       e.now(),
	}

	snapshots := map[domain.Snapshot][]domain.SnapshotRecord{
		domain.SnapshotOld:    input.Old,
		domain.SnapshotNew:    input.New,
		domain.SnapshotPayout: input.Payout,
	}
	deduped := make(map[domain.Snapshot]keyed, len(snapshots))
	for _, snap := range []domain.Snapshot{domain.SnapshotOld, domain.SnapshotNew, domain.SnapshotPayout} {
		k, blank := e.dedupe(snapshots[snap])
		deduped[snap] = k
		if k.dropped > 0 {
			report.Duplicates[snap] = k.dropped
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%s snapshot: %d duplicate order ids, last occurrence kept", snap, k.dropped))
			logger.GetLogger().WithFields(map[string]interface{}{
				"snapshot":   snap,
				"duplicates": k.dropped,
			}).Warn("Duplicate order ids in snapshot")
		}
		if blank > 0 {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%s snapshot: %d rows without an order id skipped", snap, blank))
		}
	}
	oldSet, newSet, payoutSet := deduped[domain.SnapshotOld], deduped[domain.SnapshotNew], deduped[domain.SnapshotPayout]

	totals := domain.ReconciliationTotals{
		OldTotal:       decimal.Zero,
		PayoutTotal:    decimal.Zero,
		NewOnlyTotal:   decimal.Zero,
		NetDiscrepancy: decimal.Zero,
	}
	for _, k := range oldSet.keys {
		totals.OldCount++
		totals.OldTotal = totals.OldTotal.Add(oldSet.records[k].Amount)
	}

	// Phase 1: Payout against Old
	consumed := make(map[string]bool)
	settled := make(map[string]domain.SnapshotRecord)
	for _, k := range payoutSet.keys {
		p := payoutSet.records[k]
		if _, found := oldSet.records[k]; !found {
			report.UnmatchedPayout = append(report.UnmatchedPayout, p)
			continue
		}
		consumed[k] = true
		settled[k] = p
	}
	for _, k := range oldSet.keys {
		p, ok := settled[k]
		if !ok {
			continue
		}
		o := oldSet.records[k]
		diff := o.Amount.Sub(p.Amount)
		report.Ledger = append(report.Ledger, domain.LedgerEntry{
			OrderID:    o.OrderID,
			State:      domain.PayoutSettled,
			OldStatus:  ptrString(o.Status),
			NewStatus:  ptrString(p.Status),
			OldAmount:  ptrDecimal(o.Amount),
			NewAmount:  ptrDecimal(p.Amount),
			Difference: ptrDecimal(diff),
			Remark:     domain.RemarkPayoutSettled,
		})
		totals.PayoutCount++
		totals.PayoutTotal = totals.PayoutTotal.Add(p.Amount)
		totals.NetDiscrepancy = totals.NetDiscrepancy.Add(diff)
	}
	if n := len(report.UnmatchedPayout); n > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("payout snapshot: %d orders not found in old snapshot, excluded from totals", n))
	}

	// Phase 2: remaining Old against New
	for _, k := range oldSet.keys {
		if consumed[k] {
			continue
		}
		o := oldSet.records[k]
		n, found := newSet.records[k]
		if !found {
			report.Ledger = append(report.Ledger, domain.LedgerEntry{
				OrderID:   o.OrderID,
				State:     domain.MissingInNew,
				OldStatus: ptrString(o.Status),
				OldAmount: ptrDecimal(o.Amount),
				Remark:    domain.RemarkMissingInNew,
			})
			continue
		}
		diff := o.Amount.Sub(n.Amount)
		report.Ledger = append(report.Ledger, domain.LedgerEntry{
			OrderID:    o.OrderID,
			State:      domain.PresentInBoth,
			OldStatus:  ptrString(o.Status),
			NewStatus:  ptrString(n.Status),
			OldAmount:  ptrDecimal(o.Amount),
			NewAmount:  ptrDecimal(n.Amount),
			Difference: ptrDecimal(diff),
			Remark:     RemarkFor(o.Status, n.Status, diff),
		})
		totals.NetDiscrepancy = totals.NetDiscrepancy.Add(diff)
	}
	settledInNew := 0
	for _, k := range newSet.keys {
		if _, inOld := oldSet.records[k]; inOld {
			if consumed[k] {
				settledInNew++
			}
			continue
		}
		n := newSet.records[k]
		report.Ledger = append(report.Ledger, domain.LedgerEntry{
			OrderID:   n.OrderID,
			State:     domain.NewOrder,
			NewStatus: ptrString(n.Status),
			NewAmount: ptrDecimal(n.Amount),
			Remark:    domain.RemarkNewOrder,
		})
		totals.NewOnlyCount++
		totals.NewOnlyTotal = totals.NewOnlyTotal.Add(n.Amount)
	}

	if settledInNew > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("new snapshot: %d orders already settled by payout, not compared against old", settledInNew))
	}

	totals.PendingOldCount = totals.OldCount - totals.PayoutCount
	totals.PendingOld = totals.OldTotal.Sub(totals.PayoutTotal)
	totals.TotalPendingCount = totals.PendingOldCount + totals.NewOnlyCount
	totals.TotalPending = totals.PendingOld.Add(totals.NewOnlyTotal)
	totals.FinalNetDue = totals.TotalPending.Sub(totals.NetDiscrepancy)
	report.Totals = totals

	for _, entry := range report.Ledger {
		report.StateCounts[entry.State]++
	}
	if missing := report.StateCounts[domain.MissingInNew]; missing > 0 {
		logger.GetLogger().WithFields(map[string]interface{}{
			"run_id":  report.RunID,
			"missing": missing,
		}).Warn("Orders missing in new snapshot")
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"run_id":          report.RunID,
		"payout_settled":  report.StateCounts[domain.PayoutSettled],
		"present_in_both": report.StateCounts[domain.PresentInBoth],
		"new_orders":      report.StateCounts[domain.NewOrder],
		"missing_in_new":  report.StateCounts[domain.MissingInNew],
		"final_net_due":   totals.FinalNetDue.String(),
	}).Info("Reconciliation completed")

	return report, nil
}

// ValidateReconciliationInput requires at least one Old or New record.
func ValidateReconciliationInput(input ReconciliationInput) error {
	if len(input.Old) == 0 && len(input.New) == 0 {
		return fmt.Errorf("old and new snapshots are both empty: %w", domain.ErrSnapshotIncomplete)
	}
	return nil
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot names one of the three time-phased order exports.
type Snapshot string

const (
	SnapshotOld    Snapshot = "old"
	SnapshotNew    Snapshot = "new"
	SnapshotPayout Snapshot = "payout"
)

// LedgerState is the terminal state of an order identifier after reconciliation.
type LedgerState string

const (
	PayoutSettled LedgerState = "PayoutSettled"
	PresentInBoth LedgerState = "PresentInBoth"
	NewOrder      LedgerState = "NewOrder"
	MissingInNew  LedgerState = "MissingInNew"
)

type Remark string

const (
	RemarkPayoutSettled         Remark = "Payout Settled"
	RemarkNoChange              Remark = "No Change"
	RemarkPriceDifference       Remark = "Price Difference"
	RemarkStatusChanged         Remark = "Status Changed"
	RemarkStatusAndPriceChanged Remark = "Status & Price Changed"
	RemarkNewOrder              Remark = "New Order"
	RemarkMissingInNew          Remark = "Missing in New"
)

// SnapshotRecord is one order row of a snapshot after column resolution.
type SnapshotRecord struct {
	OrderID string          `json:"order_id"`
	Status  string          `json:"status"`
	Amount  decimal.Decimal `json:"amount"`
	Row     int             `json:"row"`
}

// LedgerEntry is one row of the combined reconciliation ledger.
type LedgerEntry struct {
	OrderID    string           `json:"order_id"`
	State      LedgerState      `json:"state"`
	OldStatus  *string          `json:"old_status,omitempty"`
	NewStatus  *string          `json:"new_status,omitempty"`
	OldAmount  *decimal.Decimal `json:"old_amount,omitempty"`
	NewAmount  *decimal.Decimal `json:"new_amount,omitempty"`
	Difference *decimal.Decimal `json:"difference,omitempty"`
	Remark     Remark           `json:"remark"`
}

// ReconciliationTotals are the dashboard figures of a run.
type ReconciliationTotals struct {
	OldCount          int             `json:"old_count"`
	OldTotal          decimal.Decimal `json:"old_total"`
	PayoutCount       int             `json:"payout_count"`
	PayoutTotal       decimal.Decimal `json:"payout_total"`
	PendingOldCount   int             `json:"pending_old_count"`
	PendingOld        decimal.Decimal `json:"pending_old"`
	NewOnlyCount      int             `json:"new_only_count"`
	NewOnlyTotal      decimal.Decimal `json:"new_only_total"`
	TotalPendingCount int             `json:"total_pending_count"`
	TotalPending      decimal.Decimal `json:"total_pending"`
	NetDiscrepancy    decimal.Decimal `json:"net_discrepancy"`
	FinalNetDue       decimal.Decimal `json:"final_net_due"`
}

// ReconciliationReport is the full output of one reconciliation run.
type ReconciliationReport struct {
	RunID           string               `json:"run_id"`
	Ledger          []LedgerEntry        `json:"ledger"`
	Totals          ReconciliationTotals `json:"totals"`
	StateCounts     map[LedgerState]int  `json:"state_counts"`
	UnmatchedPayout []SnapshotRecord     `json:"unmatched_payout,omitempty"`
	Duplicates      map[Snapshot]int     `json:"duplicates,omitempty"`
	Warnings        []string             `json:"warnings,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

package matcher

import (
	"meesho-recon/internal/domain"
	"meesho-recon/internal/parser"
	"meesho-recon/internal/resolver"
)

// SnapshotFields are the fields a snapshot table must resolve.
var SnapshotFields = []domain.Field{domain.FieldOrderID, domain.FieldAmount}

// ExtractSnapshot projects a snapshot table to records. A missing status
// column leaves statuses blank; unparseable amounts count as 0.
func ExtractSnapshot(table *domain.Table, res resolver.Resolution) ([]domain.SnapshotRecord, error) {
	if err := res.Require("reconciliation", SnapshotFields...); err != nil {
		return nil, err
	}
	idCol, _ := res.Name(domain.FieldOrderID)
	amountCol, _ := res.Name(domain.FieldAmount)
	statusCol, hasStatus := res.Name(domain.FieldStatus)

	records := make([]domain.SnapshotRecord, 0, table.Len())
	for i, row := range table.Rows {
		r := domain.SnapshotRecord{
			OrderID: domain.NormalizeOrderID(table.Cell(row, idCol).String()),
			Row:     i,
		}
		if d, ok := parser.AmountOf(table.Cell(row, amountCol)); ok {
			r.Amount = d
		}
		if hasStatus {
			r.Status = table.Cell(row, statusCol).String()
		}
		records = append(records, r)
	}
	return records, nil
}

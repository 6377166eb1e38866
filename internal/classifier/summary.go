package classifier

import (
	"github.com/shopspring/decimal"

	"meesho-recon/internal/domain"
)

// BucketTotal is the row count and settlement sum of one bucket.
type BucketTotal struct {
	Bucket domain.Bucket   `json:"bucket"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// StatusSummary counts rows and sums settlement per bucket. Unclassified rows
// count toward the totals but no named bucket.
type StatusSummary struct {
	Buckets          []BucketTotal   `json:"buckets"`
	TotalCount       int             `json:"total_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	AmountsAvailable bool            `json:"amounts_available"`
}

// Summarize builds the per-bucket summary. settlementResolved tells whether
// amounts are meaningful; when false every amount stays zero and tables
// render them as not applicable.
func Summarize(records []domain.OrderRecord, settlementResolved bool) StatusSummary {
	index := make(map[domain.Bucket]int, len(domain.AllBuckets))
	summary := StatusSummary{
		Buckets:          make([]BucketTotal, len(domain.AllBuckets)),
		TotalAmount:      decimal.Zero,
		AmountsAvailable: settlementResolved,
	}
	for i, b := range domain.AllBuckets {
		index[b] = i
		summary.Buckets[i] = BucketTotal{Bucket: b, Amount: decimal.Zero}
	}

	for _, r := range records {
		bt := &summary.Buckets[index[r.Bucket]]
		bt.Count++
		summary.TotalCount++
		if r.Settlement != nil {
			bt.Amount = bt.Amount.Add(*r.Settlement)
			summary.TotalAmount = summary.TotalAmount.Add(*r.Settlement)
		}
	}
	return summary
}

// Get returns the totals of one bucket.
func (s StatusSummary) Get(b domain.Bucket) BucketTotal {
	for _, bt := range s.Buckets {
		if bt.Bucket == b {
			return bt
		}
	}
	return BucketTotal{Bucket: b, Amount: decimal.Zero}
}

// Table renders the summary with a trailing Grand Total row.
func (s StatusSummary) Table() *domain.Table {
	t := domain.NewTable([]string{"Status", "Orders", "Amount"})
	amount := func(d decimal.Decimal) domain.Value {
		if !s.AmountsAvailable {
			return domain.Null()
		}
		return domain.Number(d)
	}
	for _, bt := range s.Buckets {
		t.AppendRow([]domain.Value{
			domain.Text(string(bt.Bucket)),
			domain.Number(decimal.NewFromInt(int64(bt.Count))),
			amount(bt.Amount),
		})
	}
	t.AppendRow([]domain.Value{
		domain.Text("Grand Total"),
		domain.Number(decimal.NewFromInt(int64(s.TotalCount))),
		amount(s.TotalAmount),
	})
	return t
}

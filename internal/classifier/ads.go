package classifier

import (
	"github.com/shopspring/decimal"

	"meesho-recon/internal/domain"
	"meesho-recon/internal/resolver"
)

// AdsTotal sums the ads cost column of an ads export.
func AdsTotal(ads *domain.Table, r *resolver.Resolver) (decimal.Decimal, error) {
	col := r.Resolve(ads, domain.FieldAdsCost)
	if !col.Found() {
		return decimal.Zero, &domain.MissingFieldError{Operation: "ads total", Fields: []domain.Field{domain.FieldAdsCost}}
	}
	total := decimal.Zero
	for _, row := range ads.Rows {
		if d := amountCell(row[col.Index]); d != nil {
			total = total.Add(*d)
		}
	}
	return total, nil
}

package classifier

import (
	"github.com/shopspring/decimal"

	"meesho-recon/internal/domain"
	"meesho-recon/internal/resolver"
	"meesho-recon/pkg/logger"
)

// GSTRate is the fixed GST rate applied to RTO shipping charges.
var GSTRate = decimal.RequireFromString("0.18")

// RTOFields are the back-calculated amounts of a returned-to-origin order.
type RTOFields struct {
	ShippingCharge    decimal.Decimal `json:"shipping_charge"`
	ShippingChargeGST decimal.Decimal `json:"shipping_charge_gst"`
	RTOAmount         decimal.Decimal `json:"rto_amount"`
}

// ComputeRTO derives the shipping charge, its GST and the RTO amount from the
// listing price and the total sale amount.
func ComputeRTO(listingPrice, totalSale decimal.Decimal) RTOFields {
	shipping := totalSale.Sub(listingPrice)
	gst := shipping.Mul(GSTRate)
	return RTOFields{
		ShippingCharge:    shipping,
		ShippingChargeGST: gst,
		RTOAmount:         listingPrice.Sub(gst),
	}
}

// EnsureRTOColumns appends the derived RTO columns that the table does not
// already carry. Only rows classified RTO with both prices numeric get
// values; every other cell is null. Calling it again on an enriched table
// writes nothing. It reports whether any column was added.
func (c *Classifier) EnsureRTOColumns(table *domain.Table, res resolver.Resolution) (bool, error) {
	targets := []string{domain.ColumnShippingCharge, domain.ColumnShippingChargeGST, domain.ColumnRTOAmount}
	absent := make([]string, 0, len(targets))
	for _, col := range targets {
		if !table.HasColumn(col) {
			absent = append(absent, col)
		}
	}
	if len(absent) == 0 {
		return false, nil
	}

	if err := res.Require("rto back-calculation", domain.FieldStatus, domain.FieldListingPrice, domain.FieldTotalSale); err != nil {
		logger.GetLogger().WithError(err).Warn("Skipping RTO back-calculation")
		return false, err
	}

	statusCol, _ := res.Name(domain.FieldStatus)
	listingCol, _ := res.Name(domain.FieldListingPrice)
	totalCol, _ := res.Name(domain.FieldTotalSale)

	// Compute from the original cells before any column is appended.
	computed := make([]*RTOFields, table.Len())
	rtoRows := 0
	for i, row := range table.Rows {
		if _, bucket := c.Classify(table.Cell(row, statusCol).String()); bucket != domain.BucketRTO {
			continue
		}
		listing := amountCell(table.Cell(row, listingCol))
		total := amountCell(table.Cell(row, totalCol))
		if listing == nil || total == nil {
			continue
		}
		f := ComputeRTO(*listing, *total)
		computed[i] = &f
		rtoRows++
	}

	pick := map[string]func(RTOFields) decimal.Decimal{
		domain.ColumnShippingCharge:    func(f RTOFields) decimal.Decimal { return f.ShippingCharge },
		domain.ColumnShippingChargeGST: func(f RTOFields) decimal.Decimal { return f.ShippingChargeGST },
		domain.ColumnRTOAmount:         func(f RTOFields) decimal.Decimal { return f.RTOAmount },
	}
	for _, col := range absent {
		get := pick[col]
		table.AddColumn(col, func(i int, row []domain.Value) domain.Value {
			if computed[i] == nil {
				return domain.Null()
			}
			return domain.Number(get(*computed[i]))
		})
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"columns":  absent,
		"rto_rows": rtoRows,
	}).Info("RTO columns derived")
	return true, nil
}

package classifier

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"meesho-recon/internal/domain"
	"meesho-recon/internal/parser"
	"meesho-recon/internal/resolver"
)

// OrderFields are the semantic fields an order export is resolved against.
var OrderFields = []domain.Field{
	domain.FieldOrderID,
	domain.FieldStatus,
	domain.FieldOrderDate,
	domain.FieldDispatchDate,
	domain.FieldPaymentDate,
	domain.FieldSKU,
	domain.FieldSize,
	domain.FieldColor,
	domain.FieldState,
	domain.FieldCatalogID,
	domain.FieldSettlement,
	domain.FieldListingPrice,
	domain.FieldTotalSale,
	domain.FieldProfit,
	domain.FieldExchangeLoss,
	domain.FieldReturnLoss,
	domain.FieldQuantity,
	domain.FieldCourier,
	domain.FieldReason,
}

// Classifier maps raw status text onto the closed status vocabulary by exact,
// case-insensitive comparison.
type Classifier struct {
	statuses map[string]domain.Status
}

func New(statuses map[string]domain.Status) *Classifier {
	normalized := make(map[string]domain.Status, len(statuses))
	for k, v := range statuses {
		normalized[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Classifier{statuses: normalized}
}

// Classify returns the bucket for a raw status. Blank is Platform Recovery;
// anything outside the vocabulary is Unclassified.
func (c *Classifier) Classify(raw string) (domain.Status, domain.Bucket) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" || key == "nan" {
		return domain.StatusBlank, domain.BucketPlatformRecovery
	}
	if s, ok := c.statuses[key]; ok {
		return s, domain.BucketFor(s)
	}
	return domain.StatusBlank, domain.BucketUnclassified
}

// BuildOrders projects table rows onto typed records using the resolved
// columns. Unresolved fields are left nil or empty, never zero.
func (c *Classifier) BuildOrders(table *domain.Table, res resolver.Resolution) []domain.OrderRecord {
	text := func(row []domain.Value, f domain.Field) string {
		name, ok := res.Name(f)
		if !ok {
			return ""
		}
		return strings.TrimSpace(table.Cell(row, name).String())
	}
	amount := func(row []domain.Value, f domain.Field) *decimal.Decimal {
		name, ok := res.Name(f)
		if !ok {
			return nil
		}
		return amountCell(table.Cell(row, name))
	}
	derived := func(row []domain.Value, column string) *decimal.Decimal {
		if !table.HasColumn(column) {
			return nil
		}
		return amountCell(table.Cell(row, column))
	}
	date := func(row []domain.Value, f domain.Field) *time.Time {
		name, ok := res.Name(f)
		if !ok {
			return nil
		}
		if t, ok := parser.DateOf(table.Cell(row, name)); ok {
			return &t
		}
		return nil
	}

	records := make([]domain.OrderRecord, 0, table.Len())
	for i, row := range table.Rows {
		raw := text(row, domain.FieldStatus)
		status, bucket := c.Classify(raw)
		if _, ok := res.Name(domain.FieldStatus); !ok {
			bucket = domain.BucketUnclassified
		}
		records = append(records, domain.OrderRecord{
			Row:               i,
			OrderID:           domain.NormalizeOrderID(text(row, domain.FieldOrderID)),
			RawStatus:         raw,
			Status:            status,
			Bucket:            bucket,
			OrderDate:         date(row, domain.FieldOrderDate),
			DispatchDate:      date(row, domain.FieldDispatchDate),
			PaymentDate:       date(row, domain.FieldPaymentDate),
			SKU:               text(row, domain.FieldSKU),
			Size:              text(row, domain.FieldSize),
			State:             text(row, domain.FieldState),
			CatalogID:         text(row, domain.FieldCatalogID),
			Settlement:        amount(row, domain.FieldSettlement),
			ListingPrice:      amount(row, domain.FieldListingPrice),
			TotalSale:         amount(row, domain.FieldTotalSale),
			Profit:            amount(row, domain.FieldProfit),
			ExchangeLoss:      amount(row, domain.FieldExchangeLoss),
			ReturnLoss:        amount(row, domain.FieldReturnLoss),
			ShippingCharge:    derived(row, domain.ColumnShippingCharge),
			ShippingChargeGST: derived(row, domain.ColumnShippingChargeGST),
			RTOAmount:         derived(row, domain.ColumnRTOAmount),
		})
	}
	return records
}

func amountCell(v domain.Value) *decimal.Decimal {
	d, ok := parser.AmountOf(v)
	if !ok {
		return nil
	}
	return &d
}

package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the marketplace order status. The blank status is meaningful
// and is reported as Platform Recovery.
type Status string

const (
	StatusDelivered Status = "Delivered"
	StatusReturn    Status = "Return"
	StatusExchange  Status = "Exchange"
	StatusCancelled Status = "Cancelled"
	StatusShipped   Status = "Shipped"
	StatusRTO       Status = "RTO"
	StatusBlank     Status = ""
)

// NamedStatuses is the closed set of non-blank statuses in report order.
var NamedStatuses = []Status{
	StatusDelivered,
	StatusReturn,
	StatusRTO,
	StatusExchange,
	StatusCancelled,
	StatusShipped,
}

// Bucket is the classification outcome of a row.
type Bucket string

const (
	BucketDelivered        Bucket = "Delivered"
	BucketReturn           Bucket = "Return"
	BucketRTO              Bucket = "RTO"
	BucketExchange         Bucket = "Exchange"
	BucketCancelled        Bucket = "Cancelled"
	BucketShipped          Bucket = "Shipped"
	BucketPlatformRecovery Bucket = "Platform Recovery"
	BucketUnclassified     Bucket = "Unclassified"
)

// AllBuckets lists every bucket in summary-table order.
var AllBuckets = []Bucket{
	BucketDelivered,
	BucketReturn,
	BucketRTO,
	BucketExchange,
	BucketCancelled,
	BucketShipped,
	BucketPlatformRecovery,
	BucketUnclassified,
}

func BucketFor(s Status) Bucket {
	if s == StatusBlank {
		return BucketPlatformRecovery
	}
	return Bucket(s)
}

// IsNamed reports whether the bucket is one of the named statuses.
func (b Bucket) IsNamed() bool {
	return b != BucketPlatformRecovery && b != BucketUnclassified
}

// Field is a semantic column, resolved against whatever header an export uses.
type Field string

const (
	FieldOrderID      Field = "order_id"
	FieldStatus       Field = "status"
	FieldOrderDate    Field = "order_date"
	FieldDispatchDate Field = "dispatch_date"
	FieldPaymentDate  Field = "payment_date"
	FieldSKU          Field = "sku"
	FieldSize         Field = "size"
	FieldColor        Field = "color"
	FieldState        Field = "state"
	FieldCatalogID    Field = "catalog_id"
	FieldSettlement   Field = "settlement_amount"
	FieldAmount       Field = "amount"
	FieldListingPrice Field = "listing_price"
	FieldTotalSale    Field = "total_sale_amount"
	FieldProfit       Field = "profit_amount"
	FieldExchangeLoss Field = "exchange_loss"
	FieldReturnLoss   Field = "return_loss"
	FieldQuantity     Field = "quantity"
	FieldCourier      Field = "courier"
	FieldReason       Field = "reason"
	FieldAdsCost      Field = "ads_cost"
)

// Derived column names written by the RTO back-calculation.
const (
	ColumnShippingCharge    = "Shipping Charge"
	ColumnShippingChargeGST = "Shipping Charge GST"
	ColumnRTOAmount         = "RTO Amount"
	ColumnStyle             = "Style"
	ColumnDetectedColor     = "Detected Color"
)

// OrderRecord is a typed projection of one order-export row. Pointer fields
// are nil when the backing column did not resolve or the cell was empty.
type OrderRecord struct {
	Row          int              `json:"row"`
	OrderID      string           `json:"order_id"`
	RawStatus    string           `json:"raw_status"`
	Status       Status           `json:"status"`
	Bucket       Bucket           `json:"bucket"`
	OrderDate    *time.Time       `json:"order_date,omitempty"`
	DispatchDate *time.Time       `json:"dispatch_date,omitempty"`
	PaymentDate  *time.Time       `json:"payment_date,omitempty"`
	SKU          string           `json:"sku"`
	Size         string           `json:"size"`
	State        string           `json:"state"`
	CatalogID    string           `json:"catalog_id"`
	Settlement   *decimal.Decimal `json:"settlement_amount,omitempty"`
	ListingPrice *decimal.Decimal `json:"listing_price,omitempty"`
	TotalSale    *decimal.Decimal `json:"total_sale_amount,omitempty"`
	Profit       *decimal.Decimal `json:"profit_amount,omitempty"`
	ExchangeLoss *decimal.Decimal `json:"exchange_loss,omitempty"`
	ReturnLoss   *decimal.Decimal `json:"return_loss,omitempty"`

	ShippingCharge    *decimal.Decimal `json:"shipping_charge,omitempty"`
	ShippingChargeGST *decimal.Decimal `json:"shipping_charge_gst,omitempty"`
	RTOAmount         *decimal.Decimal `json:"rto_amount,omitempty"`
}

// SKUGroup is a named point-in-time snapshot of the SKUs that contained any
// of its keywords.
type SKUGroup struct {
	Name      string    `json:"name"`
	Keywords  []string  `json:"keywords"`
	SKUs      []string  `json:"skus"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeOrderID trims an identifier for cross-snapshot matching.
func NormalizeOrderID(id string) string {
	return strings.TrimSpace(id)
}

package classifier

import (
	"github.com/shopspring/decimal"

	"meesho-recon/internal/domain"
	"meesho-recon/internal/resolver"
)

// FinancialInputs are operator-supplied constants for the amount summary.
type FinancialInputs struct {
	PerUnitCost decimal.Decimal
	// AdsCost is the ads spend for the same period, if an ads export was given.
	AdsCost *decimal.Decimal
}

// Financials holds the amount identities. Pointer figures are nil when a
// column they depend on did not resolve.
type Financials struct {
	TotalAmount      *decimal.Decimal `json:"total_amount,omitempty"`
	ShippedWithTotal *decimal.Decimal `json:"shipped_with_total,omitempty"`

	ProfitSum             *decimal.Decimal `json:"profit_sum,omitempty"`
	ReturnLossSum         *decimal.Decimal `json:"return_loss_sum,omitempty"`
	ExchangeLossSum       *decimal.Decimal `json:"exchange_loss_sum,omitempty"`
	ExchangeLossEstimated bool             `json:"exchange_loss_estimated"`
	COGS                  decimal.Decimal  `json:"cogs"`
	NetProfit             *decimal.Decimal `json:"net_profit,omitempty"`

	RTOCount       int             `json:"rto_count"`
	RTOAmountSum   decimal.Decimal `json:"rto_amount_sum"`
	ShippingGSTSum decimal.Decimal `json:"shipping_gst_sum"`

	AdsCost         *decimal.Decimal `json:"ads_cost,omitempty"`
	AdsCostPerOrder *decimal.Decimal `json:"ads_cost_per_order,omitempty"`
	Payable         *decimal.Decimal `json:"payable,omitempty"`

	Missing []domain.Field `json:"missing,omitempty"`
}

// ComputeFinancials evaluates the amount identities over classified records.
//
//	TotalAmount      = (Delivered + Exchange + Cancelled) - |Return|
//	ShippedWithTotal = (Delivered + Cancelled + Shipped) - (|Return| + |Exchange|)
//	NetProfit        = Profit - (|ReturnLoss| + |ExchangeLoss| + COGS)
//
// Without an exchange-loss column the exchange loss is estimated from the
// average return loss and flagged as an estimate. A loss with no source
// column stays nil, and so does NetProfit.
func ComputeFinancials(records []domain.OrderRecord, summary StatusSummary, res resolver.Resolution, in FinancialInputs) Financials {
	f := Financials{
		COGS:           decimal.Zero,
		RTOAmountSum:   decimal.Zero,
		ShippingGSTSum: decimal.Zero,
		Missing:        res.Missing(domain.FieldSettlement, domain.FieldProfit, domain.FieldExchangeLoss, domain.FieldReturnLoss),
	}

	delivered := summary.Get(domain.BucketDelivered)
	returned := summary.Get(domain.BucketReturn)
	exchanged := summary.Get(domain.BucketExchange)
	cancelled := summary.Get(domain.BucketCancelled)
	shipped := summary.Get(domain.BucketShipped)

	if summary.AmountsAvailable {
		total := delivered.Amount.Add(exchanged.Amount).Add(cancelled.Amount).Sub(returned.Amount.Abs())
		f.TotalAmount = &total
		withShipped := delivered.Amount.Add(cancelled.Amount).Add(shipped.Amount).
			Sub(returned.Amount.Abs().Add(exchanged.Amount.Abs()))
		f.ShippedWithTotal = &withShipped
	}

	_, hasReturnLoss := res.Name(domain.FieldReturnLoss)
	_, hasExchangeLoss := res.Name(domain.FieldExchangeLoss)
	_, hasProfit := res.Name(domain.FieldProfit)

	profit, returnLoss, exchangeLoss := decimal.Zero, decimal.Zero, decimal.Zero
	for _, r := range records {
		if hasReturnLoss && r.ReturnLoss != nil {
			returnLoss = returnLoss.Add(*r.ReturnLoss)
		}
		if hasExchangeLoss && r.ExchangeLoss != nil {
			exchangeLoss = exchangeLoss.Add(*r.ExchangeLoss)
		}
		if hasProfit && r.Profit != nil {
			profit = profit.Add(*r.Profit)
		}
		if r.Bucket == domain.BucketRTO {
			f.RTOCount++
			if r.RTOAmount != nil {
				f.RTOAmountSum = f.RTOAmountSum.Add(*r.RTOAmount)
			}
			if r.ShippingChargeGST != nil {
				f.ShippingGSTSum = f.ShippingGSTSum.Add(*r.ShippingChargeGST)
			}
		}
	}

	// The settlement of returned orders is the return loss when the export
	// carries no dedicated column. Without either source it stays unknown.
	switch {
	case hasReturnLoss:
		f.ReturnLossSum = &returnLoss
	case summary.AmountsAvailable:
		settled := returned.Amount
		f.ReturnLossSum = &settled
	}

	switch {
	case hasExchangeLoss:
		f.ExchangeLossSum = &exchangeLoss
	case f.ReturnLossSum != nil:
		estimate := EstimateExchangeLoss(*f.ReturnLossSum, returned.Count, exchanged.Count)
		f.ExchangeLossSum = &estimate
		f.ExchangeLossEstimated = true
	}

	f.COGS = in.PerUnitCost.Mul(decimal.NewFromInt(int64(delivered.Count)))

	if hasProfit {
		f.ProfitSum = &profit
		if f.ReturnLossSum != nil && f.ExchangeLossSum != nil {
			net := profit.Sub(f.ReturnLossSum.Abs().Add(f.ExchangeLossSum.Abs()).Add(f.COGS))
			f.NetProfit = &net
		}
	}

	if in.AdsCost != nil {
		ads := *in.AdsCost
		f.AdsCost = &ads
		perOrder := decimal.Zero
		if summary.TotalCount > 0 {
			perOrder = ads.Abs().Div(decimal.NewFromInt(int64(summary.TotalCount)))
		}
		f.AdsCostPerOrder = &perOrder
		if f.TotalAmount != nil {
			payable := f.TotalAmount.Sub(ads.Abs())
			f.Payable = &payable
		}
	}
	return f
}

// EstimateExchangeLoss applies the average return loss to every exchange.
func EstimateExchangeLoss(returnLossSum decimal.Decimal, returnCount, exchangeCount int) decimal.Decimal {
	if returnCount == 0 {
		return decimal.Zero
	}
	return returnLossSum.Abs().
		Mul(decimal.NewFromInt(int64(exchangeCount))).
		Div(decimal.NewFromInt(int64(returnCount)))
}

// Table renders the amount summary as Metric/Amount rows. Figures that could
// not be computed are rendered empty, distinct from zero.
func (f Financials) Table() *domain.Table {
	t := domain.NewTable([]string{"Metric", "Amount"})
	opt := func(d *decimal.Decimal) domain.Value {
		if d == nil {
			return domain.Null()
		}
		return domain.Number(*d)
	}
	exchangeLabel := "Exchange Loss"
	if f.ExchangeLossEstimated {
		exchangeLabel = "Exchange Loss (estimated)"
	}
	rows := []struct {
		label string
		value domain.Value
	}{
		{"Total Amount", opt(f.TotalAmount)},
		{"Shipped With Total", opt(f.ShippedWithTotal)},
		{"Profit Amount", opt(f.ProfitSum)},
		{"Return Loss", opt(f.ReturnLossSum)},
		{exchangeLabel, opt(f.ExchangeLossSum)},
		{"COGS", domain.Number(f.COGS)},
		{"Net Profit", opt(f.NetProfit)},
		{"RTO Orders", domain.Number(decimal.NewFromInt(int64(f.RTOCount)))},
		{"RTO Amount", domain.Number(f.RTOAmountSum)},
		{"RTO Shipping GST", domain.Number(f.ShippingGSTSum)},
		{"Ads Cost", opt(f.AdsCost)},
		{"Ads Cost Per Order", opt(f.AdsCostPerOrder)},
		{"Payable", opt(f.Payable)},
	}
	for _, r := range rows {
		t.AppendRow([]domain.Value{domain.Text(r.label), r.value})
	}
	return t
}

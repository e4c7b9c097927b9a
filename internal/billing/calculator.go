package billing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDiscount     = errors.New("discount percent must be between 0 and 100")
	ErrInvalidTender       = errors.New("invalid tender")
	ErrInsufficientPayment = errors.New("amount received is less than the total")
	ErrPaymentMismatch     = errors.New("split tender amounts do not sum to the total")
)

// TenderKind is the payment instrument offered toward a bill
type TenderKind string

const (
	TenderCash  TenderKind = "cash"
	TenderCard  TenderKind = "card"
	TenderUPI   TenderKind = "upi"
	TenderSplit TenderKind = "split"
)

// TenderPart is one leg of a split payment
type TenderPart struct {
	Kind   TenderKind      `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// Tender describes how a bill is paid. A single-method tender carries the
// amount received; a split tender carries parts that must sum to the total.
type Tender struct {
	Kind     TenderKind      `json:"kind"`
	Received decimal.Decimal `json:"received,omitempty"`
	Parts    []TenderPart    `json:"parts,omitempty"`
}

// Bill is a settled bill with every derived amount rounded to the
// currency's minor unit.
type Bill struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	TaxableAmount   decimal.Decimal `json:"taxableAmount"`
	Tax             decimal.Decimal `json:"tax"`
	ServiceCharge   decimal.Decimal `json:"serviceCharge"`
	Total           decimal.Decimal `json:"total"`
	Change          decimal.Decimal `json:"change"`
	Tender          TenderKind      `json:"tender"`
}

// Calculator turns a subtotal plus discount and tender inputs into a
// settled bill. The tax and service charge rates come from configuration.
// Compute is pure; a calculator may be shared by any number of callers.
type Calculator struct {
	taxRatePercent       decimal.Decimal
	serviceChargePercent decimal.Decimal
}

// NewCalculator creates a calculator with the configured rates
func NewCalculator(taxRatePercent, serviceChargePercent decimal.Decimal) *Calculator {
	return &Calculator{
		taxRatePercent:       taxRatePercent,
		serviceChargePercent: serviceChargePercent,
	}
}

var hundred = decimal.NewFromInt(100)

// Compute runs the billing pipeline:
//
//	discountAmount = subtotal * discountPercent / 100
//	taxableAmount  = subtotal - discountAmount
//	tax            = taxableAmount * taxRate / 100
//	serviceCharge  = taxableAmount * serviceChargeRate / 100
//	total          = taxableAmount + tax + serviceCharge
//
// Intermediate values stay exact; each monetary output is rounded
// half-even to two decimal places once at the end, so rounding error
// never compounds through the pipeline.
//
// A discount percent outside [0, 100] is rejected before anything is
// computed, never clamped.
func (c *Calculator) Compute(subtotal, discountPercent decimal.Decimal, tender Tender) (Bill, error) {
	if discountPercent.IsNegative() || discountPercent.GreaterThan(hundred) {
		return Bill{}, ErrInvalidDiscount
	}

	discountAmount := subtotal.Mul(discountPercent).Div(hundred)
	taxableAmount := subtotal.Sub(discountAmount)
	tax := taxableAmount.Mul(c.taxRatePercent).Div(hundred)
	serviceCharge := taxableAmount.Mul(c.serviceChargePercent).Div(hundred)
	total := taxableAmount.Add(tax).Add(serviceCharge)

	bill := Bill{
		Subtotal:        subtotal.RoundBank(2),
		DiscountPercent: discountPercent,
		DiscountAmount:  discountAmount.RoundBank(2),
		TaxableAmount:   taxableAmount.RoundBank(2),
		Tax:             tax.RoundBank(2),
		ServiceCharge:   serviceCharge.RoundBank(2),
		Total:           total.RoundBank(2),
		Tender:          tender.Kind,
	}

	change, err := settle(bill.Total, tender)
	if err != nil {
		return Bill{}, err
	}
	bill.Change = change

	return bill, nil
}

// settle validates the tender against the rounded total and returns the
// change due. Split tenders must match the total exactly and yield no change.
func settle(total decimal.Decimal, tender Tender) (decimal.Decimal, error) {
	switch tender.Kind {
	case TenderCash, TenderCard, TenderUPI:
		if len(tender.Parts) > 0 {
			return decimal.Zero, ErrInvalidTender
		}
		if tender.Received.LessThan(total) {
			return decimal.Zero, ErrInsufficientPayment
		}
		return tender.Received.Sub(total).RoundBank(2), nil

	case TenderSplit:
		if len(tender.Parts) == 0 {
			return decimal.Zero, ErrInvalidTender
		}
		sum := decimal.Zero
		for _, p := range tender.Parts {
			sum = sum.Add(p.Amount)
		}
		if !sum.Equal(total) {
			return decimal.Zero, ErrPaymentMismatch
		}
		return decimal.Zero, nil

	default:
		return decimal.Zero, ErrInvalidTender
	}
}

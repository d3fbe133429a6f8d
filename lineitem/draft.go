package lineitem

import "math"

// Draft is the in-progress line item behind the form.
type Draft struct {
	Quantity        float64 `json:"qty"`
	UnitPrice       float64 `json:"price"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountAmount  float64 `json:"discount"`
	TaxPercent      float64 `json:"tax_percent"`
	TaxAmount       float64 `json:"tax"`
	Total           float64 `json:"total"`
}

// Subtotal is quantity times unit price.
func (d Draft) Subtotal() float64 {
	return d.Quantity * d.UnitPrice
}

// AfterDiscount is the subtotal less the discount amount; it is the tax base.
func (d Draft) AfterDiscount() float64 {
	return d.Subtotal() - d.DiscountAmount
}

// IsZero reports whether every field is zero.
func (d Draft) IsZero() bool {
	return d == Draft{}
}

// Valid reports whether every field holds a finite number.
func (d Draft) Valid() bool {
	for _, v := range []float64{
		d.Quantity, d.UnitPrice,
		d.DiscountPercent, d.DiscountAmount,
		d.TaxPercent, d.TaxAmount,
		d.Total,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Get returns the value of the named field.
func (d Draft) Get(f Field) float64 {
	switch f {
	case FieldQuantity:
		return d.Quantity
	case FieldUnitPrice:
		return d.UnitPrice
	case FieldDiscountPercent:
		return d.DiscountPercent
	case FieldDiscountAmount:
		return d.DiscountAmount
	case FieldTaxPercent:
		return d.TaxPercent
	case FieldTaxAmount:
		return d.TaxAmount
	case FieldTotal:
		return d.Total
	default:
		return 0
	}
}

func (d *Draft) set(f Field, v float64) {
	switch f {
	case FieldQuantity:
		d.Quantity = v
	case FieldUnitPrice:
		d.UnitPrice = v
	case FieldDiscountPercent:
		d.DiscountPercent = v
	case FieldDiscountAmount:
		d.DiscountAmount = v
	case FieldTaxPercent:
		d.TaxPercent = v
	case FieldTaxAmount:
		d.TaxAmount = v
	}
}

// Reconcile applies value to the changed field and re-derives the
// dependent fields.
//
// An edited amount is authoritative and its percentage is derived from
// it. Any other edit, quantity and price included, re-derives both
// amounts from the current percentages, so an amount typed earlier is
// overwritten unless it was the field just changed. A zero or negative
// base yields a zero percentage instead of dividing.
func Reconcile(prev Draft, changed Field, value float64) Draft {
	next := prev
	next.set(changed, value)

	subtotal := next.Quantity * next.UnitPrice

	if changed == FieldDiscountAmount {
		next.DiscountPercent = 0
		if subtotal > 0 {
			next.DiscountPercent = next.DiscountAmount / subtotal * 100
		}
	} else {
		next.DiscountAmount = subtotal * next.DiscountPercent / 100
	}

	afterDiscount := subtotal - next.DiscountAmount

	if changed == FieldTaxAmount {
		next.TaxPercent = 0
		if afterDiscount > 0 {
			next.TaxPercent = next.TaxAmount / afterDiscount * 100
		}
	} else {
		next.TaxAmount = afterDiscount * next.TaxPercent / 100
	}

	next.Total = afterDiscount + next.TaxAmount
	return next
}

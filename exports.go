package invoicer

import (
	"github.com/xraph/invoicer/lineitem"
	"github.com/xraph/invoicer/types"
)

// Re-export common types so callers rarely need the sub-packages.

// Draft is re-exported from the lineitem package.
type Draft = lineitem.Draft

// Field is re-exported from the lineitem package.
type Field = lineitem.Field

// Entity is re-exported from types package.
type Entity = types.Entity

// Re-export field constants and the pure helpers.
const (
	FieldQuantity        = lineitem.FieldQuantity
	FieldUnitPrice       = lineitem.FieldUnitPrice
	FieldDiscountPercent = lineitem.FieldDiscountPercent
	FieldDiscountAmount  = lineitem.FieldDiscountAmount
	FieldTaxPercent      = lineitem.FieldTaxPercent
	FieldTaxAmount       = lineitem.FieldTaxAmount
)

var (
	Coerce    = lineitem.Coerce
	Reconcile = lineitem.Reconcile
)

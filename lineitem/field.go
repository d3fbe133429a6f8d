// Package lineitem holds the editable line-item draft and the rules that
// keep its discount, tax and total fields consistent with one another.
package lineitem

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// Field names an input of the line-item form.
type Field string

// Field constants. The values are the form input names.
const (
	FieldQuantity        Field = "qty"
	FieldUnitPrice       Field = "price"
	FieldDiscountPercent Field = "discountPercent"
	FieldDiscountAmount  Field = "discount"
	FieldTaxPercent      Field = "taxPercent"
	FieldTaxAmount       Field = "tax"
	FieldTotal           Field = "total" // derived, never editable
)

var (
	// ErrUnknownField is returned for a field name the form does not have.
	ErrUnknownField = errors.New("lineitem: unknown field")

	// ErrFieldNotEditable is returned for derived fields such as the total.
	ErrFieldNotEditable = errors.New("lineitem: field is not editable")
)

// Fields lists the editable fields in form order.
func Fields() []Field {
	return []Field{
		FieldQuantity,
		FieldUnitPrice,
		FieldDiscountPercent,
		FieldDiscountAmount,
		FieldTaxPercent,
		FieldTaxAmount,
	}
}

var aliases = map[string]Field{
	"qty":             FieldQuantity,
	"quantity":        FieldQuantity,
	"price":           FieldUnitPrice,
	"unitPrice":       FieldUnitPrice,
	"discountPercent": FieldDiscountPercent,
	"discount":        FieldDiscountAmount,
	"discountAmount":  FieldDiscountAmount,
	"taxPercent":      FieldTaxPercent,
	"tax":             FieldTaxAmount,
	"taxAmount":       FieldTaxAmount,
}

// ParseField resolves a form input name to a Field.
func ParseField(name string) (Field, error) {
	if f, ok := aliases[name]; ok {
		return f, nil
	}
	if name == string(FieldTotal) {
		return "", fmt.Errorf("parse field %q: %w", name, ErrFieldNotEditable)
	}
	return "", fmt.Errorf("parse field %q: %w", name, ErrUnknownField)
}

// Label returns the human-readable form label.
func (f Field) Label() string {
	switch f {
	case FieldQuantity:
		return "Quantity"
	case FieldUnitPrice:
		return "Price"
	case FieldDiscountPercent:
		return "Discount %"
	case FieldDiscountAmount:
		return "Discount Amount"
	case FieldTaxPercent:
		return "Tax %"
	case FieldTaxAmount:
		return "Tax Amount"
	case FieldTotal:
		return "Total"
	default:
		return string(f)
	}
}

// Coerce converts raw text input to a number the way a browser number
// field does. Blank input is zero. Decimal and exponent forms, the
// 0x/0o/0b integer forms and the exact words Infinity, +Infinity and
// -Infinity are accepted. Anything else yields NaN rather than an
// error; the NaN flows through reconciliation into every derived field.
func Coerce(raw string) float64 {
	s := strings.TrimSpace(raw)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if v, ok := coerceRadix(s); ok {
		return v
	}

	// strconv also reads inf, nan and hex floats; the form does not.
	if strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) && r != 'e' && r != 'E'
	}) {
		return math.NaN()
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out of range still carries a signed infinity.
		if errors.Is(err, strconv.ErrRange) {
			return v
		}
		return math.NaN()
	}
	return v
}

// coerceRadix handles unsigned 0x, 0o and 0b integers. ok is false when s
// has none of those prefixes.
func coerceRadix(s string) (v float64, ok bool) {
	if len(s) < 2 || s[0] != '0' {
		return 0, false
	}

	var base int
	switch s[1] {
	case 'x', 'X':
		base = 16
	case 'o', 'O':
		base = 8
	case 'b', 'B':
		base = 2
	default:
		return 0, false
	}

	digits := s[2:]
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return math.NaN(), true
	}
	n, valid := new(big.Int).SetString(digits, base)
	if !valid {
		return math.NaN(), true
	}
	v, _ = new(big.Float).SetInt(n).Float64()
	return v, true
}

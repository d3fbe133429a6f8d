// Package id wraps TypeIDs for invoice records.
//
// An ID prints as "inv_" followed by 26 base32 characters. How those
// 128 bits are chosen is up to a Generator; see generator.go.
package id

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix is the type tag in front of the underscore.
type Prefix string

// PrefixInvoice tags invoice record IDs.
const PrefixInvoice Prefix = "inv"

// ID identifies a ledger record. The zero value is Nil and prints as "".
//
//nolint:recvcheck // UnmarshalText needs a pointer receiver.
type ID struct {
	inner typeid.TypeID
	valid bool
}

// InvoiceID names IDs that carry PrefixInvoice.
type InvoiceID = ID

// Nil is the unset ID.
var Nil ID

// New returns a time-sortable ID. A malformed prefix is a programming
// error and panics.
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}
	return ID{inner: tid, valid: true}
}

// NewInvoiceID returns a fresh time-sortable invoice ID.
func NewInvoiceID() ID { return New(PrefixInvoice) }

// FromBytes uses b verbatim as the 128-bit suffix.
func FromBytes(prefix Prefix, b [16]byte) (ID, error) {
	tid, err := typeid.FromBytes(string(prefix), b[:])
	if err != nil {
		return Nil, fmt.Errorf("id: from bytes: %w", err)
	}
	return ID{inner: tid, valid: true}, nil
}

// Parse accepts any well-formed TypeID string.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}
	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}
	return ID{inner: tid, valid: true}, nil
}

// ParseWithPrefix is Parse plus a check on the prefix.
func ParseWithPrefix(s string, expected Prefix) (ID, error) {
	parsed, err := Parse(s)
	if err != nil {
		return Nil, err
	}
	if parsed.Prefix() != expected {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", expected, parsed.Prefix())
	}
	return parsed, nil
}

// ParseInvoiceID parses s and requires the "inv" prefix.
func ParseInvoiceID(s string) (ID, error) { return ParseWithPrefix(s, PrefixInvoice) }

// MustParse panics if s does not parse. Meant for fixtures.
func MustParse(s string) ID {
	parsed, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}
	return parsed
}

func (i ID) String() string {
	if !i.valid {
		return ""
	}
	return i.inner.String()
}

// Prefix returns "" for Nil.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}
	return Prefix(i.inner.Prefix())
}

// IsNil reports whether i is unset.
func (i ID) IsNil() bool { return !i.valid }

// MarshalText writes Nil as empty text so records round-trip through JSON.
func (i ID) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText reads empty text back as Nil.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil
		return nil
	}
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

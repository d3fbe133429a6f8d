package invoice

import (
	"github.com/xraph/invoicer/id"
	"github.com/xraph/invoicer/lineitem"
	"github.com/xraph/invoicer/types"
)

// Record is a submitted line item. The ID is fixed at creation; an
// update replaces the line item fields and keeps the ID.
type Record struct {
	types.Entity
	ID id.InvoiceID `json:"id"`
	lineitem.Draft
}

// Clone returns a copy that shares nothing with r.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

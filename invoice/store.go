package invoice

import (
	"context"

	"github.com/xraph/invoicer/id"
	"github.com/xraph/invoicer/lineitem"
)

// Store is the ordered invoice ledger.
type Store interface {
	// Append assigns a new ID and adds the draft at the end.
	Append(ctx context.Context, d lineitem.Draft) (*Record, error)
	// Update overwrites the fields of the record with the given ID in place.
	Update(ctx context.Context, invID id.InvoiceID, d lineitem.Draft) (*Record, error)
	Get(ctx context.Context, invID id.InvoiceID) (*Record, error)
	List(ctx context.Context, opts ListOpts) ([]*Record, error)
	Len(ctx context.Context) (int, error)
}

// ListOpts pages through the ledger. A zero Limit means no limit.
type ListOpts struct {
	Limit  int
	Offset int
}

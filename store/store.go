package store

import (
	"context"

	"github.com/xraph/invoicer/invoice"
)

// Store is the storage interface the session depends on.
type Store interface {
	invoice.Store

	Ping(ctx context.Context) error
	Close() error
}

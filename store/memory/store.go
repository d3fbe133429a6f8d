// Package memory provides the in-memory invoice ledger. Records live for
// the lifetime of the Store and are never persisted.
package memory

import (
	"context"
	"sync"

	"github.com/xraph/invoicer"
	"github.com/xraph/invoicer/id"
	"github.com/xraph/invoicer/invoice"
	"github.com/xraph/invoicer/lineitem"
	"github.com/xraph/invoicer/store"
	"github.com/xraph/invoicer/types"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

// Store keeps records in insertion order with an index by ID.
type Store struct {
	mu sync.RWMutex

	ids     id.Generator
	records []*invoice.Record
	index   map[string]int
	closed  bool
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator sets the generator used by Append.
func WithIDGenerator(g id.Generator) Option {
	return func(s *Store) {
		s.ids = g
	}
}

// New creates an empty ledger. IDs come from a TypeID generator unless
// WithIDGenerator is given.
func New(opts ...Option) *Store {
	s := &Store{
		ids:     id.NewTypeIDGenerator(),
		records: make([]*invoice.Record, 0),
		index:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Append(_ context.Context, d lineitem.Draft) (*invoice.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, invoicer.ErrStoreClosed
	}

	rec := &invoice.Record{
		Entity: types.NewEntity(),
		ID:     s.ids.Next(),
		Draft:  d,
	}
	key := rec.ID.String()
	if _, exists := s.index[key]; exists {
		return nil, invoicer.ErrAlreadyExists
	}

	s.index[key] = len(s.records)
	s.records = append(s.records, rec)
	return rec.Clone(), nil
}

func (s *Store) Update(_ context.Context, invID id.InvoiceID, d lineitem.Draft) (*invoice.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, invoicer.ErrStoreClosed
	}

	pos, ok := s.index[invID.String()]
	if !ok {
		return nil, invoicer.ErrRecordNotFound
	}

	rec := s.records[pos]
	rec.Draft = d
	rec.Touch()
	return rec.Clone(), nil
}

func (s *Store) Get(_ context.Context, invID id.InvoiceID) (*invoice.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if pos, ok := s.index[invID.String()]; ok {
		return s.records[pos].Clone(), nil
	}
	return nil, invoicer.ErrRecordNotFound
}

func (s *Store) List(_ context.Context, opts invoice.ListOpts) ([]*invoice.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := opts.Offset
	if start < 0 {
		start = 0
	}
	if start > len(s.records) {
		start = len(s.records)
	}
	end := start + opts.Limit
	if opts.Limit <= 0 || end > len(s.records) {
		end = len(s.records)
	}

	result := make([]*invoice.Record, 0, end-start)
	for _, rec := range s.records[start:end] {
		result = append(result, rec.Clone())
	}
	return result, nil
}

func (s *Store) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return invoicer.ErrStoreClosed
	}
	return nil
}

// Close marks the store closed. Records stay readable; writes fail.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

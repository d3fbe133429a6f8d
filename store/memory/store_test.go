package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/invoicer"
	"github.com/xraph/invoicer/id"
	"github.com/xraph/invoicer/invoice"
	"github.com/xraph/invoicer/lineitem"
	"github.com/xraph/invoicer/store/memory"
)

func TestAppendAssignsDistinctIDs(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	a, err := s.Append(ctx, lineitem.Draft{Quantity: 1, Total: 10})
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Append(ctx, lineitem.Draft{Quantity: 2, Total: 20})
	if err != nil {
		t.Fatal(err)
	}

	if a.ID.IsNil() || b.ID.IsNil() {
		t.Fatal("expected non-nil IDs")
	}
	if a.ID.String() == b.ID.String() {
		t.Errorf("duplicate IDs: %q", a.ID.String())
	}

	n, _ := s.Len(ctx)
	if n != 2 {
		t.Errorf("len: got %d, want 2", n)
	}
}

func TestAppendWithinOneClockTick(t *testing.T) {
	// A generator that hands out the same ID twice must not clobber a record.
	fixed := id.MustParse("inv_00000000000000000000000009")
	s := memory.New(memory.WithIDGenerator(id.GeneratorFunc(func() id.ID { return fixed })))
	ctx := context.Background()

	if _, err := s.Append(ctx, lineitem.Draft{}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Append(ctx, lineitem.Draft{}); !errors.Is(err, invoicer.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
	if n, _ := s.Len(ctx); n != 1 {
		t.Errorf("len: got %d, want 1", n)
	}
}

func TestUpdateInPlace(t *testing.T) {
	ctx := context.Background()
	s := memory.New(memory.WithIDGenerator(id.NewSequenceGenerator()))

	first, _ := s.Append(ctx, lineitem.Draft{Quantity: 1})
	second, _ := s.Append(ctx, lineitem.Draft{Quantity: 2})
	third, _ := s.Append(ctx, lineitem.Draft{Quantity: 3})

	updated, err := s.Update(ctx, second.ID, lineitem.Draft{Quantity: 20, Total: 99})
	if err != nil {
		t.Fatal(err)
	}
	if updated.ID.String() != second.ID.String() {
		t.Errorf("update changed the ID: %q != %q", updated.ID.String(), second.ID.String())
	}
	if !updated.CreatedAt.Equal(second.CreatedAt) {
		t.Error("update changed CreatedAt")
	}
	if updated.UpdatedAt.Before(second.UpdatedAt) {
		t.Error("update did not touch UpdatedAt")
	}

	list, err := s.List(ctx, invoice.ListOpts{})
	if err != nil {
		t.Fatal(err)
	}
	wantIDs := []id.ID{first.ID, second.ID, third.ID}
	wantQty := []float64{1, 20, 3}
	if len(list) != len(wantIDs) {
		t.Fatalf("len: got %d, want %d", len(list), len(wantIDs))
	}
	for i, rec := range list {
		if rec.ID.String() != wantIDs[i].String() {
			t.Errorf("position %d: got %q, want %q", i, rec.ID.String(), wantIDs[i].String())
		}
		if rec.Quantity != wantQty[i] {
			t.Errorf("position %d: quantity %v, want %v", i, rec.Quantity, wantQty[i])
		}
	}
}

func TestUpdateUnknownIDLeavesLedgerUnchanged(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	rec, _ := s.Append(ctx, lineitem.Draft{Quantity: 1})

	_, err := s.Update(ctx, id.NewInvoiceID(), lineitem.Draft{Quantity: 9})
	if !invoicer.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Quantity != 1 {
		t.Errorf("record changed: %+v", got.Draft)
	}
	if n, _ := s.Len(ctx); n != 1 {
		t.Errorf("len: got %d, want 1", n)
	}
}

func TestListIsSnapshot(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	rec, _ := s.Append(ctx, lineitem.Draft{Quantity: 1})

	list, _ := s.List(ctx, invoice.ListOpts{})
	list[0].Quantity = 42
	rec.Quantity = 43

	got, _ := s.Get(ctx, rec.ID)
	if got.Quantity != 1 {
		t.Errorf("ledger mutated through a returned record: %v", got.Quantity)
	}
}

func TestListPaging(t *testing.T) {
	ctx := context.Background()
	s := memory.New(memory.WithIDGenerator(id.NewSequenceGenerator()))
	for i := 1; i <= 5; i++ {
		if _, err := s.Append(ctx, lineitem.Draft{Quantity: float64(i)}); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		opts invoice.ListOpts
		want []float64
	}{
		{"All", invoice.ListOpts{}, []float64{1, 2, 3, 4, 5}},
		{"Limit", invoice.ListOpts{Limit: 2}, []float64{1, 2}},
		{"Offset", invoice.ListOpts{Offset: 3}, []float64{4, 5}},
		{"Window", invoice.ListOpts{Offset: 1, Limit: 3}, []float64{2, 3, 4}},
		{"Past end", invoice.ListOpts{Offset: 10}, nil},
		{"Negative offset", invoice.ListOpts{Offset: -1, Limit: 1}, []float64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := s.List(ctx, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if len(list) != len(tt.want) {
				t.Fatalf("len: got %d, want %d", len(list), len(tt.want))
			}
			for i, rec := range list {
				if rec.Quantity != tt.want[i] {
					t.Errorf("item %d: got %v, want %v", i, rec.Quantity, tt.want[i])
				}
			}
		})
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := memory.New().Get(context.Background(), id.NewInvoiceID())
	if !errors.Is(err, invoicer.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	rec, _ := s.Append(ctx, lineitem.Draft{Quantity: 1})

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping before close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	if err := s.Ping(ctx); !errors.Is(err, invoicer.ErrStoreClosed) {
		t.Errorf("ping after close: %v", err)
	}
	if _, err := s.Append(ctx, lineitem.Draft{}); !errors.Is(err, invoicer.ErrStoreClosed) {
		t.Errorf("append after close: %v", err)
	}
	if _, err := s.Update(ctx, rec.ID, lineitem.Draft{}); !errors.Is(err, invoicer.ErrStoreClosed) {
		t.Errorf("update after close: %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); err != nil {
		t.Errorf("get after close: %v", err)
	}
}

package plugin_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/xraph/invoicer/id"
	"github.com/xraph/invoicer/invoice"
	"github.com/xraph/invoicer/lineitem"
	"github.com/xraph/invoicer/plugin"
)

type recorder struct {
	name   string
	events []string
	err    error
	panics bool
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) OnFieldChanged(_ context.Context, f lineitem.Field, _ lineitem.Draft) error {
	r.events = append(r.events, "field:"+string(f))
	if r.panics {
		panic("boom")
	}
	return r.err
}

func (r *recorder) OnInvoiceAppended(_ context.Context, rec *invoice.Record) error {
	r.events = append(r.events, "appended")
	rec.Quantity = -1
	return r.err
}

type nameOnly struct{ name string }

func (n nameOnly) Name() string { return n.name }

func quietRegistry() *plugin.Registry {
	return plugin.NewRegistry().WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegisterDuplicate(t *testing.T) {
	r := quietRegistry()
	if err := r.Register(nameOnly{"a"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(nameOnly{"a"}); err == nil {
		t.Error("expected duplicate registration error")
	}
	if r.Count() != 1 {
		t.Errorf("count: got %d, want 1", r.Count())
	}
	if r.Get("a") == nil || r.Get("b") != nil {
		t.Error("Get returned the wrong plugin")
	}
	if len(r.List()) != 1 {
		t.Errorf("list: got %d plugins", len(r.List()))
	}
}

func TestEmitDispatchesToImplementers(t *testing.T) {
	r := quietRegistry()
	rec := &recorder{name: "rec"}
	if err := r.Register(rec); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(nameOnly{"plain"}); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	r.EmitFieldChanged(ctx, lineitem.FieldQuantity, lineitem.Draft{Quantity: 1})

	record := &invoice.Record{ID: id.NewInvoiceID(), Draft: lineitem.Draft{Quantity: 2}}
	r.EmitInvoiceAppended(ctx, record)
	r.EmitInvoiceUpdated(ctx, record)
	r.EmitDraftReset(ctx)

	want := []string{"field:qty", "appended"}
	if len(rec.events) != len(want) {
		t.Fatalf("events: got %v, want %v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("event %d: got %q, want %q", i, rec.events[i], want[i])
		}
	}

	if record.Quantity != 2 {
		t.Errorf("plugin mutated the emitted record: quantity %v", record.Quantity)
	}
}

func TestEmitSurvivesFailingPlugins(t *testing.T) {
	r := quietRegistry()
	failing := &recorder{name: "failing", err: errors.New("nope")}
	panicking := &recorder{name: "panicking", panics: true}
	after := &recorder{name: "after"}
	for _, p := range []plugin.Plugin{failing, panicking, after} {
		if err := r.Register(p); err != nil {
			t.Fatal(err)
		}
	}

	r.EmitFieldChanged(context.Background(), lineitem.FieldTaxAmount, lineitem.Draft{})

	if len(after.events) != 1 {
		t.Errorf("plugin after a failure was not called: %v", after.events)
	}
}

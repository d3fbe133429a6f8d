package observability_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/xraph/invoicer"
	"github.com/xraph/invoicer/id"
	"github.com/xraph/invoicer/observability"
	"github.com/xraph/invoicer/store/memory"
)

type counter struct{ v float64 }

func (c *counter) Inc()          { c.v++ }
func (c *counter) Add(v float64) { c.v += v }

type histogram struct{ obs []float64 }

func (h *histogram) Observe(v float64) { h.obs = append(h.obs, v) }

type factory struct {
	counters   map[string]*counter
	histograms map[string]*histogram
}

func newFactory() *factory {
	return &factory{
		counters:   make(map[string]*counter),
		histograms: make(map[string]*histogram),
	}
}

func (f *factory) Counter(name string) observability.Counter {
	c := &counter{}
	f.counters[name] = c
	return c
}

func (f *factory) Histogram(name string) observability.Histogram {
	h := &histogram{}
	f.histograms[name] = h
	return h
}

func TestMetricsExtension(t *testing.T) {
	ctx := context.Background()
	f := newFactory()
	s := invoicer.New(
		memory.New(memory.WithIDGenerator(id.NewSequenceGenerator())),
		invoicer.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		invoicer.WithPlugin(observability.NewMetricsExtension(f)),
	)
	if err := s.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()

	_, _ = s.OnFieldChange(ctx, "qty", "2")
	_, _ = s.OnFieldChange(ctx, "price", "100")
	rec, _ := s.OnSubmit(ctx)

	s.OnStartEdit(ctx, rec)
	_, _ = s.OnFieldChange(ctx, "price", "oops")
	_, _ = s.OnSubmit(ctx)

	counts := map[string]float64{
		"invoicer.draft.field_changed":  3,
		"invoicer.draft.invalid":        1,
		"invoicer.draft.reset":          2,
		"invoicer.invoice.appended":     1,
		"invoicer.invoice.updated":      1,
		"invoicer.invoice.edit_started": 1,
	}
	for name, want := range counts {
		if got := f.counters[name].v; got != want {
			t.Errorf("%s: got %v, want %v", name, got, want)
		}
	}

	totals := f.histograms["invoicer.invoice.total"].obs
	if len(totals) != 1 || totals[0] != 200 {
		t.Errorf("totals: got %v, want [200]", totals)
	}
	for _, v := range totals {
		if math.IsNaN(v) {
			t.Error("NaN total observed")
		}
	}
}

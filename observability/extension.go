// Package observability provides a metrics plugin that records invoice
// session events through a caller-supplied MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/invoicer/invoice"
	"github.com/xraph/invoicer/lineitem"
	"github.com/xraph/invoicer/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin            = (*MetricsExtension)(nil)
	_ plugin.OnFieldChanged    = (*MetricsExtension)(nil)
	_ plugin.OnDraftReset      = (*MetricsExtension)(nil)
	_ plugin.OnInvoiceAppended = (*MetricsExtension)(nil)
	_ plugin.OnInvoiceUpdated  = (*MetricsExtension)(nil)
	_ plugin.OnEditStarted     = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records session metrics.
// Register it as a session plugin.
type MetricsExtension struct {
	factory MetricFactory

	// Draft metrics
	FieldChanged Counter
	DraftInvalid Counter
	DraftReset   Counter

	// Invoice metrics
	InvoiceAppended Counter
	InvoiceUpdated  Counter
	EditStarted     Counter
	InvoiceTotal    Histogram
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		FieldChanged: factory.Counter("invoicer.draft.field_changed"),
		DraftInvalid: factory.Counter("invoicer.draft.invalid"),
		DraftReset:   factory.Counter("invoicer.draft.reset"),

		InvoiceAppended: factory.Counter("invoicer.invoice.appended"),
		InvoiceUpdated:  factory.Counter("invoicer.invoice.updated"),
		EditStarted:     factory.Counter("invoicer.invoice.edit_started"),
		InvoiceTotal:    factory.Histogram("invoicer.invoice.total"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnFieldChanged implements plugin.OnFieldChanged.
func (m *MetricsExtension) OnFieldChanged(_ context.Context, _ lineitem.Field, d lineitem.Draft) error {
	m.FieldChanged.Inc()
	if !d.Valid() {
		m.DraftInvalid.Inc()
	}
	return nil
}

// OnDraftReset implements plugin.OnDraftReset.
func (m *MetricsExtension) OnDraftReset(_ context.Context) error {
	m.DraftReset.Inc()
	return nil
}

// OnInvoiceAppended implements plugin.OnInvoiceAppended.
func (m *MetricsExtension) OnInvoiceAppended(_ context.Context, rec *invoice.Record) error {
	m.InvoiceAppended.Inc()
	m.observeTotal(rec)
	return nil
}

// OnInvoiceUpdated implements plugin.OnInvoiceUpdated.
func (m *MetricsExtension) OnInvoiceUpdated(_ context.Context, rec *invoice.Record) error {
	m.InvoiceUpdated.Inc()
	m.observeTotal(rec)
	return nil
}

// OnEditStarted implements plugin.OnEditStarted.
func (m *MetricsExtension) OnEditStarted(_ context.Context, _ *invoice.Record) error {
	m.EditStarted.Inc()
	return nil
}

// observeTotal skips NaN and infinite totals, which histograms reject.
func (m *MetricsExtension) observeTotal(rec *invoice.Record) {
	if rec != nil && rec.Valid() {
		m.InvoiceTotal.Observe(rec.Total)
	}
}

// Package audithook bridges invoice session events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not import
// any audit backend directly. Callers inject a RecorderFunc adapter at
// wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/invoicer/invoice"
	"github.com/xraph/invoicer/lineitem"
	"github.com/xraph/invoicer/plugin"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin            = (*Extension)(nil)
	_ plugin.OnFieldChanged    = (*Extension)(nil)
	_ plugin.OnDraftReset      = (*Extension)(nil)
	_ plugin.OnInvoiceAppended = (*Extension)(nil)
	_ plugin.OnInvoiceUpdated  = (*Extension)(nil)
	_ plugin.OnEditStarted     = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges session events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Draft hooks
// ──────────────────────────────────────────────────

// OnFieldChanged implements plugin.OnFieldChanged. Edits that leave the
// draft holding NaN or infinity are recorded as warnings.
func (e *Extension) OnFieldChanged(ctx context.Context, f lineitem.Field, d lineitem.Draft) error {
	severity, outcome := SeverityInfo, OutcomeSuccess
	var err error
	if !d.Valid() {
		severity, outcome = SeverityWarning, OutcomeFailure
		err = fmt.Errorf("field %s produced a non-finite draft", f)
	}

	return e.record(ctx, ActionFieldChanged, severity, outcome,
		ResourceDraft, "", CategoryEntry, err,
		"field", string(f),
		"value", d.Get(f),
		"total", d.Total,
	)
}

// OnDraftReset implements plugin.OnDraftReset.
func (e *Extension) OnDraftReset(ctx context.Context) error {
	return e.record(ctx, ActionDraftReset, SeverityInfo, OutcomeSuccess,
		ResourceDraft, "", CategoryEntry, nil,
	)
}

// ──────────────────────────────────────────────────
// Invoice hooks
// ──────────────────────────────────────────────────

// OnInvoiceAppended implements plugin.OnInvoiceAppended.
func (e *Extension) OnInvoiceAppended(ctx context.Context, rec *invoice.Record) error {
	return e.record(ctx, ActionInvoiceAppended, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, rec.ID.String(), CategoryBilling, nil,
		"total", rec.Total,
	)
}

// OnInvoiceUpdated implements plugin.OnInvoiceUpdated.
func (e *Extension) OnInvoiceUpdated(ctx context.Context, rec *invoice.Record) error {
	return e.record(ctx, ActionInvoiceUpdated, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, rec.ID.String(), CategoryBilling, nil,
		"total", rec.Total,
	)
}

// OnEditStarted implements plugin.OnEditStarted.
func (e *Extension) OnEditStarted(ctx context.Context, rec *invoice.Record) error {
	return e.record(ctx, ActionEditStarted, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, rec.ID.String(), CategoryBilling, nil,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}

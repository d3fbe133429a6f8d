// Package plugin provides an extensible plugin system for invoicer sessions.
// Plugins hook into session events to extend functionality.
package plugin

import (
	"context"

	"github.com/xraph/invoicer/invoice"
	"github.com/xraph/invoicer/lineitem"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the session starts.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, session any) error
}

// OnShutdown is called when the session stops.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Draft hooks
// ──────────────────────────────────────────────────

// OnFieldChanged is called after a field edit has been reconciled.
type OnFieldChanged interface {
	Plugin
	OnFieldChanged(ctx context.Context, field lineitem.Field, draft lineitem.Draft) error
}

// OnDraftReset is called when the draft is cleared after submit or cancel.
type OnDraftReset interface {
	Plugin
	OnDraftReset(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Invoice hooks
// ──────────────────────────────────────────────────

// OnInvoiceAppended is called when a new record joins the ledger.
type OnInvoiceAppended interface {
	Plugin
	OnInvoiceAppended(ctx context.Context, rec *invoice.Record) error
}

// OnInvoiceUpdated is called when a record is overwritten in place.
type OnInvoiceUpdated interface {
	Plugin
	OnInvoiceUpdated(ctx context.Context, rec *invoice.Record) error
}

// OnEditStarted is called when a record is loaded into the draft.
type OnEditStarted interface {
	Plugin
	OnEditStarted(ctx context.Context, rec *invoice.Record) error
}

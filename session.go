package invoicer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xraph/invoicer/id"
	"github.com/xraph/invoicer/invoice"
	"github.com/xraph/invoicer/lineitem"
	"github.com/xraph/invoicer/plugin"
	"github.com/xraph/invoicer/store"
)

// Mode tells a front-end which heading to show above the form.
type Mode int

const (
	// ModeNew means submit appends a new record.
	ModeNew Mode = iota
	// ModeEdit means submit overwrites the record being edited.
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "Edit Invoice"
	}
	return "New Invoice"
}

// Session holds one user's live draft and the ledger it submits to.
//
// A Session is driven by a single event loop: each call runs to
// completion before the next one starts. It is not safe for concurrent
// use.
type Session struct {
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger

	draft     lineitem.Draft
	editingID id.InvoiceID
}

// New creates a Session over the given ledger store.
func New(s store.Store, opts ...Option) *Session {
	sess := &Session{
		store:   s,
		plugins: plugin.NewRegistry(),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(sess)
	}

	return sess
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
		s.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(s *Session) {
		_ = s.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// Start notifies plugins that the session is live.
func (s *Session) Start(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping store: %w", err)
	}

	s.plugins.EmitInit(ctx, s)

	s.logger.Info("invoice session started",
		"plugins", s.plugins.Count(),
	)
	return nil
}

// Stop notifies plugins and closes the store.
func (s *Session) Stop() error {
	s.plugins.EmitShutdown(context.Background())
	return s.store.Close()
}

// Plugins returns the session's plugin registry.
func (s *Session) Plugins() *plugin.Registry { return s.plugins }

// ──────────────────────────────────────────────────
// Draft
// ──────────────────────────────────────────────────

// Draft returns the current draft.
func (s *Session) Draft() lineitem.Draft { return s.draft }

// EditingID returns the ID of the record being edited, if any.
func (s *Session) EditingID() (id.InvoiceID, bool) {
	return s.editingID, !s.editingID.IsNil()
}

// Mode reports whether the next submit appends or updates.
func (s *Session) Mode() Mode {
	if s.editingID.IsNil() {
		return ModeNew
	}
	return ModeEdit
}

// OnFieldChange handles a raw change event from the form. The value is
// coerced, never rejected; only a field name the form does not have is
// an error, and then the draft is left as it was.
func (s *Session) OnFieldChange(ctx context.Context, name, raw string) (lineitem.Draft, error) {
	f, err := lineitem.ParseField(name)
	if err != nil {
		return s.draft, ValidationError{Field: name, Err: err}
	}
	return s.SetField(ctx, f, lineitem.Coerce(raw)), nil
}

// SetField applies an already numeric value to a field.
func (s *Session) SetField(ctx context.Context, f lineitem.Field, value float64) lineitem.Draft {
	s.draft = lineitem.Reconcile(s.draft, f, value)

	s.logger.Debug("draft field changed",
		"field", string(f),
		"value", value,
		"total", s.draft.Total,
	)
	s.plugins.EmitFieldChanged(ctx, f, s.draft)
	return s.draft
}

// ──────────────────────────────────────────────────
// Submit and edit
// ──────────────────────────────────────────────────

// OnSubmit commits the draft. While editing it overwrites the edited
// record in place, otherwise it appends a new one. Either way the draft
// is then cleared and editing ends.
//
// If the edited record no longer exists the update is dropped silently
// and OnSubmit returns a nil record and nil error. Any other store error
// is returned and the draft is kept so the user can retry.
func (s *Session) OnSubmit(ctx context.Context) (*invoice.Record, error) {
	var (
		rec *invoice.Record
		err error
	)

	if editing, ok := s.EditingID(); ok {
		rec, err = s.store.Update(ctx, editing, s.draft)
		switch {
		case IsNotFound(err):
			s.logger.Debug("edited invoice vanished, update dropped",
				"invoice_id", editing.String(),
			)
			rec, err = nil, nil
		case err != nil:
			return nil, fmt.Errorf("update invoice %s: %w", editing, err)
		default:
			s.logger.Info("invoice updated",
				"invoice_id", rec.ID.String(),
				"total", rec.Total,
			)
			s.plugins.EmitInvoiceUpdated(ctx, rec)
		}
	} else {
		rec, err = s.store.Append(ctx, s.draft)
		if err != nil {
			return nil, fmt.Errorf("append invoice: %w", err)
		}
		s.logger.Info("invoice appended",
			"invoice_id", rec.ID.String(),
			"total", rec.Total,
		)
		s.plugins.EmitInvoiceAppended(ctx, rec)
	}

	s.reset(ctx)
	return rec, nil
}

// OnStartEdit loads a record into the draft and marks it as being edited.
func (s *Session) OnStartEdit(ctx context.Context, rec *invoice.Record) {
	if rec == nil {
		return
	}

	s.draft = rec.Draft
	s.editingID = rec.ID

	s.logger.Debug("invoice edit started",
		"invoice_id", rec.ID.String(),
	)
	s.plugins.EmitEditStarted(ctx, rec)
}

// StartEditByID looks a record up in the ledger and starts editing it.
func (s *Session) StartEditByID(ctx context.Context, invID id.InvoiceID) (*invoice.Record, error) {
	rec, err := s.store.Get(ctx, invID)
	if err != nil {
		return nil, err
	}
	s.OnStartEdit(ctx, rec)
	return rec, nil
}

// CancelEdit abandons the draft and any edit in progress.
func (s *Session) CancelEdit(ctx context.Context) {
	s.reset(ctx)
}

func (s *Session) reset(ctx context.Context) {
	s.draft = lineitem.Draft{}
	s.editingID = id.Nil
	s.plugins.EmitDraftReset(ctx)
}

// ──────────────────────────────────────────────────
// Ledger
// ──────────────────────────────────────────────────

// List returns a snapshot of the ledger in display order.
func (s *Session) List(ctx context.Context) ([]*invoice.Record, error) {
	return s.store.List(ctx, invoice.ListOpts{})
}

// Health checks the underlying store.
func (s *Session) Health(ctx context.Context) error {
	if s.store == nil {
		return errors.New("invoicer: store not initialized")
	}
	return s.store.Ping(ctx)
}

package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/xraph/invoicer/invoice"
	"github.com/xraph/invoicer/lineitem"
)

// Registry manages registered plugins. Interface lists are cached at
// registration so dispatch does no type assertions.
//
// Hooks run inline on the caller's goroutine, in registration order.
// A failing or panicking plugin is logged and skipped.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	onInit            []OnInit
	onShutdown        []OnShutdown
	onFieldChanged    []OnFieldChanged
	onDraftReset      []OnDraftReset
	onInvoiceAppended []OnInvoiceAppended
	onInvoiceUpdated  []OnInvoiceUpdated
	onEditStarted     []OnEditStarted
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnFieldChanged); ok {
		r.onFieldChanged = append(r.onFieldChanged, v)
	}
	if v, ok := p.(OnDraftReset); ok {
		r.onDraftReset = append(r.onDraftReset, v)
	}
	if v, ok := p.(OnInvoiceAppended); ok {
		r.onInvoiceAppended = append(r.onInvoiceAppended, v)
	}
	if v, ok := p.(OnInvoiceUpdated); ok {
		r.onInvoiceUpdated = append(r.onInvoiceUpdated, v)
	}
	if v, ok := p.(OnEditStarted); ok {
		r.onEditStarted = append(r.onEditStarted, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", implementedInterfaces(p),
	)

	return nil
}

// implementedInterfaces returns the hook names a plugin implements.
func implementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	check := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	check(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	check(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	check(reflect.TypeOf((*OnFieldChanged)(nil)).Elem(), "OnFieldChanged")
	check(reflect.TypeOf((*OnDraftReset)(nil)).Elem(), "OnDraftReset")
	check(reflect.TypeOf((*OnInvoiceAppended)(nil)).Elem(), "OnInvoiceAppended")
	check(reflect.TypeOf((*OnInvoiceUpdated)(nil)).Elem(), "OnInvoiceUpdated")
	check(reflect.TypeOf((*OnEditStarted)(nil)).Elem(), "OnEditStarted")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, session any) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		r.call(p.Name(), "OnInit", func() error {
			return p.OnInit(ctx, session)
		})
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		r.call(p.Name(), "OnShutdown", func() error {
			return p.OnShutdown(ctx)
		})
	}
}

// EmitFieldChanged emits a reconciled field edit.
func (r *Registry) EmitFieldChanged(ctx context.Context, field lineitem.Field, draft lineitem.Draft) {
	r.mu.RLock()
	plugins := r.onFieldChanged
	r.mu.RUnlock()

	for _, p := range plugins {
		r.call(p.Name(), "OnFieldChanged", func() error {
			return p.OnFieldChanged(ctx, field, draft)
		})
	}
}

// EmitDraftReset emits a draft reset.
func (r *Registry) EmitDraftReset(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onDraftReset
	r.mu.RUnlock()

	for _, p := range plugins {
		r.call(p.Name(), "OnDraftReset", func() error {
			return p.OnDraftReset(ctx)
		})
	}
}

// EmitInvoiceAppended emits a new ledger record. Each plugin gets its own copy.
func (r *Registry) EmitInvoiceAppended(ctx context.Context, rec *invoice.Record) {
	r.mu.RLock()
	plugins := r.onInvoiceAppended
	r.mu.RUnlock()

	for _, p := range plugins {
		r.call(p.Name(), "OnInvoiceAppended", func() error {
			return p.OnInvoiceAppended(ctx, rec.Clone())
		})
	}
}

// EmitInvoiceUpdated emits an in-place record update.
func (r *Registry) EmitInvoiceUpdated(ctx context.Context, rec *invoice.Record) {
	r.mu.RLock()
	plugins := r.onInvoiceUpdated
	r.mu.RUnlock()

	for _, p := range plugins {
		r.call(p.Name(), "OnInvoiceUpdated", func() error {
			return p.OnInvoiceUpdated(ctx, rec.Clone())
		})
	}
}

// EmitEditStarted emits the start of an edit.
func (r *Registry) EmitEditStarted(ctx context.Context, rec *invoice.Record) {
	r.mu.RLock()
	plugins := r.onEditStarted
	r.mu.RUnlock()

	for _, p := range plugins {
		r.call(p.Name(), "OnEditStarted", func() error {
			return p.OnEditStarted(ctx, rec.Clone())
		})
	}
}

// call runs one hook and logs its failure.
func (r *Registry) call(pluginName, hook string, fn func() error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("plugin "+hook+" panicked",
				"plugin", pluginName,
				"panic", rec,
			)
		}
	}()

	if err := fn(); err != nil {
		r.logger.Warn("plugin "+hook+" failed",
			"plugin", pluginName,
			"error", err,
		)
	}
}

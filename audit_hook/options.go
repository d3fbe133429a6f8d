package audithook

import "log/slog"

// Option tunes an Extension at construction.
type Option func(*Extension)

// WithLogger routes recorder failures to logger instead of slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extension) { e.logger = logger }
}

// WithEnabledActions records only the named actions.
func WithEnabledActions(actions ...string) Option {
	return func(e *Extension) {
		e.enabled = actionSet(actions)
	}
}

// WithDisabledActions records every action except the named ones. It
// narrows an earlier WithEnabledActions when both are given.
func WithDisabledActions(actions ...string) Option {
	return func(e *Extension) {
		if e.enabled == nil {
			e.enabled = actionSet(allActions())
		}
		for _, a := range actions {
			delete(e.enabled, a)
		}
	}
}

func actionSet(actions []string) map[string]bool {
	set := make(map[string]bool, len(actions))
	for _, a := range actions {
		set[a] = true
	}
	return set
}

// allActions lists every action the extension can emit, draft events first.
func allActions() []string {
	return []string{
		ActionFieldChanged,
		ActionDraftReset,
		ActionInvoiceAppended,
		ActionInvoiceUpdated,
		ActionEditStarted,
	}
}

package audithook

// Action constants for audit events.
const (
	// Draft actions
	ActionFieldChanged = "draft.field_changed"
	ActionDraftReset   = "draft.reset"

	// Invoice actions
	ActionInvoiceAppended = "invoice.appended"
	ActionInvoiceUpdated  = "invoice.updated"
	ActionEditStarted     = "invoice.edit_started"
)

// Resource constants for audit events.
const (
	ResourceDraft   = "draft"
	ResourceInvoice = "invoice"
)

// Category constants for audit events.
const (
	CategoryEntry   = "entry"
	CategoryBilling = "billing"
)

// Severity levels for audit events.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

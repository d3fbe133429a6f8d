// Package invoicer provides the logic behind a line-item invoice form.
//
// Invoicer is a library, not a service. A front-end (web form, terminal
// UI, test script) owns a Session and feeds it raw input events; the
// Session keeps the draft consistent and commits it to an in-memory
// ledger. It provides:
//
//   - Coercion of raw field text to numbers
//   - Discount and tax reconciliation between percentages and amounts
//   - An ordered ledger with append and in-place update
//   - Pluggable hooks for metrics and audit trails
//
// # Quick Start
//
//	import (
//	    "github.com/xraph/invoicer"
//	    "github.com/xraph/invoicer/store/memory"
//	)
//
//	s := invoicer.New(memory.New())
//	if err := s.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Stop()
//
//	s.OnFieldChange(ctx, "qty", "2")
//	s.OnFieldChange(ctx, "price", "100")
//	s.OnFieldChange(ctx, "discountPercent", "10")
//	s.OnFieldChange(ctx, "taxPercent", "5")
//	rec, _ := s.OnSubmit(ctx) // rec.Total == 189
//
// # Reconciliation
//
// Each field edit re-derives the others:
//
//	subtotal        = qty * price
//	discount        = subtotal * discountPercent / 100  (unless discount was edited)
//	discountPercent = discount / subtotal * 100         (when discount was edited)
//	afterDiscount   = subtotal - discount
//	tax             = afterDiscount * taxPercent / 100  (unless tax was edited)
//	taxPercent      = tax / afterDiscount * 100         (when tax was edited)
//	total           = afterDiscount + tax
//
// Editing quantity or price re-derives both amounts from the current
// percentages, replacing amounts typed earlier.
//
// # Identifiers
//
// Records use TypeIDs with the "inv" prefix. The ledger takes an
// id.Generator so a front-end can choose time-sortable, random, snowflake
// or sequential IDs:
//
//	inv_01h455vb4pex5vsknk084sn02q
package invoicer

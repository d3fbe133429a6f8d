package invoicer_test

import (
	"context"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/xraph/invoicer"
	"github.com/xraph/invoicer/id"
	"github.com/xraph/invoicer/render"
	"github.com/xraph/invoicer/store/memory"
)

// TestDocumentationExamples verifies that the package documentation examples work.
func TestDocumentationExamples(t *testing.T) {
	// Quick Start from the package doc.
	t.Run("QuickStartExample", func(t *testing.T) {
		s := invoicer.New(memory.New(),
			invoicer.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))),
		)

		ctx := context.Background()
		if err := s.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer s.Stop()

		_, _ = s.OnFieldChange(ctx, "qty", "2")
		_, _ = s.OnFieldChange(ctx, "price", "100")
		_, _ = s.OnFieldChange(ctx, "discountPercent", "10")
		_, _ = s.OnFieldChange(ctx, "taxPercent", "5")

		rec, err := s.OnSubmit(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if rec.Total != 189 {
			t.Errorf("total: got %v, want 189", rec.Total)
		}
		if rec.ID.Prefix() != id.PrefixInvoice {
			t.Errorf("prefix: got %q", rec.ID.Prefix())
		}

		log.Printf("Invoice saved: %s total %s\n", rec.ID, render.FormatAmount(rec.Total))
	})

	// Reconciliation table from the package doc.
	t.Run("ReconciliationExample", func(t *testing.T) {
		d := invoicer.Reconcile(invoicer.Draft{}, invoicer.FieldQuantity, 2)
		d = invoicer.Reconcile(d, invoicer.FieldUnitPrice, 100)
		// discountPercent becomes 12.5, then tax becomes 17.5.
		d = invoicer.Reconcile(d, invoicer.FieldDiscountAmount, 25)
		d = invoicer.Reconcile(d, invoicer.FieldTaxPercent, 10)
		// A price edit re-derives both amounts from the percentages.
		d = invoicer.Reconcile(d, invoicer.FieldUnitPrice, 200)

		if d.DiscountPercent != 12.5 || d.DiscountAmount != 50 || d.TaxAmount != 35 || d.Total != 385 {
			t.Errorf("unexpected draft %+v", d)
		}
		if invoicer.Coerce("  ") != 0 {
			t.Error("blank input should coerce to zero")
		}
	})
}

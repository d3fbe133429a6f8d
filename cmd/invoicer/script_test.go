package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	invoicer "github.com/xraph/invoicer"
	"github.com/xraph/invoicer/id"
	"github.com/xraph/invoicer/store/memory"
)

func testSession(t *testing.T) *invoicer.Session {
	t.Helper()
	s := invoicer.New(
		memory.New(memory.WithIDGenerator(id.NewSequenceGenerator())),
		invoicer.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func TestRunScript(t *testing.T) {
	script := `
# first line item
qty=2
price=100
discountPercent=10
taxPercent=5
submit

edit 1
qty=3
submit
list
`
	s := testSession(t)
	var out bytes.Buffer
	if err := runScript(context.Background(), s, strings.NewReader(script), &out); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"total 189.00",
		"appended inv_00000000000000000000000001 total 189.00",
		"editing inv_00000000000000000000000001",
		"updated inv_00000000000000000000000001 total 283.50",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	records, _ := s.List(context.Background())
	if len(records) != 1 || records[0].Total != 283.5 {
		t.Errorf("unexpected ledger %+v", records)
	}
}

func TestRunScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"unknown field", "shipping=4\n", "line 1"},
		{"total not editable", "qty=1\ntotal=5\n", "line 2"},
		{"edit out of range", "edit 1\n", "out of range"},
		{"edit not a number", "edit one\n", "row number"},
		{"unknown command", "qty=1\nsave\n", `unknown command "save"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runScript(context.Background(), testSession(t), strings.NewReader(tt.script), io.Discard)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestRunScriptCancel(t *testing.T) {
	s := testSession(t)
	script := "qty=1\nsubmit\nedit 1\nqty=9\ncancel\n"
	if err := runScript(context.Background(), s, strings.NewReader(script), io.Discard); err != nil {
		t.Fatal(err)
	}
	if s.Mode() != invoicer.ModeNew || !s.Draft().IsZero() {
		t.Error("cancel did not reset the session")
	}
	records, _ := s.List(context.Background())
	if records[0].Quantity != 1 {
		t.Errorf("cancelled edit reached the ledger: %+v", records[0].Draft)
	}
}

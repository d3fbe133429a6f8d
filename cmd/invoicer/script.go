package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	invoicer "github.com/xraph/invoicer"
	"github.com/xraph/invoicer/render"
)

func scriptAction(c *cli.Context) (err error) {
	rt, err := newRuntime(c, c.App.ErrWriter)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.close(c); err == nil {
			err = cerr
		}
	}()

	if err := runScript(c.Context, rt.session, c.App.Reader, c.App.Writer); err != nil {
		return err
	}

	records, err := rt.session.List(c.Context)
	if err != nil {
		return err
	}
	return render.WriteTable(c.App.Writer, records)
}

// runScript drives a session from line-oriented commands:
//
//	qty=2          change a field (any form field name)
//	submit         append or update
//	edit 1         start editing the first ledger row
//	cancel         drop the draft and any edit
//	list           print the ledger
//
// Blank lines and lines starting with # are ignored.
func runScript(ctx context.Context, s *invoicer.Session, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := runLine(ctx, s, line, w); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return sc.Err()
}

func runLine(ctx context.Context, s *invoicer.Session, line string, w io.Writer) error {
	if name, raw, ok := strings.Cut(line, "="); ok {
		d, err := s.OnFieldChange(ctx, strings.TrimSpace(name), raw)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "total %s\n", render.FormatAmount(d.Total))
		return err
	}

	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case "submit":
		mode := s.Mode()
		rec, err := s.OnSubmit(ctx)
		if err != nil {
			return err
		}
		if rec == nil {
			_, err = fmt.Fprintln(w, "edited invoice no longer exists")
			return err
		}
		verb := "appended"
		if mode == invoicer.ModeEdit {
			verb = "updated"
		}
		_, err = fmt.Fprintf(w, "%s %s total %s\n", verb, rec.ID, render.FormatAmount(rec.Total))
		return err

	case "edit":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return fmt.Errorf("edit: row number: %w", err)
		}
		records, err := s.List(ctx)
		if err != nil {
			return err
		}
		if n < 1 || n > len(records) {
			return fmt.Errorf("edit: row %d out of range (ledger has %d)", n, len(records))
		}
		s.OnStartEdit(ctx, records[n-1])
		_, err = fmt.Fprintf(w, "editing %s\n", records[n-1].ID)
		return err

	case "cancel":
		s.CancelEdit(ctx)
		return nil

	case "list":
		records, err := s.List(ctx)
		if err != nil {
			return err
		}
		return render.WriteTable(w, records)

	default:
		return errors.New("unknown command " + strconv.Quote(cmd))
	}
}

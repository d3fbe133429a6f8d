// Command invoicer is a terminal front-end for the invoice line item form.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	invoicer "github.com/xraph/invoicer"
	audithook "github.com/xraph/invoicer/audit_hook"
	"github.com/xraph/invoicer/extension"
	"github.com/xraph/invoicer/render"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "invoicer:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "invoicer",
		Usage: "enter invoice line items with live discount and tax reconciliation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file",
				EnvVars: []string{"INVOICER_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "id-generator",
				Usage: "invoice ID scheme: typeid, uuid, sequence or snowflake",
			},
			&cli.Int64Flag{
				Name:  "snowflake-node",
				Usage: "node number for the snowflake ID generator",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:  "export-pdf",
				Usage: "write the ledger to this PDF file on exit",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "form",
				Usage:  "interactive form (default)",
				Action: formAction,
			},
			{
				Name:      "script",
				Usage:     "read field=value, submit, edit N, cancel and list lines from stdin",
				ArgsUsage: " ",
				Action:    scriptAction,
			},
		},
		Action: formAction,
	}
}

// runtime is what every command needs: the resolved config and a live session.
type runtime struct {
	cfg     extension.Config
	logger  *slog.Logger
	session *invoicer.Session
}

func newRuntime(c *cli.Context, logOut io.Writer) (*runtime, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	s, err := extension.NewStore(cfg)
	if err != nil {
		return nil, err
	}

	audit := audithook.New(audithook.RecorderFunc(func(_ context.Context, e *audithook.AuditEvent) error {
		logger.Debug("audit",
			"action", e.Action,
			"resource_id", e.ResourceID,
			"outcome", e.Outcome,
		)
		return nil
	}), audithook.WithLogger(logger))

	sess := invoicer.New(s,
		invoicer.WithLogger(logger),
		invoicer.WithPlugin(audit),
	)
	if err := sess.Start(c.Context); err != nil {
		return nil, err
	}

	return &runtime{cfg: cfg, logger: logger, session: sess}, nil
}

// loadConfig reads --config if given, then lets explicit flags override it.
func loadConfig(c *cli.Context) (extension.Config, error) {
	cfg := extension.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := extension.LoadFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("id-generator") {
		cfg.IDGenerator = c.String("id-generator")
	}
	if c.IsSet("snowflake-node") {
		cfg.SnowflakeNode = c.Int64("snowflake-node")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, nil
}

// close exports the ledger if asked to and stops the session.
func (rt *runtime) close(c *cli.Context) error {
	defer func() {
		if err := rt.session.Stop(); err != nil {
			rt.logger.Warn("stop session", "error", err)
		}
	}()

	path := c.String("export-pdf")
	if path == "" {
		return nil
	}

	records, err := rt.session.List(c.Context)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := render.WritePDF(f, rt.cfg.PDFTitle, records); err != nil {
		return err
	}
	rt.logger.Info("ledger exported", "path", path, "invoices", len(records))
	return nil
}

// Package extension provides the Forge extension adapter for invoicer.
//
// It implements the forge.Extension interface to integrate an invoice
// session into a Forge application with DI registration and lifecycle
// management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.invoicer" or "invoicer" keys.
package extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	invoicer "github.com/xraph/invoicer"
	"github.com/xraph/invoicer/id"
	"github.com/xraph/invoicer/store"
	"github.com/xraph/invoicer/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "invoicer"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Invoice line item form engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts an invoicer.Session as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config      Config
	session     *invoicer.Session
	store       store.Store
	sessionOpts []invoicer.Option
}

// New creates a new invoicer Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Session returns the underlying session.
// This is nil until Register is called.
func (e *Extension) Session() *invoicer.Session { return e.session }

// Register implements [forge.Extension]. It loads configuration,
// builds the session, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		s, err := NewStore(e.config)
		if err != nil {
			return err
		}
		e.store = s
	}

	e.session = invoicer.New(e.store, e.sessionOpts...)

	return vessel.Provide(fapp.Container(), func() (*invoicer.Session, error) {
		return e.session, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.session == nil {
		return errors.New("invoicer: extension not initialized")
	}

	if err := e.session.Start(ctx); err != nil {
		return err
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.session != nil {
		if err := e.session.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("invoicer: store not initialized")
	}
	return e.store.Ping(ctx)
}

// NewStore builds the in-memory ledger with the ID generator named in cfg.
func NewStore(cfg Config) (store.Store, error) {
	gen, err := id.NewGenerator(cfg.IDGenerator, cfg.SnowflakeNode)
	if err != nil {
		return nil, fmt.Errorf("invoicer: %w", err)
	}
	return memory.New(memory.WithIDGenerator(gen)), nil
}

// --- Config Loading ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("invoicer: configuration is required but not found in config files; " +
				"ensure 'extensions.invoicer' or 'invoicer' key exists in your config")
		}

		e.config = mergeWithDefaults(programmaticConfig)
	} else {
		e.config = mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("invoicer: configuration loaded",
		forge.F("id_generator", e.config.IDGenerator),
		forge.F("snowflake_node", e.config.SnowflakeNode),
		forge.F("log_level", e.config.LogLevel),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()

	for _, key := range []string{"extensions.invoicer", "invoicer"} {
		if !cm.IsSet(key) {
			continue
		}
		var cfg Config
		if err := cm.Bind(key, &cfg); err == nil {
			e.Logger().Debug("invoicer: loaded config from file",
				forge.F("key", key),
			)
			return cfg, true
		}
		e.Logger().Warn("invoicer: failed to bind config",
			forge.F("key", key),
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

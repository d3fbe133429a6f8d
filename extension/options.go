package extension

import (
	invoicer "github.com/xraph/invoicer"
	"github.com/xraph/invoicer/plugin"
	"github.com/xraph/invoicer/store"
)

// Option configures the invoicer Forge extension.
type Option func(*Extension)

// WithStore sets the ledger store. The configured ID generator is
// ignored when a store is supplied.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithSessionOption passes an invoicer.Option through to the session.
func WithSessionOption(opt invoicer.Option) Option {
	return func(e *Extension) {
		e.sessionOpts = append(e.sessionOpts, opt)
	}
}

// WithPlugin registers a session plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.sessionOpts = append(e.sessionOpts, invoicer.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithIDGenerator selects the invoice ID scheme by name.
func WithIDGenerator(name string) Option {
	return func(e *Extension) { e.config.IDGenerator = name }
}

// WithSnowflakeNode sets the node number for the snowflake generator.
func WithSnowflakeNode(node int64) Option {
	return func(e *Extension) { e.config.SnowflakeNode = node }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}

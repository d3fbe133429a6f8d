package extension

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invoicer.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Config
	}{
		{
			name: "namespaced",
			body: "extensions:\n  invoicer:\n    id_generator: sequence\n    log_level: debug\n",
			want: Config{IDGenerator: "sequence", LogLevel: "debug", PDFTitle: "Invoices"},
		},
		{
			name: "bare key",
			body: "invoicer:\n  id_generator: snowflake\n  snowflake_node: 7\n  pdf_title: Q3\n",
			want: Config{IDGenerator: "snowflake", SnowflakeNode: 7, LogLevel: "info", PDFTitle: "Q3"},
		},
		{
			name: "namespaced wins",
			body: "invoicer:\n  id_generator: uuid\nextensions:\n  invoicer:\n    id_generator: sequence\n",
			want: Config{IDGenerator: "sequence", LogLevel: "info", PDFTitle: "Invoices"},
		},
		{
			name: "empty",
			body: "other: true\n",
			want: DefaultConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadFile(writeConfig(t, tt.body))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadFile(writeConfig(t, "invoicer: [unclosed\n")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestMergeConfigurations(t *testing.T) {
	got := mergeConfigurations(
		Config{IDGenerator: "uuid"},
		Config{IDGenerator: "sequence", SnowflakeNode: 3, LogLevel: "warn"},
	)
	want := Config{IDGenerator: "uuid", SnowflakeNode: 3, LogLevel: "warn", PDFTitle: "Invoices"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNewStore(t *testing.T) {
	s, err := NewStore(Config{IDGenerator: "sequence"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Ping(t.Context()); err != nil {
		t.Errorf("ping: %v", err)
	}

	if _, err := NewStore(Config{IDGenerator: "ulid"}); err == nil {
		t.Error("expected error for unknown generator")
	}
}

func TestOptions(t *testing.T) {
	e := &Extension{}
	for _, opt := range []Option{
		WithIDGenerator("snowflake"),
		WithSnowflakeNode(12),
		WithRequireConfig(true),
	} {
		opt(e)
	}
	if e.config.IDGenerator != "snowflake" || e.config.SnowflakeNode != 12 || !e.config.RequireConfig {
		t.Errorf("unexpected config %+v", e.config)
	}
}

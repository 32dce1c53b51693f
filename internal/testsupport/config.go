package testsupport

import (
	"path/filepath"
	"testing"

	"snail/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options. Directories
// are not created; call EnsureDirectories when a test needs them.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ListsDir = filepath.Join(base, "lists")
	cfgVal.Paths.DecksDir = filepath.Join(base, "build")
	cfgVal.Paths.MediaDir = filepath.Join(base, "media")
	cfgVal.Paths.DumpDir = filepath.Join(base, "dump")
	cfgVal.Paths.FrequencyDir = filepath.Join(base, "frequency")
	cfgVal.Paths.BasicsPath = filepath.Join(base, "basics.yaml")
	cfgVal.Paths.TemplatePath = filepath.Join(base, "templates", "refinement_prompt.md")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithChunkSize overrides the shard size on the test config.
func WithChunkSize(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Deck.ChunkSize = n
	}
}

// WithNativeLanguage overrides the native language on the test config.
func WithNativeLanguage(code string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Deck.NativeLanguage = code
	}
}

// WithDirectories creates the lists, decks and media directories.
func WithDirectories() ConfigOption {
	return func(b *configBuilder) {
		if err := b.cfg.EnsureDirectories(); err != nil {
			b.t.Fatalf("ensure directories: %v", err)
		}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.ListsDir)
}

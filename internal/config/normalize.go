package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDeck()
	c.normalizeLogging()
	return nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		env    string
		target *string
	}{
		{"SNAIL_LISTS_DIR", &c.Paths.ListsDir},
		{"SNAIL_DECKS_DIR", &c.Paths.DecksDir},
		{"SNAIL_MEDIA_DIR", &c.Paths.MediaDir},
		{"SNAIL_NATIVE_LANGUAGE", &c.Deck.NativeLanguage},
		{"SNAIL_LOG_LEVEL", &c.Logging.Level},
	}
	for _, o := range overrides {
		if value, ok := os.LookupEnv(o.env); ok && strings.TrimSpace(value) != "" {
			*o.target = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		name     string
		target   *string
		fallback string
	}{
		{"paths.lists_dir", &c.Paths.ListsDir, defaultListsDir},
		{"paths.decks_dir", &c.Paths.DecksDir, defaultDecksDir},
		{"paths.media_dir", &c.Paths.MediaDir, defaultMediaDir},
		{"paths.dump_dir", &c.Paths.DumpDir, defaultDumpDir},
		{"paths.frequency_dir", &c.Paths.FrequencyDir, defaultFrequencyDir},
		{"paths.basics_path", &c.Paths.BasicsPath, defaultBasicsPath},
		{"paths.template_path", &c.Paths.TemplatePath, defaultTemplatePath},
		{"paths.locales_dir", &c.Paths.LocalesDir, ""},
	}
	for _, f := range fields {
		value := strings.TrimSpace(*f.target)
		if value == "" {
			value = f.fallback
		}
		expanded, err := expandPath(value)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		*f.target = expanded
	}
	if c.Logging.File != "" {
		expanded, err := expandPath(strings.TrimSpace(c.Logging.File))
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}

func (c *Config) normalizeDeck() {
	c.Deck.NativeLanguage = strings.ToLower(strings.TrimSpace(c.Deck.NativeLanguage))
	if c.Deck.NativeLanguage == "" {
		c.Deck.NativeLanguage = defaultNativeLanguage
	}
	c.Deck.AudioExt = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Deck.AudioExt)), ".")
	if c.Deck.AudioExt == "" {
		c.Deck.AudioExt = defaultAudioExt
	}
	c.Deck.ImageExt = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Deck.ImageExt)), ".")
	if c.Deck.ImageExt == "" {
		c.Deck.ImageExt = defaultImageExt
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "console", "json":
	default:
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

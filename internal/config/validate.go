package config

import (
	"errors"
	"fmt"

	"snail/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDeck(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDeck() error {
	if c.Deck.ChunkSize < 1 {
		return errors.New("deck.chunk_size must be at least 1")
	}
	if c.Deck.FrequencyListLength < 0 {
		return errors.New("deck.frequency_list_length must not be negative")
	}
	if _, err := language.Parse(c.Deck.NativeLanguage); err != nil {
		return fmt.Errorf("deck.native_language: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

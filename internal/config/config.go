package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"snail/internal/language"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the directory layout of a vocabulary workspace.
type Paths struct {
	ListsDir     string `toml:"lists_dir"`
	DecksDir     string `toml:"decks_dir"`
	MediaDir     string `toml:"media_dir"`
	DumpDir      string `toml:"dump_dir"`
	FrequencyDir string `toml:"frequency_dir"` // {code}.txt word frequency lists
	BasicsPath   string `toml:"basics_path"`
	TemplatePath string `toml:"template_path"`
	LocalesDir   string `toml:"locales_dir"` // optional; overrides the built-in catalog
}

// Deck contains list and deck building settings.
type Deck struct {
	NativeLanguage      string `toml:"native_language"`
	ChunkSize           int    `toml:"chunk_size"`
	AudioExt            string `toml:"audio_ext"`
	ImageExt            string `toml:"image_ext"`
	FrequencyListLength int    `toml:"frequency_list_length"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for snail.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Deck    Deck    `toml:"deck"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/snail/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded. The boolean reports whether a file was
// found; without one the defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	if err := loadDotEnv(".env"); err != nil {
		return nil, "", false, err
	}

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// loadDotEnv reads KEY=VALUE pairs into the process environment without
// overriding variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("snail.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories commands write into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ListsDir, c.Paths.DecksDir, c.Paths.MediaDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// NativeLanguage returns the configured native language code.
func (c *Config) NativeLanguage() language.Code {
	return language.Code(c.Deck.NativeLanguage)
}

// ListDir returns the shard directory of a language's word list.
func (c *Config) ListDir(code language.Code) string {
	return filepath.Join(c.Paths.ListsDir, string(code))
}

// DumpListDir returns the dump directory of a language's word list.
func (c *Config) DumpListDir(code language.Code) string {
	return filepath.Join(c.Paths.DumpDir, string(code))
}

// AudioDir returns the directory holding pronunciation audio for a language.
func (c *Config) AudioDir(code language.Code) string {
	return filepath.Join(c.Paths.MediaDir, "audio", string(code))
}

// ImagesDir returns the directory holding concept images shared by all languages.
func (c *Config) ImagesDir() string {
	return filepath.Join(c.Paths.MediaDir, "images")
}

// FrequencyListPath returns the frequency list file of a language.
func (c *Config) FrequencyListPath(code language.Code) string {
	return filepath.Join(c.Paths.FrequencyDir, code.Info().FrequencyCode+".txt")
}

// DeckDir returns the build directory for a target language's deck.
func (c *Config) DeckDir(code language.Code) string {
	return filepath.Join(c.Paths.DecksDir, string(code))
}

// DeckIndexPath returns the location of the deck index file.
func (c *Config) DeckIndexPath() string {
	return filepath.Join(c.Paths.DecksDir, "index.json")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

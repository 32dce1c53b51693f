package localize

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLocale is the last locale consulted before a placeholder is used.
const DefaultLocale = "en"

//go:embed locales/*.yaml
var builtin embed.FS

// Localizer resolves a label for a category and key in a locale.
type Localizer interface {
	Lookup(category, key, locale string) string
}

// Catalog is a Localizer backed by per-locale string tables.
type Catalog struct {
	tables map[string]map[string]string
}

// Placeholder is the value returned when no locale provides a label.
func Placeholder(category, key string) string {
	return category + "." + key
}

// New returns a catalog holding the built-in tables merged with any
// {locale}.yaml files found in overrideDir. An empty overrideDir skips the
// override step; a missing one is an error.
func New(overrideDir string) (*Catalog, error) {
	c := &Catalog{tables: make(map[string]map[string]string)}
	if err := c.loadFS(builtin, "locales"); err != nil {
		return nil, fmt.Errorf("load built-in locales: %w", err)
	}
	if strings.TrimSpace(overrideDir) == "" {
		return c, nil
	}
	info, err := os.Stat(overrideDir)
	if err != nil {
		return nil, fmt.Errorf("stat locales dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("locales path %s is not a directory", overrideDir)
	}
	if err := c.loadFS(os.DirFS(overrideDir), "."); err != nil {
		return nil, fmt.Errorf("load locales from %s: %w", overrideDir, err)
	}
	return c, nil
}

// Builtin returns the catalog of embedded tables only.
func Builtin() *Catalog {
	c, err := New("")
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) loadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}
		locale := normalizeLocale(strings.TrimSuffix(entry.Name(), ".yaml"))
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		if err := c.Add(locale, data); err != nil {
			return fmt.Errorf("%s: %w", entry.Name(), err)
		}
	}
	return nil
}

// Add merges a YAML document of nested mappings into the table of locale.
// Keys already present are overwritten.
func (c *Catalog) Add(locale string, data []byte) error {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if root == nil {
		return errors.New("empty locale document")
	}
	locale = normalizeLocale(locale)
	table := c.tables[locale]
	if table == nil {
		table = make(map[string]string)
		c.tables[locale] = table
	}
	flatten("", root, table)
	return nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		switch value := v.(type) {
		case map[string]any:
			flatten(name, value, out)
		case nil:
		case string:
			out[name] = value
		default:
			out[name] = fmt.Sprint(value)
		}
	}
}

// Lookup implements Localizer.
func (c *Catalog) Lookup(category, key, locale string) string {
	id := Placeholder(category, key)
	for _, candidate := range fallbackChain(locale) {
		if value, ok := c.tables[candidate][id]; ok {
			return value
		}
	}
	return id
}

// has reports whether locale itself defines category.key, without fallback.
func (c *Catalog) has(category, key, locale string) bool {
	_, ok := c.tables[normalizeLocale(locale)][Placeholder(category, key)]
	return ok
}

// locales returns the loaded locale names in sorted order.
func (c *Catalog) locales() []string {
	out := make([]string, 0, len(c.tables))
	for locale := range c.tables {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

func fallbackChain(locale string) []string {
	locale = normalizeLocale(locale)
	chain := make([]string, 0, 3)
	if locale != "" {
		chain = append(chain, locale)
		if base, _, found := strings.Cut(locale, "-"); found && base != "" {
			chain = append(chain, base)
		}
	}
	if locale != DefaultLocale {
		chain = append(chain, DefaultLocale)
	}
	return chain
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}

package authoring

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"snail/internal/language"
)

//go:embed templates/refinement_prompt.md
var defaultPromptTemplate string

// DefaultPromptTemplate returns the built-in refinement prompt template.
func DefaultPromptTemplate() string {
	return defaultPromptTemplate
}

// LoadPromptTemplate reads the template at path, falling back to the
// built-in template when the file does not exist.
func LoadPromptTemplate(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return defaultPromptTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultPromptTemplate, nil
		}
		return "", fmt.Errorf("read prompt template: %w", err)
	}
	return string(data), nil
}

// RefinementPrompt substitutes $language_code, $language_name,
// $word_list_location and $supported_languages (or their ${name} forms) in
// tmpl. "$$" yields a literal dollar sign. Unknown variables are an error.
func RefinementPrompt(tmpl string, lang language.Code, listDir string) (string, error) {
	supported := language.Supported()
	quoted := make([]string, 0, len(supported))
	for _, code := range supported {
		quoted = append(quoted, "`"+string(code)+"`")
	}
	vars := map[string]string{
		"language_code":       string(lang),
		"language_name":       language.DisplayName(lang),
		"word_list_location":  listDir,
		"supported_languages": strings.Join(quoted, ", "),
		"$":                   "$",
	}

	unknown := map[string]struct{}{}
	out := os.Expand(tmpl, func(name string) string {
		if v, ok := vars[name]; ok {
			return v
		}
		unknown[name] = struct{}{}
		return ""
	})
	if len(unknown) > 0 {
		names := make([]string, 0, len(unknown))
		for name := range unknown {
			names = append(names, "$"+name)
		}
		sort.Strings(names)
		return "", fmt.Errorf("prompt template references unknown variables: %s", strings.Join(names, ", "))
	}
	return out, nil
}

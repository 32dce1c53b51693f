package preflight

import (
	"snail/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}

// RunAll executes every preflight check applicable to cfg.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Lists directory", cfg.Paths.ListsDir),
		CheckDirectoryAccess("Decks directory", cfg.Paths.DecksDir),
		CheckDirectoryAccess("Media directory", cfg.Paths.MediaDir),
		CheckFileReadable("Basics list", cfg.Paths.BasicsPath),
		CheckOptionalDirectory("Frequency lists", cfg.Paths.FrequencyDir, "create-list needs <code>.txt files here"),
		CheckOptionalFile("Prompt template", cfg.Paths.TemplatePath, "using built-in template"),
	}

	if cfg.Paths.LocalesDir != "" {
		results = append(results, CheckDirectoryAccess("Locales directory", cfg.Paths.LocalesDir))
	}

	return results
}

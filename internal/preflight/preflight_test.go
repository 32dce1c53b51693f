package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"snail/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFileReadable(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "basics.yaml")
	if err := os.WriteFile(f, []byte("- en: yes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if r := CheckFileReadable("basics", f); !r.Passed {
		t.Fatalf("expected pass, got: %s", r.Detail)
	}
	if r := CheckFileReadable("basics", dir); r.Passed {
		t.Fatal("expected failure for directory")
	}
	if r := CheckFileReadable("basics", filepath.Join(dir, "absent")); r.Passed {
		t.Fatal("expected failure for missing file")
	}
}

func TestOptionalChecksPassWhenAbsent(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")
	if r := CheckOptionalFile("template", missing, "using built-in template"); !r.Passed || !strings.Contains(r.Detail, "built-in") {
		t.Fatalf("expected optional file to pass with note, got %+v", r)
	}
	if r := CheckOptionalDirectory("frequency", missing, "needed later"); !r.Passed {
		t.Fatalf("expected optional dir to pass, got %+v", r)
	}
}

func TestRunAll(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ListsDir = filepath.Join(root, "lists")
	cfg.Paths.DecksDir = filepath.Join(root, "build")
	cfg.Paths.MediaDir = filepath.Join(root, "media")
	cfg.Paths.BasicsPath = filepath.Join(root, "basics.yaml")
	cfg.Paths.FrequencyDir = filepath.Join(root, "frequency")
	cfg.Paths.TemplatePath = filepath.Join(root, "prompt.md")

	results := RunAll(&cfg)
	if !Failed(results) {
		t.Fatal("expected failures before directories exist")
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if err := os.WriteFile(cfg.Paths.BasicsPath, []byte("[]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	results = RunAll(&cfg)
	if Failed(results) {
		t.Fatalf("expected all checks to pass, got %+v", results)
	}
	if len(results) != 6 {
		t.Fatalf("expected 6 results without locales dir, got %d", len(results))
	}

	cfg.Paths.LocalesDir = filepath.Join(root, "locales")
	if results := RunAll(&cfg); len(results) != 7 || !Failed(results) {
		t.Fatalf("expected failing locales check, got %+v", results)
	}

	if RunAll(nil) != nil {
		t.Fatal("expected nil results for nil config")
	}
}

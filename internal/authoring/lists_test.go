package authoring

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"snail/internal/schema"
	"snail/internal/word"
)

func TestCreateList(t *testing.T) {
	basics := []word.Record{
		{"en": "yes", "de": "ja", "fr": "oui"},
		{"en": "no", "de": "nein"},
		{"en": "hello"},
	}
	frequency := []string{"der", "ja", "und", "der"}

	got := CreateList(basics, frequency, "de")
	want := []word.Record{
		{"en": "yes", "de": "ja"},
		{"en": "no", "de": "nein"},
		{"de": "der"},
		{"de": "und"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("CreateList mismatch (-want +got):\n%s", diff)
	}
}

func TestFinalize(t *testing.T) {
	records := []word.Record{
		{"key": "old", "en": "cat", "fr": "chat"},
		{"fr": "le"},
		{"en": "kitty", "fr": "chat"},
		{"en": "dog", "fr": "chien"},
		{"en": "bird", "fr": "oiseau"},
	}
	n := 0
	newKey := func() string {
		n++
		return fmt.Sprintf("key-%d", n)
	}

	got := Finalize(records, "fr", 3, newKey)
	want := []word.Record{
		{"key": "key-1", "en": "cat", "fr": "chat"},
		{"fr": "le"},
		{"key": "key-3", "en": "dog", "fr": "chien"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Finalize mismatch (-want +got):\n%s", diff)
	}
	if records[0]["key"] != "old" {
		t.Fatal("Finalize modified its input")
	}

	if all := Finalize(records, "fr", 0, newKey); len(all) != 4 {
		t.Fatalf("expected no trim with trim=0, got %d records", len(all))
	}
}

func TestFilterByType(t *testing.T) {
	records := []word.Record{
		{"en": "run", "word_type": "verb"},
		{"en": "cat", "word_type": "noun"},
		{"en": "walk", "word_type": "verb"},
		{"en": "so"},
	}
	if got := FilterByType(records, word.TypeAll); len(got) != 4 {
		t.Fatalf("expected all records, got %d", len(got))
	}
	got := FilterByType(records, word.Verb)
	want := []word.Record{records[0], records[2]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("FilterByType mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceFromDump(t *testing.T) {
	list := []word.Record{
		{"key": "a", "en": "cat", "fr": "chat"},
		{"key": "b", "en": "dog", "fr": "chein"},
		{"key": "d", "en": "unmatched", "fr": "x"},
		{"key": "c", "en": "bird", "fr": "oiseau"},
	}
	dump := []word.Record{
		{"key": "b", "en": "dog", "fr": "chien", "word_type": "noun"},
		{"key": "z", "en": "zebra", "fr": "zèbre"},
		{"en": "no key"},
	}

	got, replaced, err := ReplaceFromDump(list, dump)
	if err != nil {
		t.Fatalf("ReplaceFromDump returned error: %v", err)
	}
	if replaced != 1 {
		t.Fatalf("replaced = %d, want 1", replaced)
	}
	want := []word.Record{list[0], dump[0], list[2], list[3]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ReplaceFromDump mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceFromDumpRejectsInvalidEdit(t *testing.T) {
	list := []word.Record{
		{"key": "a", "en": "cat", "fr": "chat"},
		{"key": "b", "en": "dog", "fr": "chien"},
	}
	dump := []word.Record{
		{"key": "b", "fr": "chien", "word_type": "animal"},
	}

	got, replaced, err := ReplaceFromDump(list, dump)
	if err == nil {
		t.Fatal("expected error for an edit that breaks the record schema")
	}
	var failure *schema.Failure
	if !errors.As(err, &failure) || failure.Index != 1 {
		t.Fatalf("expected schema failure at index 1, got %v", err)
	}
	if got != nil || replaced != 0 {
		t.Fatalf("expected no merged list on failure, got %d records, %d replaced", len(got), replaced)
	}
}

func TestReadFrequencyList(t *testing.T) {
	input := "# top words\nthe\n\n  of \nand\nto\n"
	got, err := ReadFrequencyList(strings.NewReader(input), 3)
	if err != nil {
		t.Fatalf("ReadFrequencyList returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"the", "of", "and"}, got); diff != "" {
		t.Fatalf("ReadFrequencyList mismatch (-want +got):\n%s", diff)
	}

	all, err := ReadFrequencyList(strings.NewReader(input), 0)
	if err != nil {
		t.Fatalf("ReadFrequencyList returned error: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 words without limit, got %v", all)
	}
}

func TestReadBasics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basics.yaml")
	content := "- en: yes\n  de: ja\n- en: one\n  de: eins\n  fr: 1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write basics: %v", err)
	}
	got, err := ReadBasics(path)
	if err != nil {
		t.Fatalf("ReadBasics returned error: %v", err)
	}
	want := []word.Record{
		{"en": "yes", "de": "ja"},
		{"en": "one", "de": "eins", "fr": "1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ReadBasics mismatch (-want +got):\n%s", diff)
	}

	if _, err := ReadBasics(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing basics file")
	}
}

func TestWriteExport(t *testing.T) {
	var buf bytes.Buffer
	records := []word.Record{{"en": "no", "key": "k"}}
	if err := WriteExport(&buf, records); err != nil {
		t.Fatalf("WriteExport returned error: %v", err)
	}
	var decoded []map[string]string
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if diff := cmp.Diff([]map[string]string{{"key": "k", "en": "no"}}, decoded); diff != "" {
		t.Fatalf("export mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(buf.String(), "- key: k\n") {
		t.Fatalf("expected key first, got %q", buf.String())
	}
}

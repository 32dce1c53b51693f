package authoring

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"snail/internal/dedup"
	"snail/internal/language"
	"snail/internal/schema"
	"snail/internal/word"
)

// CreateList seeds a list for lang. Basics contribute their pivot and lang
// text, frequency words contribute lang text only; the combined batch is
// deduplicated on the lang field so basics win over frequency entries.
func CreateList(basics []word.Record, frequency []string, lang language.Code) []word.Record {
	field := string(lang)
	combined := make([]word.Record, 0, len(basics)+len(frequency))
	for _, b := range basics {
		record := word.Record{}
		if v := b.Text(language.Pivot); v != "" {
			record[string(language.Pivot)] = v
		}
		if v := b.Get(field); v != "" {
			record[field] = v
		}
		combined = append(combined, record)
	}
	for _, w := range frequency {
		combined = append(combined, word.Record{field: w})
	}
	return dedup.ByField(combined, field)
}

// Finalize assigns a new key from newKey to every record carrying pivot
// text, deduplicates on lang, and keeps the first trim records when trim > 0.
// The input records are not modified.
func Finalize(records []word.Record, lang language.Code, trim int, newKey func() string) []word.Record {
	keyed := make([]word.Record, 0, len(records))
	for _, r := range records {
		r = r.Clone()
		if r.Has(string(language.Pivot)) {
			r[word.FieldKey] = newKey()
		}
		keyed = append(keyed, r)
	}
	out := dedup.ByField(keyed, string(lang))
	if trim > 0 && len(out) > trim {
		out = out[:trim]
	}
	return out
}

// FilterByType returns the records of type t; word.TypeAll keeps everything.
func FilterByType(records []word.Record, t word.Type) []word.Record {
	if t == word.TypeAll || t == "" {
		return records
	}
	out := make([]word.Record, 0, len(records))
	for _, r := range records {
		if r.Type() == t {
			out = append(out, r)
		}
	}
	return out
}

// ReplaceFromDump substitutes list records whose key matches a dump record
// and returns the merged list with the number of replacements. The merged
// list must still validate with keys required; otherwise nothing is returned.
func ReplaceFromDump(list, dump []word.Record) ([]word.Record, int, error) {
	byKey := make(map[string]word.Record, len(dump))
	for _, r := range dump {
		if k := r.Key(); k != "" {
			byKey[k] = r
		}
	}
	out := make([]word.Record, len(list))
	replaced := 0
	for i, r := range list {
		if k := r.Key(); k != "" {
			if edited, ok := byKey[k]; ok {
				out[i] = edited
				replaced++
				continue
			}
		}
		out[i] = r
	}
	if err := schema.ValidateRecords(out, schema.Options{KeyRequired: true}).Err(); err != nil {
		return nil, 0, fmt.Errorf("merged list: %w", err)
	}
	return out, replaced, nil
}

// ReadFrequencyList reads one word per line, skipping blank lines and lines
// starting with '#'. A positive limit caps the number of words.
func ReadFrequencyList(r io.Reader, limit int) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
		if limit > 0 && len(words) == limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read frequency list: %w", err)
	}
	return words, nil
}

// ReadBasics parses the curated basics file, a YAML list of mappings from
// language code to text.
func ReadBasics(path string) ([]word.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read basics: %w", err)
	}
	var entries []map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse basics %s: %w", path, err)
	}
	out := make([]word.Record, 0, len(entries))
	for _, e := range entries {
		out = append(out, word.Record(e))
	}
	return out, nil
}

// WriteExport writes records as a single YAML list.
func WriteExport(w io.Writer, records []word.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if records == nil {
		records = []word.Record{}
	}
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return enc.Close()
}

// Package dedup removes repeated records from an ordered batch.
package dedup

import "snail/internal/word"

// ByField keeps the first record for each distinct non-empty value of field,
// preserving input order. Records without a value for field are dropped.
func ByField(records []word.Record, field string) []word.Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]word.Record, 0, len(records))
	for _, record := range records {
		value := record.Get(field)
		if value == "" {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, record)
	}
	return out
}

// ByKey deduplicates on the record key.
func ByKey(records []word.Record) []word.Record {
	return ByField(records, word.FieldKey)
}

package dedup

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"snail/internal/word"
)

func TestByKeyKeepsFirstOccurrence(t *testing.T) {
	records := []word.Record{
		{"key": "cat", "en": "cat", "fr": "chat"},
		{"key": "dog", "en": "dog"},
		{"key": "cat", "en": "cat", "fr": "minou"},
	}

	got := ByKey(records)
	want := []word.Record{
		{"key": "cat", "en": "cat", "fr": "chat"},
		{"key": "dog", "en": "dog"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ByKey mismatch (-want +got):\n%s", diff)
	}
}

func TestByFieldDropsMissingSelector(t *testing.T) {
	records := []word.Record{
		{"en": "house", "de": "Haus"},
		{"en": "tree"},
		{"en": "garden", "de": ""},
		{"en": "home", "de": "Haus"},
		{"en": "car", "de": "Auto"},
	}

	got := ByField(records, "de")
	want := []word.Record{
		{"en": "house", "de": "Haus"},
		{"en": "car", "de": "Auto"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ByField mismatch (-want +got):\n%s", diff)
	}
	if dropped := len(records) - len(got); dropped != 3 {
		t.Fatalf("dropped %d records, want 3", dropped)
	}
}

func TestByFieldIdempotent(t *testing.T) {
	batches := [][]word.Record{
		nil,
		{{"key": "a"}, {"key": "b"}, {"key": "a"}, {"key": ""}, {"en": "x"}, {"key": "c"}, {"key": "b"}},
		{{"key": "only"}},
	}
	for i, records := range batches {
		once := ByKey(records)
		twice := ByKey(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("batch %d: dedup not idempotent (-once +twice):\n%s", i, diff)
		}
	}
}

func TestByFieldEmptyInput(t *testing.T) {
	got := ByKey(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

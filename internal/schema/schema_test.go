package schema_test

import (
	"errors"
	"strings"
	"testing"

	"snail/internal/schema"
	"snail/internal/word"
)

func verbRecord() word.Record {
	return word.Record{
		"key":                    "5b1c",
		"word_type":              "verb",
		"en":                     "to go",
		"de":                     "gehen",
		"first_person_singular":  "gehe",
		"first_person_plural":    "gehen",
		"second_person_singular": "gehst",
		"second_person_plural":   "geht",
		"third_person_singular":  "geht",
		"third_person_plural":    "gehen",
	}
}

func TestVerbMissingConjugationRejected(t *testing.T) {
	r := verbRecord()
	delete(r, "third_person_plural")

	res := schema.ValidateRecords([]word.Record{{"en": "cat", "key": "a"}, r}, schema.Options{KeyRequired: true})
	if res.OK() {
		t.Fatal("expected verb without third_person_plural to be rejected")
	}
	f := res.Failure
	if f.Index != 1 || f.Field != "third_person_plural" || f.Rule != schema.RuleRequired {
		t.Fatalf("unexpected failure: %+v", f)
	}
	if !strings.Contains(f.Error(), "index 1") {
		t.Fatalf("error message should carry the index: %q", f.Error())
	}
}

func TestCompleteVerbAccepted(t *testing.T) {
	res := schema.ValidateRecords([]word.Record{verbRecord()}, schema.Options{KeyRequired: true})
	if !res.OK() {
		t.Fatalf("expected complete verb to validate, got %v", res.Err())
	}
	if res.Err() != nil {
		t.Fatal("Err must be nil on success")
	}
}

func TestNonVerbNeedsNoConjugations(t *testing.T) {
	r := word.Record{"en": "cat", "word_type": "noun", "gender": "feminine", "plural_form": "cats"}
	if res := schema.ValidateRecords([]word.Record{r}, schema.Options{}); !res.OK() {
		t.Fatalf("noun should validate without key when not required: %v", res.Err())
	}
}

func TestValidateRawItems(t *testing.T) {
	tests := []struct {
		name  string
		items []any
		opts  schema.Options
		field string
		rule  schema.Rule
		index int
	}{
		{
			name:  "not a mapping",
			items: []any{map[string]any{"en": "a"}, "just a string"},
			rule:  schema.RuleMapping,
			index: 1,
		},
		{
			name:  "non string value",
			items: []any{map[string]any{"en": 1000}},
			field: "en",
			rule:  schema.RuleString,
		},
		{
			name:  "null value",
			items: []any{map[string]any{"en": "a", "comment": nil}},
			field: "comment",
			rule:  schema.RuleString,
		},
		{
			name:  "unknown word type",
			items: []any{map[string]any{"en": "a", "word_type": "gerund"}},
			field: "word_type",
			rule:  schema.RuleEnum,
		},
		{
			name:  "unknown gender",
			items: []any{map[string]any{"en": "a", "gender": "common"}},
			field: "gender",
			rule:  schema.RuleEnum,
		},
		{
			name:  "unknown field",
			items: []any{map[string]any{"en": "a", "colour": "red"}},
			field: "colour",
			rule:  schema.RuleUnknownField,
		},
		{
			name:  "missing pivot text",
			items: []any{map[string]any{"de": "Katze"}},
			field: "en",
			rule:  schema.RuleRequired,
		},
		{
			name:  "missing key when required",
			items: []any{map[string]any{"en": "cat"}},
			opts:  schema.Options{KeyRequired: true},
			field: "key",
			rule:  schema.RuleRequired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := schema.Validate(tt.items, tt.opts)
			if res.OK() {
				t.Fatal("expected failure")
			}
			f := res.Failure
			if f.Rule != tt.rule || f.Field != tt.field || f.Index != tt.index {
				t.Fatalf("got %+v, want rule=%s field=%q index=%d", f, tt.rule, tt.field, tt.index)
			}
			var asFailure *schema.Failure
			if !errors.As(res.Err(), &asFailure) {
				t.Fatal("Err should unwrap to *schema.Failure")
			}
		})
	}
}

func TestEmptyValuesCountAsPresent(t *testing.T) {
	r := verbRecord()
	r["third_person_plural"] = ""
	if res := schema.ValidateRecords([]word.Record{r}, schema.Options{KeyRequired: true}); !res.OK() {
		t.Fatalf("present-but-empty field should satisfy required: %v", res.Err())
	}
}

func TestEmptyBatchIsValid(t *testing.T) {
	if res := schema.Validate(nil, schema.Options{KeyRequired: true}); !res.OK() {
		t.Fatal("empty batch should validate")
	}
}

func TestRequiredFields(t *testing.T) {
	got := schema.RequiredFields(word.Verb, schema.Options{KeyRequired: true})
	if len(got) != 8 || got[0] != "en" || got[1] != "key" {
		t.Fatalf("unexpected verb required fields: %v", got)
	}
	if got := schema.RequiredFields(word.Noun, schema.Options{}); len(got) != 1 {
		t.Fatalf("unexpected noun required fields: %v", got)
	}
}

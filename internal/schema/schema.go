package schema

import (
	"fmt"
	"sort"

	"snail/internal/language"
	"snail/internal/word"
)

// Rule names the check a record failed.
type Rule string

const (
	RuleMapping      Rule = "mapping"
	RuleUnknownField Rule = "unknown_field"
	RuleString       Rule = "string"
	RuleEnum         Rule = "enum"
	RuleRequired     Rule = "required"
)

// Options configures a validation pass.
type Options struct {
	// KeyRequired adds "key" to the base required fields. Lists that have not
	// been finalized yet are validated without it.
	KeyRequired bool
}

// Failure describes the first non-conforming record of a batch.
type Failure struct {
	Index  int
	Field  string
	Rule   Rule
	Reason string
}

func (f *Failure) Error() string {
	if f.Field == "" {
		return fmt.Sprintf("validation error at index %d: %s", f.Index, f.Reason)
	}
	return fmt.Sprintf("validation error at index %d (%s): %s", f.Index, f.Field, f.Reason)
}

// Result is the outcome of a validation pass. A nil Failure means success.
type Result struct {
	Failure *Failure
}

// OK reports whether the batch conforms.
func (r Result) OK() bool { return r.Failure == nil }

// Err returns the failure as an error, or nil on success.
func (r Result) Err() error {
	if r.Failure == nil {
		return nil
	}
	return r.Failure
}

// variantRequired holds the fields each word type adds on top of the base
// shape. Types without an entry add nothing.
var variantRequired = map[word.Type][]string{
	word.Verb: word.ConjugationFields,
}

// RequiredFields returns the fields a record of type t must carry.
func RequiredFields(t word.Type, opts Options) []string {
	var fields []string
	for _, code := range language.Supported() {
		fields = append(fields, string(code))
	}
	if opts.KeyRequired {
		fields = append(fields, word.FieldKey)
	}
	return append(fields, variantRequired[t]...)
}

// Validate checks raw decoded items, as produced by a YAML or JSON decoder.
func Validate(items []any, opts Options) Result {
	for i, item := range items {
		if f := validateItem(item, opts); f != nil {
			f.Index = i
			return Result{Failure: f}
		}
	}
	return Result{}
}

// ValidateRecords checks typed records. Values are strings by construction, so
// only field names, enums and required fields can fail.
func ValidateRecords(records []word.Record, opts Options) Result {
	for i, r := range records {
		fields := make(map[string]any, len(r))
		for k, v := range r {
			fields[k] = v
		}
		if f := validateFields(fields, opts); f != nil {
			f.Index = i
			return Result{Failure: f}
		}
	}
	return Result{}
}

func validateItem(item any, opts Options) *Failure {
	fields, ok := item.(map[string]any)
	if !ok {
		return &Failure{Rule: RuleMapping, Reason: fmt.Sprintf("%s is not of type 'object'", describe(item))}
	}
	return validateFields(fields, opts)
}

func validateFields(fields map[string]any, opts Options) *Failure {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !word.IsRecognizedField(name) {
			return &Failure{Field: name, Rule: RuleUnknownField, Reason: fmt.Sprintf("'%s' is not a recognized field", name)}
		}
		value, ok := fields[name].(string)
		if !ok {
			return &Failure{Field: name, Rule: RuleString, Reason: fmt.Sprintf("%s is not of type 'string'", describe(fields[name]))}
		}
		if f := checkEnum(name, value); f != nil {
			return f
		}
	}

	wordType, _ := fields[word.FieldWordType].(string)
	for _, name := range RequiredFields(word.Type(wordType), opts) {
		if _, ok := fields[name]; !ok {
			return &Failure{Field: name, Rule: RuleRequired, Reason: fmt.Sprintf("'%s' is a required property", name)}
		}
	}
	return nil
}

func checkEnum(name, value string) *Failure {
	switch name {
	case word.FieldWordType:
		if !word.Type(value).Valid() {
			return &Failure{Field: name, Rule: RuleEnum, Reason: fmt.Sprintf("'%s' is not one of %v", value, word.Types)}
		}
	case word.FieldGender:
		if !word.Gender(value).Valid() {
			return &Failure{Field: name, Rule: RuleEnum, Reason: fmt.Sprintf("'%s' is not one of %v", value, word.Genders)}
		}
	}
	return nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("'%s'", v)
	default:
		return fmt.Sprintf("%v (%T)", v, v)
	}
}

package word

import (
	"sort"

	"gopkg.in/yaml.v3"

	"snail/internal/language"
)

// Field names recognized on a record besides the per-language text fields.
const (
	FieldKey                  = "key"
	FieldWordType             = "word_type"
	FieldGender               = "gender"
	FieldPluralForm           = "plural_form"
	FieldPositive             = "positive"
	FieldComparative          = "comparative"
	FieldSuperlative          = "superlative"
	FieldFirstPersonSingular  = "first_person_singular"
	FieldFirstPersonPlural    = "first_person_plural"
	FieldSecondPersonSingular = "second_person_singular"
	FieldSecondPersonPlural   = "second_person_plural"
	FieldThirdPersonSingular  = "third_person_singular"
	FieldThirdPersonPlural    = "third_person_plural"
	FieldComment              = "comment"
)

// ConjugationFields lists the verb fields in display order.
var ConjugationFields = []string{
	FieldFirstPersonSingular,
	FieldFirstPersonPlural,
	FieldSecondPersonSingular,
	FieldSecondPersonPlural,
	FieldThirdPersonSingular,
	FieldThirdPersonPlural,
}

// attributeOrder is the order attributes are written in after the language fields.
var attributeOrder = []string{
	FieldGender,
	FieldPluralForm,
	FieldPositive,
	FieldComparative,
	FieldSuperlative,
	FieldFirstPersonSingular,
	FieldFirstPersonPlural,
	FieldSecondPersonSingular,
	FieldSecondPersonPlural,
	FieldThirdPersonSingular,
	FieldThirdPersonPlural,
	FieldComment,
}

var attributes = func() map[string]struct{} {
	set := map[string]struct{}{FieldKey: {}, FieldWordType: {}}
	for _, f := range attributeOrder {
		set[f] = struct{}{}
	}
	return set
}()

// IsRecognizedField reports whether name is an attribute or a language code.
func IsRecognizedField(name string) bool {
	if _, ok := attributes[name]; ok {
		return true
	}
	return language.IsKnown(name)
}

// Record is a single vocabulary entry keyed by field name. Presence of a field
// is presence of the map key; most consumers treat an empty value as absent.
type Record map[string]string

// Get returns the value of field, or "" when absent.
func (r Record) Get(field string) string { return r[field] }

// Has reports whether field is present, even if empty.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Key returns the stable record identifier.
func (r Record) Key() string { return r[FieldKey] }

// Type returns the grammatical type, or "" when absent.
func (r Record) Type() Type { return Type(r[FieldWordType]) }

// Text returns the text for the given language.
func (r Record) Text(code language.Code) string { return r[string(code)] }

// Clone returns a shallow copy that can be modified independently.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// HasAnyConjugation reports whether at least one conjugation field is non-empty.
func (r Record) HasAnyConjugation() bool {
	for _, f := range ConjugationFields {
		if r[f] != "" {
			return true
		}
	}
	return false
}

// OrderedFields returns the present field names in canonical write order:
// key, word_type, language fields in table order, type attributes, comment,
// and finally any unrecognized fields sorted by name.
func (r Record) OrderedFields() []string {
	fields := make([]string, 0, len(r))
	placed := make(map[string]struct{}, len(r))
	add := func(name string) {
		if _, ok := r[name]; !ok {
			return
		}
		if _, done := placed[name]; done {
			return
		}
		placed[name] = struct{}{}
		fields = append(fields, name)
	}

	add(FieldKey)
	add(FieldWordType)
	add(string(language.Pivot))
	for _, info := range language.All() {
		add(string(info.Code))
	}
	for _, f := range attributeOrder {
		add(f)
	}

	var rest []string
	for name := range r {
		if _, done := placed[name]; !done {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(fields, rest...)
}

// MarshalYAML writes the record as a mapping in canonical field order with
// every value tagged as a string, so words such as "no" or "1000" survive a
// round trip unchanged.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range r.OrderedFields() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r[name]},
		)
	}
	return node, nil
}

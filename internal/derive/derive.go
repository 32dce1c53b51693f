package derive

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"snail/internal/localize"
	"snail/internal/word"
)

// Localization categories consulted by the deriver.
const (
	CategoryNoun      = "noun_additions"
	CategoryAdjective = "adjective_additions"
	CategoryVerb      = "verb_additions"
)

var commentPolicy = bluemonday.UGCPolicy()

// verbGroups pairs the conjugation fields rendered in one list, by person.
var verbGroups = [][2]string{
	{word.FieldFirstPersonSingular, word.FieldFirstPersonPlural},
	{word.FieldSecondPersonSingular, word.FieldSecondPersonPlural},
	{word.FieldThirdPersonSingular, word.FieldThirdPersonPlural},
}

// Deriver renders markup using labels from Loc in Locale.
type Deriver struct {
	Loc    localize.Localizer
	Locale string
}

// New returns a Deriver for locale.
func New(loc localize.Localizer, locale string) Deriver {
	return Deriver{Loc: loc, Locale: locale}
}

func (d Deriver) label(category, key string) string {
	if d.Loc == nil {
		return localize.Placeholder(category, key)
	}
	return d.Loc.Lookup(category, key, d.Locale)
}

// Gender returns the localized gender marker.
func (d Deriver) Gender(gender string) string {
	if gender == "" {
		return ""
	}
	return fmt.Sprintf(`<span class="info">%s</span>`, d.label(CategoryNoun, "gender."+gender))
}

// PluralForm returns the plural text followed by the localized plural abbreviation.
func (d Deriver) PluralForm(plural string) string {
	if plural == "" {
		return ""
	}
	return fmt.Sprintf(`<div class="plural-form">%s  <span class="info">%s</span></div>`,
		plural, d.label(CategoryNoun, word.FieldPluralForm))
}

// Adjective returns the comparison table. Both comparative and superlative
// must be present; a lone positive form renders nothing.
func (d Deriver) Adjective(record word.Record) string {
	if record.Get(word.FieldComparative) == "" || record.Get(word.FieldSuperlative) == "" {
		return ""
	}
	parts := []string{`<dl class="additions">`}
	for _, field := range []string{word.FieldPositive, word.FieldComparative, word.FieldSuperlative} {
		parts = append(parts, d.row(CategoryAdjective, field, record.Get(field)))
	}
	parts = append(parts, "</dl>")
	return strings.Join(parts, "\n")
}

// Verb returns one list per grammatical person. Once any conjugation is
// present all three lists are emitted, each holding only its non-empty rows.
func (d Deriver) Verb(record word.Record) string {
	if !record.HasAnyConjugation() {
		return ""
	}
	var parts []string
	for _, group := range verbGroups {
		parts = append(parts, `<dl class="additions">`)
		for _, field := range group {
			if value := record.Get(field); value != "" {
				parts = append(parts, d.row(CategoryVerb, field, value))
			}
		}
		parts = append(parts, "</dl>")
	}
	return strings.Join(parts, "\n")
}

func (d Deriver) row(category, field, value string) string {
	return fmt.Sprintf("  <dt>%s</dt>\n  <dd>%s</dd>", d.label(category, field), value)
}

// TypeSpecific returns the adjective or verb markup for the record's type.
func (d Deriver) TypeSpecific(record word.Record) string {
	switch record.Type() {
	case word.Adjective:
		return d.Adjective(record)
	case word.Verb:
		return d.Verb(record)
	default:
		return ""
	}
}

// Comment wraps sanitized comment text in the info box.
func (d Deriver) Comment(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	clean := commentPolicy.Sanitize(text)
	if strings.TrimSpace(clean) == "" {
		return ""
	}
	return `<div class="comment">
  <div class="info-icon">
    <svg xmlns="http://www.w3.org/2000/svg" viewBox="24 24 208 208" fill="currentColor"><path d="M128,24A104,104,0,1,0,232,128,104.11,104.11,0,0,0,128,24Zm-4,48a12,12,0,1,1-12,12A12,12,0,0,1,124,72Zm12,112a16,16,0,0,1-16-16V128a8,8,0,0,1,0-16,16,16,0,0,1,16,16v40a8,8,0,0,1,0,16Z"/></svg>
  </div>
  <div class="comment-content">` + clean + `</div>
</div>`
}

// Fields holds every derived value of one record.
type Fields struct {
	TypeSpecific string
	Gender       string
	PluralForm   string
	Comment      string
}

// Derive computes all markup for record. Gender and plural markers are only
// rendered for nouns.
func (d Deriver) Derive(record word.Record) Fields {
	f := Fields{
		TypeSpecific: d.TypeSpecific(record),
		Comment:      d.Comment(record.Get(word.FieldComment)),
	}
	if record.Type() == word.Noun {
		f.Gender = d.Gender(record.Get(word.FieldGender))
		f.PluralForm = d.PluralForm(record.Get(word.FieldPluralForm))
	}
	return f
}

package word

import "fmt"

// Type is the grammatical category of a record.
type Type string

const (
	Noun        Type = "noun"
	Adjective   Type = "adjective"
	Verb        Type = "verb"
	Adverb      Type = "adverb"
	Pronoun     Type = "pronoun"
	Conjunction Type = "conjunction"
	Preposition Type = "preposition"
	Other       Type = "other"
)

// TypeAll is the filter value that matches every record; it is never stored.
const TypeAll Type = "all"

// Types lists the closed set of storable word types.
var Types = []Type{Noun, Adjective, Verb, Adverb, Pronoun, Conjunction, Preposition, Other}

// Valid reports whether t is one of Types.
func (t Type) Valid() bool {
	for _, candidate := range Types {
		if t == candidate {
			return true
		}
	}
	return false
}

// ParseFilter resolves a word type filter; "all" and "" both match everything.
func ParseFilter(value string) (Type, error) {
	t := Type(value)
	if t == "" || t == TypeAll {
		return TypeAll, nil
	}
	if !t.Valid() {
		return "", fmt.Errorf("unknown word type %q", value)
	}
	return t, nil
}

// Gender is the grammatical gender of a noun.
type Gender string

const (
	Masculine Gender = "masculine"
	Feminine  Gender = "feminine"
	Neuter    Gender = "neuter"
)

// Genders lists the closed set of genders.
var Genders = []Gender{Masculine, Feminine, Neuter}

// Valid reports whether g is one of Genders.
func (g Gender) Valid() bool {
	for _, candidate := range Genders {
		if g == candidate {
			return true
		}
	}
	return false
}

package testsupport

import (
	"fmt"
	"testing"

	"snail/internal/config"
	"snail/internal/language"
	"snail/internal/liststore"
	"snail/internal/word"
)

// Nouns returns n finalized noun records translated into target.
func Nouns(n int, target language.Code) []word.Record {
	out := make([]word.Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, word.Record{
			word.FieldKey:      fmt.Sprintf("key-%03d", i),
			word.FieldWordType: string(word.Noun),
			"en":               fmt.Sprintf("word %d", i),
			string(target):     fmt.Sprintf("%s word %d", target, i),
		})
	}
	return out
}

// Verb returns a finalized verb record with every conjugation filled.
func Verb(key, en string, target language.Code, text string) word.Record {
	r := word.Record{
		word.FieldKey:      key,
		word.FieldWordType: string(word.Verb),
		"en":               en,
		string(target):     text,
	}
	for _, f := range word.ConjugationFields {
		r[f] = text
	}
	return r
}

// WriteList saves records as the list of lang under cfg.
func WriteList(t testing.TB, cfg *config.Config, lang language.Code, records []word.Record) {
	t.Helper()

	if _, err := liststore.Save(records, cfg.ListDir(lang), cfg.Deck.ChunkSize); err != nil {
		t.Fatalf("write list %s: %v", lang, err)
	}
}

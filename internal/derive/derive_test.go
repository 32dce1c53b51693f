package derive

import (
	"strings"
	"testing"

	"snail/internal/localize"
	"snail/internal/word"
)

type stubLocalizer map[string]string

func (s stubLocalizer) Lookup(category, key, _ string) string {
	if v, ok := s[category+"."+key]; ok {
		return v
	}
	return localize.Placeholder(category, key)
}

func testDeriver() Deriver {
	return New(stubLocalizer{
		"noun_additions.gender.feminine":        "f",
		"noun_additions.plural_form":            "pl",
		"adjective_additions.positive":          "POS",
		"adjective_additions.comparative":       "COMP",
		"adjective_additions.superlative":       "SUP",
		"verb_additions.first_person_singular":  "1s",
		"verb_additions.first_person_plural":    "1p",
		"verb_additions.second_person_singular": "2s",
		"verb_additions.second_person_plural":   "2p",
		"verb_additions.third_person_singular":  "3s",
		"verb_additions.third_person_plural":    "3p",
	}, "en")
}

func TestDeriversAreTotalOnEmptyRecord(t *testing.T) {
	d := testDeriver()
	empty := word.Record{}

	outputs := map[string]string{
		"Gender":       d.Gender(empty.Get(word.FieldGender)),
		"PluralForm":   d.PluralForm(empty.Get(word.FieldPluralForm)),
		"Adjective":    d.Adjective(empty),
		"Verb":         d.Verb(empty),
		"Comment":      d.Comment(empty.Get(word.FieldComment)),
		"TypeSpecific": d.TypeSpecific(empty),
	}
	for name, got := range outputs {
		if got != "" {
			t.Errorf("%s on empty record = %q, want empty", name, got)
		}
	}
	if f := d.Derive(empty); f != (Fields{}) {
		t.Errorf("Derive on empty record = %+v, want zero", f)
	}

	var zero Deriver
	if got := zero.Verb(word.Record{}); got != "" {
		t.Errorf("zero Deriver Verb = %q", got)
	}
}

func TestGenderAndPlural(t *testing.T) {
	d := testDeriver()
	if got, want := d.Gender("feminine"), `<span class="info">f</span>`; got != want {
		t.Fatalf("Gender = %q, want %q", got, want)
	}
	if got, want := d.PluralForm("Häuser"), `<div class="plural-form">Häuser  <span class="info">pl</span></div>`; got != want {
		t.Fatalf("PluralForm = %q, want %q", got, want)
	}
}

func TestAdjectiveRequiresComparativeAndSuperlative(t *testing.T) {
	d := testDeriver()

	if got := d.Adjective(word.Record{"positive": "big", "comparative": "bigger"}); got != "" {
		t.Fatalf("expected no markup without superlative, got %q", got)
	}
	if got := d.Adjective(word.Record{"positive": "big"}); got != "" {
		t.Fatalf("expected no markup for positive alone, got %q", got)
	}

	got := d.Adjective(word.Record{"positive": "big", "comparative": "bigger", "superlative": "biggest"})
	want := strings.Join([]string{
		`<dl class="additions">`,
		"  <dt>POS</dt>\n  <dd>big</dd>",
		"  <dt>COMP</dt>\n  <dd>bigger</dd>",
		"  <dt>SUP</dt>\n  <dd>biggest</dd>",
		"</dl>",
	}, "\n")
	if got != want {
		t.Fatalf("Adjective =\n%s\nwant\n%s", got, want)
	}
}

func TestVerbAlwaysRendersThreeLists(t *testing.T) {
	d := testDeriver()

	got := d.Verb(word.Record{"first_person_singular": "bin", "third_person_plural": "sind"})
	want := strings.Join([]string{
		`<dl class="additions">`,
		"  <dt>1s</dt>\n  <dd>bin</dd>",
		"</dl>",
		`<dl class="additions">`,
		"</dl>",
		`<dl class="additions">`,
		"  <dt>3p</dt>\n  <dd>sind</dd>",
		"</dl>",
	}, "\n")
	if got != want {
		t.Fatalf("Verb =\n%s\nwant\n%s", got, want)
	}

	full := word.Record{"word_type": "verb"}
	for _, f := range word.ConjugationFields {
		full[f] = f
	}
	if n := strings.Count(d.TypeSpecific(full), "<dt>"); n != 6 {
		t.Fatalf("expected six rows, got %d", n)
	}
}

func TestTypeSpecificByWordType(t *testing.T) {
	d := testDeriver()
	adjective := word.Record{"word_type": "adjective", "positive": "a", "comparative": "b", "superlative": "c"}
	if d.TypeSpecific(adjective) == "" {
		t.Fatal("expected adjective markup")
	}
	adjective["word_type"] = "noun"
	if got := d.TypeSpecific(adjective); got != "" {
		t.Fatalf("expected no type markup for noun, got %q", got)
	}
}

func TestCommentSanitizes(t *testing.T) {
	d := testDeriver()
	got := d.Comment(`Used in <b>formal</b> speech<script>alert(1)</script>`)
	if !strings.Contains(got, `<div class="comment-content">Used in <b>formal</b> speech</div>`) {
		t.Fatalf("unexpected comment markup: %q", got)
	}
	if strings.Contains(got, "script") {
		t.Fatalf("script survived sanitizing: %q", got)
	}
}

func TestCommentWithoutVisibleTextRendersNothing(t *testing.T) {
	d := testDeriver()
	for _, text := range []string{"", "   ", "\t\n ", "<script>alert(1)</script>"} {
		if got := d.Comment(text); got != "" {
			t.Errorf("Comment(%q) = %q, want empty", text, got)
		}
	}
}

func TestDeriveNounMarkers(t *testing.T) {
	d := New(localize.Builtin(), "de")
	f := d.Derive(word.Record{"word_type": "noun", "gender": "neuter", "plural_form": "Häuser"})
	if f.Gender != `<span class="info">n.</span>` {
		t.Fatalf("unexpected gender marker %q", f.Gender)
	}
	if !strings.Contains(f.PluralForm, "Pl.") {
		t.Fatalf("unexpected plural marker %q", f.PluralForm)
	}

	f = d.Derive(word.Record{"word_type": "adverb", "gender": "neuter"})
	if f.Gender != "" {
		t.Fatalf("expected gender only for nouns, got %q", f.Gender)
	}
}

package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Unknown is the slug used when the input has no representable characters.
const Unknown = "unknown"

// foldReplacer handles letters that NFKD does not decompose into a base letter.
// The typographic apostrophe is dropped; an ASCII one separates tokens.
var foldReplacer = strings.NewReplacer(
	"ß", "ss",
	"æ", "ae",
	"Æ", "ae",
	"ø", "o",
	"Ø", "o",
	"œ", "oe",
	"Œ", "oe",
	"đ", "d",
	"Đ", "d",
	"ł", "l",
	"Ł", "l",
	"þ", "th",
	"ð", "d",
	"ı", "i",
	"’", "",
)

// Fold returns value with diacritics removed, for example "Café" -> "Cafe".
func Fold(value string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, foldReplacer.Replace(value))
	if err != nil {
		return value
	}
	return folded
}

// Slugify converts value into a filesystem-safe lowercase slug such as
// "ice-cream". Returns Unknown for empty or unrepresentable input.
func Slugify(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return Unknown
	}
	folded := strings.ToLower(Fold(value))

	var b strings.Builder
	pendingHyphen := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	if b.Len() == 0 {
		return Unknown
	}
	return b.String()
}

package ankipkg

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
)

// fieldSeparator joins note fields in the flds column.
const fieldSeparator = "\x1f"

// Template is one card template of a model.
type Template struct {
	Name  string
	Front string
	Back  string
}

// Model describes the note type shared by every note of a deck.
type Model struct {
	ID        int64
	Name      string
	Fields    []string
	Templates []Template
	CSS       string
}

// Note is one note; Fields must match the model's field count.
type Note struct {
	GUID   string
	Fields []string
	Tags   []string
}

// Deck is everything written into one package.
type Deck struct {
	ID          int64
	Name        string
	Description string
	Model       Model
	Notes       []Note
	// Media lists files to embed; they are stored under their base names.
	Media []string
}

const base91Table = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!#$%&()*+,-./:;<=>?@[]^_`{|}~"

// GUID derives a stable note identifier from values, so rebuilding a deck
// updates existing notes on import instead of duplicating them.
func GUID(values ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(values, "__")))
	n := binary.BigEndian.Uint64(sum[:8])
	if n == 0 {
		return string(base91Table[0])
	}
	var out []byte
	for n > 0 {
		out = append(out, base91Table[n%91])
		n /= 91
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func stripHTML(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

// checksum is Anki's duplicate-detection value for the sort field.
func checksum(field string) int64 {
	sum := sha1.Sum([]byte(stripHTML(field)))
	v, _ := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	return v
}

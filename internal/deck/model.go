package deck

import (
	_ "embed"

	"snail/internal/ankipkg"
)

// Fixed identifiers keep rebuilt decks and note types stable across imports.
const (
	DeckID  int64 = 1343927636
	ModelID int64 = 1612251940
)

// Ext is the file extension of built decks.
const Ext = ".apkg"

// TitleSuffix is appended to the deck title shown inside Anki.
const TitleSuffix = " 🐌"

//go:embed templates/front.html
var frontTemplate string

//go:embed templates/back.html
var backTemplate string

//go:embed templates/style.css
var styleSheet string

// FieldNames are the note fields in model order.
var FieldNames = []string{
	"native_word",
	"target_word",
	"word_type",
	"sound",
	"image",
	"dl",
	"gender",
	"plural_form",
	"image_source",
	"comment",
}

// NoteModel returns the note type shared by every deck.
func NoteModel() ankipkg.Model {
	return ankipkg.Model{
		ID:     ModelID,
		Name:   "Flashcard Model",
		Fields: append([]string(nil), FieldNames...),
		Templates: []ankipkg.Template{
			{Name: "Vocabulary", Front: frontTemplate, Back: backTemplate},
		},
		CSS: styleSheet,
	}
}

// Note is one card's content.
type Note struct {
	Key          string
	Native       string
	Target       string
	WordType     string
	Sound        string
	Image        string
	TypeSpecific string
	Gender       string
	PluralForm   string
	ImageSource  string
	Comment      string
}

// Fields returns the note content in FieldNames order.
func (n Note) Fields() []string {
	return []string{
		n.Native,
		n.Target,
		n.WordType,
		n.Sound,
		n.Image,
		n.TypeSpecific,
		n.Gender,
		n.PluralForm,
		n.ImageSource,
		n.Comment,
	}
}

func (n Note) guid() string {
	if n.Key != "" {
		return ankipkg.GUID(n.Key)
	}
	return ankipkg.GUID(n.Native, n.Target)
}

package deck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"snail/internal/ankipkg"
	"snail/internal/derive"
	"snail/internal/language"
	"snail/internal/localize"
	"snail/internal/logging"
	"snail/internal/media"
	"snail/internal/textutil"
	"snail/internal/word"
)

// ErrMissingRequiredText reports a record without native or target text.
var ErrMissingRequiredText = errors.New("record is missing required text")

// MissingTextError identifies the record and field that stopped assembly.
type MissingTextError struct {
	Index int
	Key   string
	Field string
}

func (e *MissingTextError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("record %d does not include %s text", e.Index, e.Field)
	}
	return fmt.Sprintf("record %d (key %s) does not include %s text", e.Index, e.Key, e.Field)
}

func (e *MissingTextError) Unwrap() error { return ErrMissingRequiredText }

// MediaResolver finds the media of a record.
type MediaResolver interface {
	Resolve(key, lemma string) media.Assets
}

// Packager writes a deck package to path.
type Packager interface {
	Write(ctx context.Context, path string, deck ankipkg.Deck) error
}

// Assembler builds notes for one native/target language pair.
type Assembler struct {
	Loc      localize.Localizer
	Resolver MediaResolver
	Packager Packager
	Logger   *slog.Logger
}

// Result summarizes a built deck.
type Result struct {
	Path          string
	Title         string
	Notes         int
	Media         int
	MissingAudio  int
	MissingImages int
}

// Title returns the localized deck title, or "{native}_{target}" when the
// catalog has none.
func (a *Assembler) Title(native, target language.Code) string {
	key := "deck_title_" + string(target)
	if a.Loc == nil {
		return string(native) + "_" + string(target)
	}
	title := a.Loc.Lookup("deck_titles", key, string(native))
	if title == "" || title == localize.Placeholder("deck_titles", key) {
		return string(native) + "_" + string(target)
	}
	return title
}

// Assemble converts records into notes and collects the media files they
// reference. It stops at the first record lacking native or target text.
func (a *Assembler) Assemble(records []word.Record, native, target language.Code) ([]Note, []string, error) {
	for i, record := range records {
		for _, code := range []language.Code{native, target} {
			if record.Text(code) == "" {
				return nil, nil, &MissingTextError{Index: i, Key: record.Key(), Field: string(code)}
			}
		}
	}

	d := derive.New(a.Loc, string(native))
	notes := make([]Note, 0, len(records))
	var files []string
	seen := make(map[string]struct{})
	for _, record := range records {
		var assets media.Assets
		if a.Resolver != nil {
			assets = a.Resolver.Resolve(record.Key(), record.Text(language.Pivot))
		}
		for _, f := range assets.Files() {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			files = append(files, f)
		}

		derived := d.Derive(record)
		notes = append(notes, Note{
			Key:          record.Key(),
			Native:       record.Text(native),
			Target:       record.Text(target),
			WordType:     a.wordTypeLabel(record.Type(), native),
			Sound:        assets.Sound,
			Image:        assets.Image,
			TypeSpecific: derived.TypeSpecific,
			Gender:       derived.Gender,
			PluralForm:   derived.PluralForm,
			ImageSource:  assets.Attribution,
			Comment:      derived.Comment,
		})
	}
	return notes, files, nil
}

func (a *Assembler) wordTypeLabel(t word.Type, native language.Code) string {
	if t == "" {
		return ""
	}
	if a.Loc == nil {
		return string(t)
	}
	return a.Loc.Lookup("word_types", string(t), string(native))
}

// Build assembles records and writes {outputDir}/{slug(title)}.apkg. Nothing
// is written when assembly fails.
func (a *Assembler) Build(ctx context.Context, records []word.Record, native, target language.Code, outputDir string) (Result, error) {
	notes, files, err := a.Assemble(records, native, target)
	if err != nil {
		return Result{}, err
	}
	if a.Packager == nil {
		return Result{}, errors.New("deck packager not configured")
	}

	title := a.Title(native, target)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(outputDir, textutil.Slugify(title)+Ext)

	pkgNotes := make([]ankipkg.Note, 0, len(notes))
	result := Result{Path: path, Title: title, Notes: len(notes), Media: len(files)}
	for _, n := range notes {
		pkgNotes = append(pkgNotes, ankipkg.Note{GUID: n.guid(), Fields: n.Fields()})
		if n.Sound == "" {
			result.MissingAudio++
		}
		if n.Image == "" {
			result.MissingImages++
		}
	}

	err = a.Packager.Write(ctx, path, ankipkg.Deck{
		ID:    DeckID,
		Name:  title + TitleSuffix,
		Model: NoteModel(),
		Notes: pkgNotes,
		Media: files,
	})
	if err != nil {
		return Result{}, fmt.Errorf("write deck: %w", err)
	}

	a.logger().Info("deck created",
		logging.Path(path),
		logging.Language(string(target)),
		logging.Int("notes", result.Notes),
		logging.Int("media", result.Media),
		logging.Int("missing_audio", result.MissingAudio),
		logging.Int("missing_images", result.MissingImages))
	return result, nil
}

func (a *Assembler) logger() *slog.Logger {
	if a.Logger == nil {
		return logging.NewNop()
	}
	return a.Logger
}

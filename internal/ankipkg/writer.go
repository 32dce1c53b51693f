package ankipkg

import (
	"archive/zip"
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"snail/internal/logging"
)

//go:embed collection.sql
var collectionSQL string

const (
	collectionName = "collection.anki2"
	manifestName   = "media"
	schemaVersion  = 11
	defaultDeckID  = 1
	defaultConfID  = 1
)


// Writer writes packages to disk.
type Writer struct {
	Logger *slog.Logger
	Now    func() time.Time
}

// NewWriter returns a writer that logs through logger.
func NewWriter(logger *slog.Logger) *Writer {
	return &Writer{Logger: logging.NewComponentLogger(logger, "ankipkg"), Now: time.Now}
}

// Write builds the package for deck at path, replacing any existing file.
// A deck without notes still produces a valid, empty package.
func (w *Writer) Write(ctx context.Context, path string, deck Deck) error {
	for i, note := range deck.Notes {
		if len(note.Fields) != len(deck.Model.Fields) {
			return fmt.Errorf("note %d has %d fields, model %q expects %d", i, len(note.Fields), deck.Model.Name, len(deck.Model.Fields))
		}
	}

	workDir, err := os.MkdirTemp("", "snail-apkg-*")
	if err != nil {
		return fmt.Errorf("create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	dbPath := filepath.Join(workDir, collectionName)
	if err := w.buildCollection(ctx, dbPath, deck); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := writeArchive(tmpPath, dbPath, deck.Media); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename package: %w", err)
	}

	w.logger().Debug("wrote deck package",
		logging.Path(path),
		logging.Int("notes", len(deck.Notes)),
		logging.Int("media", len(deck.Media)))
	return nil
}

func (w *Writer) buildCollection(ctx context.Context, dbPath string, deck Deck) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin collection tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, collectionSQL); err != nil {
		return fmt.Errorf("create collection schema: %w", err)
	}

	now := w.now()
	nowSec := now.Unix()
	nowMs := now.UnixMilli()

	conf, models, decks, dconf, err := collectionJSON(deck, nowSec)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		 VALUES (1, ?, ?, ?, ?, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		nowSec, nowMs, nowMs, schemaVersion, conf, models, decks, dconf,
	); err != nil {
		return fmt.Errorf("insert collection: %w", err)
	}

	noteStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
		 VALUES (?, ?, ?, ?, -1, ?, ?, ?, ?, 0, '')`)
	if err != nil {
		return fmt.Errorf("prepare note insert: %w", err)
	}
	defer noteStmt.Close()

	cardStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due, ivl, factor, reps, lapses, "left", odue, odid, flags, data)
		 VALUES (?, ?, ?, ?, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`)
	if err != nil {
		return fmt.Errorf("prepare card insert: %w", err)
	}
	defer cardStmt.Close()

	nextCardID := nowMs
	for i, note := range deck.Notes {
		if err := ctx.Err(); err != nil {
			return err
		}
		noteID := nowMs + int64(i)
		guid := note.GUID
		if guid == "" {
			guid = GUID(note.Fields...)
		}
		tags := ""
		if len(note.Tags) > 0 {
			tags = " " + strings.Join(note.Tags, " ") + " "
		}
		if _, err := noteStmt.ExecContext(ctx,
			noteID, guid, deck.Model.ID, nowSec, tags,
			strings.Join(note.Fields, fieldSeparator), stripHTML(note.Fields[0]), checksum(note.Fields[0]),
		); err != nil {
			return fmt.Errorf("insert note %d: %w", i, err)
		}
		for ord := range deck.Model.Templates {
			if _, err := cardStmt.ExecContext(ctx, nextCardID, noteID, deck.ID, ord, nowSec, i+1); err != nil {
				return fmt.Errorf("insert card for note %d: %w", i, err)
			}
			nextCardID++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit collection: %w", err)
	}
	return nil
}

func collectionJSON(deck Deck, now int64) (conf, models, decks, dconf string, err error) {
	fields := make([]map[string]any, 0, len(deck.Model.Fields))
	req := make([]int, 0, len(deck.Model.Fields))
	for i, name := range deck.Model.Fields {
		fields = append(fields, map[string]any{
			"name": name, "ord": i, "sticky": false, "rtl": false,
			"font": "Arial", "size": 20, "media": []string{},
		})
		req = append(req, i)
	}
	tmpls := make([]map[string]any, 0, len(deck.Model.Templates))
	reqs := make([]any, 0, len(deck.Model.Templates))
	for i, t := range deck.Model.Templates {
		tmpls = append(tmpls, map[string]any{
			"name": t.Name, "ord": i, "qfmt": t.Front, "afmt": t.Back,
			"did": nil, "bqfmt": "", "bafmt": "",
		})
		reqs = append(reqs, []any{i, "any", req})
	}
	modelID := strconv.FormatInt(deck.Model.ID, 10)
	deckID := strconv.FormatInt(deck.ID, 10)

	parts := []struct {
		target *string
		value  any
	}{
		{&conf, map[string]any{
			"nextPos": 1, "estTimes": true, "activeDecks": []int64{defaultDeckID},
			"sortType": "noteFld", "timeLim": 0, "sortBackwards": false,
			"addToCur": true, "curDeck": defaultDeckID, "newBury": true,
			"newSpread": 0, "dueCounts": true, "curModel": modelID, "collapseTime": 1200,
		}},
		{&models, map[string]any{
			modelID: map[string]any{
				"id": deck.Model.ID, "name": deck.Model.Name, "type": 0, "mod": now,
				"usn": -1, "sortf": 0, "did": deck.ID, "tmpls": tmpls, "flds": fields,
				"css": deck.Model.CSS, "latexPre": "", "latexPost": "", "tags": []string{},
				"vers": []string{}, "req": reqs,
			},
		}},
		{&decks, map[string]any{
			"1":    deckJSON(defaultDeckID, "Default", "", now),
			deckID: deckJSON(deck.ID, deck.Name, deck.Description, now),
		}},
		{&dconf, map[string]any{
			"1": map[string]any{
				"id": defaultConfID, "name": "Default", "mod": 0, "usn": 0,
				"maxTaken": 60, "autoplay": true, "timer": 0, "replayq": true, "dyn": false,
				"new": map[string]any{
					"delays": []int{1, 10}, "ints": []int{1, 4, 7}, "initialFactor": 2500,
					"order": 1, "perDay": 20, "bury": true, "separate": true,
				},
				"rev": map[string]any{
					"perDay": 100, "ease4": 1.3, "fuzz": 0.05, "maxIvl": 36500,
					"ivlFct": 1, "bury": true, "minSpace": 1,
				},
				"lapse": map[string]any{
					"delays": []int{10}, "mult": 0, "minInt": 1, "leechFails": 8, "leechAction": 0,
				},
			},
		}},
	}
	for _, p := range parts {
		data, marshalErr := json.Marshal(p.value)
		if marshalErr != nil {
			return "", "", "", "", fmt.Errorf("marshal collection metadata: %w", marshalErr)
		}
		*p.target = string(data)
	}
	return conf, models, decks, dconf, nil
}

func deckJSON(id int64, name, desc string, now int64) map[string]any {
	return map[string]any{
		"id": id, "name": name, "desc": desc, "mod": now, "usn": -1,
		"collapsed": false, "dyn": 0, "conf": defaultConfID,
		"extendNew": 10, "extendRev": 50,
		"newToday": []int{0, 0}, "revToday": []int{0, 0},
		"lrnToday": []int{0, 0}, "timeToday": []int{0, 0},
	}
}

func writeArchive(path, dbPath string, media []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create package: %w", err)
	}
	defer file.Close()

	zw := zip.NewWriter(file)
	if err := addFile(zw, collectionName, dbPath); err != nil {
		return err
	}

	manifest := make(map[string]string, len(media))
	seen := make(map[string]struct{}, len(media))
	index := 0
	for _, mediaPath := range media {
		name := filepath.Base(mediaPath)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		entry := strconv.Itoa(index)
		if err := addFile(zw, entry, mediaPath); err != nil {
			return err
		}
		manifest[entry] = name
		index++
	}

	data, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("marshal media manifest: %w", err)
	}
	mw, err := zw.Create(manifestName)
	if err != nil {
		return fmt.Errorf("add media manifest: %w", err)
	}
	if _, err := mw.Write(data); err != nil {
		return fmt.Errorf("write media manifest: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize package: %w", err)
	}
	return file.Close()
}

func addFile(zw *zip.Writer, name, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer src.Close()
	dst, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("add %s: %w", name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy %s: %w", path, err)
	}
	return nil
}

func (w *Writer) now() time.Time {
	if w.Now == nil {
		return time.Now()
	}
	return w.Now()
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger == nil {
		return logging.NewNop()
	}
	return w.Logger
}

package ankipkg

import (
	"archive/zip"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func testDeck(media ...string) Deck {
	return Deck{
		ID:   1343927636,
		Name: "French Vocabulary",
		Model: Model{
			ID:        1612251940,
			Name:      "Flashcard Model",
			Fields:    []string{"front", "back"},
			Templates: []Template{{Name: "Vocabulary", Front: "{{front}}", Back: "{{back}}"}},
		},
		Notes: []Note{
			{GUID: GUID("k1"), Fields: []string{"<b>cat</b>", "chat"}},
			{Fields: []string{"dog", "chien"}, Tags: []string{"noun"}},
		},
		Media: media,
	}
}

func readEntry(t *testing.T, f *zip.File) []byte {
	t.Helper()
	rc, err := f.Open()
	if err != nil {
		t.Fatalf("open %s: %v", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read %s: %v", f.Name, err)
	}
	return data
}

func TestWritePackage(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "k1.mp3")
	if err := os.WriteFile(audio, []byte("ID3"), 0o644); err != nil {
		t.Fatalf("write media: %v", err)
	}
	out := filepath.Join(dir, "french-vocabulary.apkg")

	w := NewWriter(nil)
	w.Now = func() time.Time { return time.Unix(1700000000, 0) }
	if err := w.Write(context.Background(), out, testDeck(audio, audio)); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("open package: %v", err)
	}
	defer zr.Close()

	entries := map[string]*zip.File{}
	var names []string
	for _, f := range zr.File {
		entries[f.Name] = f
		names = append(names, f.Name)
	}
	if diff := cmp.Diff([]string{"collection.anki2", "0", "media"}, names); diff != "" {
		t.Fatalf("archive entries mismatch (-want +got):\n%s", diff)
	}

	var manifest map[string]string
	if err := json.Unmarshal(readEntry(t, entries["media"]), &manifest); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"0": "k1.mp3"}, manifest); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}
	if got := string(readEntry(t, entries["0"])); got != "ID3" {
		t.Fatalf("unexpected media content %q", got)
	}

	dbPath := filepath.Join(t.TempDir(), "collection.anki2")
	if err := os.WriteFile(dbPath, readEntry(t, entries["collection.anki2"]), 0o644); err != nil {
		t.Fatalf("extract collection: %v", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open collection: %v", err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT guid, flds, sfld, tags, mid FROM notes ORDER BY id")
	if err != nil {
		t.Fatalf("query notes: %v", err)
	}
	defer rows.Close()
	type noteRow struct {
		GUID, Fields, Sort, Tags string
		Model                    int64
	}
	var got []noteRow
	for rows.Next() {
		var r noteRow
		if err := rows.Scan(&r.GUID, &r.Fields, &r.Sort, &r.Tags, &r.Model); err != nil {
			t.Fatalf("scan note: %v", err)
		}
		got = append(got, r)
	}
	want := []noteRow{
		{GUID: GUID("k1"), Fields: "<b>cat</b>\x1fchat", Sort: "cat", Tags: "", Model: 1612251940},
		{GUID: GUID("dog", "chien"), Fields: "dog\x1fchien", Sort: "dog", Tags: " noun ", Model: 1612251940},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("notes mismatch (-want +got):\n%s", diff)
	}

	var cards int
	var deckID int64
	if err := db.QueryRow("SELECT COUNT(1), MAX(did) FROM cards").Scan(&cards, &deckID); err != nil {
		t.Fatalf("count cards: %v", err)
	}
	if cards != 2 || deckID != 1343927636 {
		t.Fatalf("unexpected cards: count=%d did=%d", cards, deckID)
	}

	var decksJSON, modelsJSON string
	if err := db.QueryRow("SELECT decks, models FROM col").Scan(&decksJSON, &modelsJSON); err != nil {
		t.Fatalf("read col: %v", err)
	}
	if !strings.Contains(decksJSON, `"French Vocabulary"`) || !strings.Contains(modelsJSON, `"Flashcard Model"`) {
		t.Fatalf("collection metadata missing deck or model: %s %s", decksJSON, modelsJSON)
	}
}

func TestWriteRejectsInvalidDecks(t *testing.T) {
	w := NewWriter(nil)
	out := filepath.Join(t.TempDir(), "deck.apkg")

	short := testDeck()
	short.Notes[1].Fields = []string{"only one"}
	if err := w.Write(context.Background(), out, short); err == nil {
		t.Fatal("expected field count error")
	}

	missing := testDeck(filepath.Join(t.TempDir(), "absent.mp3"))
	if err := w.Write(context.Background(), out, missing); err == nil {
		t.Fatal("expected error for missing media file")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("expected no package after failures, stat err=%v", err)
	}
}

func TestWriteEmptyDeck(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "deck.apkg")
	empty := testDeck()
	empty.Notes = nil
	if err := NewWriter(nil).Write(context.Background(), out, empty); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("open package: %v", err)
	}
	defer zr.Close()
	var collection *zip.File
	for _, f := range zr.File {
		if f.Name == "collection.anki2" {
			collection = f
		}
	}
	if collection == nil {
		t.Fatal("package has no collection")
	}

	dbPath := filepath.Join(dir, "collection.anki2")
	if err := os.WriteFile(dbPath, readEntry(t, collection), 0o644); err != nil {
		t.Fatalf("extract collection: %v", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open collection: %v", err)
	}
	defer db.Close()
	var notes int
	if err := db.QueryRow("SELECT COUNT(1) FROM notes").Scan(&notes); err != nil {
		t.Fatalf("count notes: %v", err)
	}
	if notes != 0 {
		t.Fatalf("expected no notes, got %d", notes)
	}
}

func TestWriteHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := filepath.Join(t.TempDir(), "deck.apkg")
	if err := NewWriter(nil).Write(ctx, out, testDeck()); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("expected no package after cancellation, stat err=%v", err)
	}
}

func TestGUIDStable(t *testing.T) {
	a := GUID("key-1")
	if a == "" || a != GUID("key-1") {
		t.Fatalf("GUID not stable: %q", a)
	}
	if a == GUID("key-2") {
		t.Fatal("expected different keys to produce different GUIDs")
	}
	for _, r := range a {
		if !strings.ContainsRune(base91Table, r) {
			t.Fatalf("GUID %q contains %q outside the base91 alphabet", a, r)
		}
	}
}

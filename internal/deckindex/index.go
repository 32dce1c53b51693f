package deckindex

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"sort"

	"snail/internal/fileutil"
	"snail/internal/logging"
)

const (
	keyNativeLanguages = "native_languages"
	keyTargetLanguages = "target_languages"
)

// Index is the decoded deck index.
type Index struct {
	Decks           map[string]string // "{native}_{target}" -> relative deck path
	NativeLanguages []string
	TargetLanguages []string
}

// PairKey returns the index key of a language pair.
func PairKey(native, target string) string {
	return native + "_" + target
}

// Merge returns idx with the pair pointing at path and both codes recorded.
// idx is not modified. Merging the same triple again is a no-op.
func Merge(idx Index, native, target, path string) Index {
	out := Index{
		Decks:           make(map[string]string, len(idx.Decks)+1),
		NativeLanguages: slices.Clone(idx.NativeLanguages),
		TargetLanguages: slices.Clone(idx.TargetLanguages),
	}
	for k, v := range idx.Decks {
		out.Decks[k] = v
	}
	out.Decks[PairKey(native, target)] = path
	if !slices.Contains(out.NativeLanguages, native) {
		out.NativeLanguages = append(out.NativeLanguages, native)
	}
	if !slices.Contains(out.TargetLanguages, target) {
		out.TargetLanguages = append(out.TargetLanguages, target)
	}
	return out
}

// Lookup returns the deck path of a language pair.
func (idx Index) Lookup(native, target string) (string, bool) {
	path, ok := idx.Decks[PairKey(native, target)]
	return path, ok
}

// MarshalJSON writes pair keys in sorted order followed by the two language lists.
func (idx Index) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(idx.Decks))
	for k := range idx.Decks {
		if k == keyNativeLanguages || k == keyTargetLanguages {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	write := func(key string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}
	for _, k := range keys {
		if err := write(k, idx.Decks[k]); err != nil {
			return nil, err
		}
	}
	if err := write(keyNativeLanguages, nonNil(idx.NativeLanguages)); err != nil {
		return nil, err
	}
	if err := write(keyTargetLanguages, nonNil(idx.TargetLanguages)); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts any object; string members become pair entries and
// the two language lists are read when they are string arrays.
func (idx *Index) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("deck index is not an object")
	}
	out := Index{Decks: make(map[string]string, len(raw))}
	for k, v := range raw {
		switch k {
		case keyNativeLanguages:
			out.NativeLanguages = decodeList(v)
		case keyTargetLanguages:
			out.TargetLanguages = decodeList(v)
		default:
			var path string
			if err := json.Unmarshal(v, &path); err == nil {
				out.Decks[k] = path
			}
		}
	}
	*idx = out
	return nil
}

func decodeList(data json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil
	}
	return list
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// Store reads and writes one index file.
type Store struct {
	Path   string
	Logger *slog.Logger
}

// NewStore returns a store for the index at path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{Path: path, Logger: logging.NewComponentLogger(logger, "deckindex")}
}

// Load reads the index. Missing files yield an empty index; unreadable or
// malformed files yield an empty index and a warning.
func (s *Store) Load() Index {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.warnCorrupt(err)
		}
		return Index{Decks: map[string]string{}}
	}
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		s.warnCorrupt(err)
		return Index{Decks: map[string]string{}}
	}
	return idx
}

func (s *Store) warnCorrupt(err error) {
	logging.WarnWithContext(s.logger(), "could not parse deck index, creating new index", "deckindex_corrupt",
		logging.Path(s.Path),
		logging.Error(err),
		logging.Hint("inspect or delete the index file"),
		logging.Impact("previous deck entries are dropped from the index"),
	)
}

// Update merges a deck into the index and rewrites the file.
func (s *Store) Update(native, target, deckPath string) (Index, error) {
	idx := Merge(s.Load(), native, target, deckPath)
	if err := s.save(idx); err != nil {
		return Index{}, err
	}
	s.logger().Info("updated deck index",
		logging.String("pair", PairKey(native, target)),
		logging.String("deck", deckPath))
	return idx, nil
}

func (s *Store) save(idx Index) error {
	compact, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("marshal deck index: %w", err)
	}
	var data bytes.Buffer
	if err := json.Indent(&data, compact, "", "  "); err != nil {
		return fmt.Errorf("format deck index: %w", err)
	}
	data.WriteByte('\n')

	if err := fileutil.WriteAtomic(s.Path, data.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save deck index: %w", err)
	}
	return nil
}

func (s *Store) logger() *slog.Logger {
	if s.Logger == nil {
		return logging.NewNop()
	}
	return s.Logger
}

// Load reads the index at path without logging.
func Load(path string) Index {
	return NewStore(path, nil).Load()
}

// Update merges a deck into the index at path without logging.
func Update(path, native, target, deckPath string) (Index, error) {
	return NewStore(path, nil).Update(native, target, deckPath)
}

package liststore

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"snail/internal/fileutil"
	"snail/internal/logging"
	"snail/internal/schema"
	"snail/internal/word"
)

// ShardExt is the extension of shard files.
const ShardExt = ".yaml"

// DefaultChunkSize is the number of records per shard unless configured otherwise.
const DefaultChunkSize = 50

var (
	// ErrNotFound reports a missing list directory.
	ErrNotFound = errors.New("word list not found")
	// ErrEmptyCorpus reports a list directory without shards.
	ErrEmptyCorpus = errors.New("word list has no shards")
	// ErrInvalidChunkSize reports a chunk size below one.
	ErrInvalidChunkSize = errors.New("chunk size must be at least 1")
)

// Store reads and writes shard directories.
type Store struct {
	logger *slog.Logger
}

// New returns a store that logs through logger.
func New(logger *slog.Logger) *Store {
	return &Store{logger: logging.NewComponentLogger(logger, "liststore")}
}

var defaultStore = New(nil)

// Load reads a list directory with a non-logging store.
func Load(dir string, opts schema.Options) ([]word.Record, error) {
	return defaultStore.Load(dir, opts)
}

// Save writes records with a non-logging store.
func Save(records []word.Record, dir string, chunkSize int) ([]string, error) {
	return defaultStore.Save(records, dir, chunkSize)
}

// Replace rewrites a list directory with a non-logging store.
func Replace(records []word.Record, dir string, chunkSize int) ([]string, error) {
	return defaultStore.Replace(records, dir, chunkSize)
}

// ShardName returns the file name of the 1-based shard seq.
func ShardName(seq int) string {
	return fmt.Sprintf("%03d%s", seq, ShardExt)
}

// Shards returns the shard paths of dir in load order.
func Shards(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		return nil, fmt.Errorf("stat list directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read list directory: %w", err)
	}
	var shards []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ShardExt {
			continue
		}
		shards = append(shards, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(shards)
	return shards, nil
}

// Load reads every shard of dir in filename order and validates the batch.
// A *schema.Failure is returned when the batch does not conform.
func (s *Store) Load(dir string, opts schema.Options) ([]word.Record, error) {
	shards, err := Shards(dir)
	if err != nil {
		return nil, err
	}
	if len(shards) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCorpus, dir)
	}

	var items []any
	for _, path := range shards {
		shardItems, ok := s.readShard(path)
		if !ok {
			continue
		}
		items = append(items, shardItems...)
	}

	if result := schema.Validate(items, opts); !result.OK() {
		return nil, result.Failure
	}

	records := make([]word.Record, 0, len(items))
	for _, item := range items {
		fields := item.(map[string]any)
		record := make(word.Record, len(fields))
		for k, v := range fields {
			record[k] = v.(string)
		}
		records = append(records, record)
	}
	s.logger.Debug("loaded words",
		logging.Path(dir),
		logging.Int("shards", len(shards)),
		logging.Int("count", len(records)))
	return records, nil
}

// readShard decodes one shard. Unreadable shards and shards that are not a
// sequence are logged and skipped.
func (s *Store) readShard(path string) ([]any, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.ErrorWithContext(s.logger, "failed to read shard", "liststore_shard_unreadable",
			logging.Path(path),
			logging.Error(err))
		return nil, false
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		logging.ErrorWithContext(s.logger, "failed to parse shard", "liststore_shard_invalid",
			logging.Path(path),
			logging.Error(err),
			logging.Hint("fix the YAML syntax of the shard"))
		return nil, false
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		logging.WarnWithContext(s.logger, "shard does not contain a list, skipping", "liststore_shard_not_list",
			logging.Path(path),
			logging.Hint("a shard must be a top-level YAML sequence"),
			logging.Impact("records in this shard are not loaded"))
		return nil, false
	}
	items := make([]any, 0, len(root.Content))
	for _, n := range root.Content {
		items = append(items, nodeValue(n))
	}
	return items, true
}

// nodeValue converts a YAML node into plain Go values. Booleans such as yes,
// no, on and true keep their literal text; numbers and timestamps keep their
// type so validation rejects them.
func nodeValue(n *yaml.Node) any {
	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil
		}
		return nodeValue(n.Alias)
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil
		case "!!int", "!!float", "!!timestamp":
			var v any
			if err := n.Decode(&v); err == nil {
				return v
			}
		}
		return n.Value
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			out = append(out, nodeValue(c))
		}
		return out
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			out[n.Content[i].Value] = nodeValue(n.Content[i+1])
		}
		return out
	default:
		return nil
	}
}

// Save writes records into dir as consecutive shards of chunkSize records and
// returns the paths written. Existing shards beyond the last written one are
// left in place; use Replace to rewrite a list.
func (s *Store) Save(records []word.Record, dir string, chunkSize int) ([]string, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChunkSize, chunkSize)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create list directory: %w", err)
	}

	paths := make([]string, 0, (len(records)+chunkSize-1)/chunkSize)
	for start, seq := 0, 1; start < len(records); start, seq = start+chunkSize, seq+1 {
		end := min(start+chunkSize, len(records))
		path := filepath.Join(dir, ShardName(seq))
		if err := writeShard(path, records[start:end]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	s.logger.Debug("saved words",
		logging.Path(dir),
		logging.Int("shards", len(paths)),
		logging.Int("count", len(records)))
	return paths, nil
}

// Replace removes dir and writes records into a fresh directory so no stale
// shard survives a shrinking list.
func (s *Store) Replace(records []word.Record, dir string, chunkSize int) ([]string, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChunkSize, chunkSize)
	}
	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("remove list directory: %w", err)
	}
	return s.Save(records, dir, chunkSize)
}

func writeShard(path string, records []word.Record) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode shard %s: %w", filepath.Base(path), err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode shard %s: %w", filepath.Base(path), err)
	}
	if err := fileutil.WriteAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write shard: %w", err)
	}
	return nil
}

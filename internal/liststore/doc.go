// Package liststore persists a language's word list as numbered YAML shards.
//
// A list directory holds files named 001.yaml, 002.yaml, ... each containing a
// top-level sequence of at most chunk_size records. Reading concatenates the
// shards in filename order and validates the whole batch; writing partitions
// the batch into contiguous chunks. Saving and loading never reorders or
// alters records, so shard boundaries are invisible to callers.
//
// Scalars are kept as literal strings: a shard entry such as "no" or "1000"
// loads as that text rather than a boolean or number.
package liststore

// Package ingestion turns archived session transcripts into stored memory
// points.
//
// The Pipeline type performs a full batch pass over an archive root:
// discover session files, then for each file parse, chunk, embed, and
// upsert. File processing is strictly sequential; a single unreadable
// file is skipped without aborting the run.
//
// The Watcher type performs live ingestion of newly created session files,
// reusing the Pipeline's per-file transformation through the FileIngester
// interface. Detected files pass through a bounded single-worker queue, so
// writes to the store are serialized.
package ingestion

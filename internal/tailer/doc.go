// Package tailer streams appended lines from log files for follow mode.
//
// A follow run backfills the last N existing lines per file using a ring
// buffer (one pass, O(N) memory regardless of file size), then streams new
// complete lines as they are appended. fsnotify write events trigger reads,
// with a short polling ticker as fallback for filesystems that drop events
// and for files that do not exist yet. Rotation and truncation are detected
// by size regression and restart the file from offset zero. Partial lines
// stay buffered until their newline arrives, so the pipeline only ever sees
// whole lines.
package tailer

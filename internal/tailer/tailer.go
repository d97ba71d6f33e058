package tailer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultPollEvery = 250 * time.Millisecond

// Options configure a follow run.
type Options struct {
	TailLines int           // existing lines to emit per file before streaming
	PollEvery time.Duration // fallback scan interval; zero uses the default
}

type trackedFile struct {
	path   string
	file   *os.File
	offset int64
	buf    string // partial line carried between reads
}

// Follow tails the given files until the context is cancelled, sending each
// complete appended line to out. fsnotify write events trigger reads, with a
// polling ticker as fallback for filesystems that drop events. Rotation and
// truncation are detected by size regression. Follow closes out on return.
func Follow(ctx context.Context, paths []string, opts Options, out chan<- string) error {
	defer close(out)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("init watcher: %w", err)
	}
	defer watcher.Close()

	files := make(map[string]*trackedFile, len(paths))
	for _, path := range paths {
		tf, err := attach(ctx, path, opts.TailLines, out)
		if err != nil {
			return err
		}
		files[path] = tf
		// Watch errors are tolerable: the poll ticker still covers the file
		// (it may not exist yet, or the filesystem may not support events).
		_ = watcher.Add(path)
	}

	pollEvery := opts.PollEvery
	if pollEvery <= 0 {
		pollEvery = defaultPollEvery
	}
	ticker := time.NewTicker(pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			closeAll(files)
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if tf, tracked := files[ev.Name]; tracked {
				switch {
				case ev.Op&fsnotify.Write != 0:
					readNew(ctx, tf, out)
				case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
					tf.close()
					_ = watcher.Remove(ev.Name)
				case ev.Op&fsnotify.Create != 0:
					_ = watcher.Add(ev.Name)
					readNew(ctx, tf, out)
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "plume: watch error: %v\n", err)

		case <-ticker.C:
			for _, tf := range files {
				readNew(ctx, tf, out)
			}
		}
	}
}

// attach opens one file, emits its backfill lines, and positions the tail at
// the streaming offset. Files that do not exist yet are tracked closed and
// picked up by the poll loop when they appear.
func attach(ctx context.Context, path string, tailLines int, out chan<- string) (*trackedFile, error) {
	lines, offset, err := Backfill(path, tailLines)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		select {
		case out <- line:
		case <-ctx.Done():
			return &trackedFile{path: path, offset: offset}, nil
		}
	}

	tf := &trackedFile{path: path, offset: offset}
	file, err := os.Open(path)
	if err == nil {
		if _, err := file.Seek(offset, io.SeekStart); err != nil {
			file.Close()
			return nil, fmt.Errorf("seek %s: %w", path, err)
		}
		tf.file = file
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return tf, nil
}

// readNew drains appended bytes from the tracked file. Closed files are
// reopened when the path exists again; a shrunken file restarts from zero.
func readNew(ctx context.Context, tf *trackedFile, out chan<- string) {
	if tf.file == nil && !tf.reopen(0) {
		return
	}

	info, err := tf.file.Stat()
	if err != nil {
		tf.close()
		return
	}
	if info.Size() < tf.offset {
		// Truncated or rotated in place: start over.
		if !tf.reopen(0) {
			return
		}
	}

	reader := bufio.NewReader(tf.file)
	for {
		chunk, err := reader.ReadString('\n')
		if err == nil {
			line := strings.TrimSuffix(tf.buf+chunk[:len(chunk)-1], "\r")
			tf.buf = ""
			tf.offset += int64(len(chunk))
			select {
			case out <- line:
			case <-ctx.Done():
				return
			}
			continue
		}
		// Partial line at EOF stays buffered until its newline arrives.
		tf.buf += chunk
		tf.offset += int64(len(chunk))
		return
	}
}

func (tf *trackedFile) reopen(offset int64) bool {
	tf.close()
	file, err := os.Open(tf.path)
	if err != nil {
		return false
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		file.Close()
		return false
	}
	tf.file = file
	tf.offset = offset
	tf.buf = ""
	return true
}

func (tf *trackedFile) close() {
	if tf.file != nil {
		tf.file.Close()
		tf.file = nil
	}
}

func closeAll(files map[string]*trackedFile) {
	for _, tf := range files {
		tf.close()
	}
}

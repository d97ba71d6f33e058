package tailer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Backfill returns at most maxLines from the end of the file at path, plus
// the offset where streaming should resume. A missing file yields no lines
// and offset zero, so a tail can attach before the file first appears.
func Backfill(path string, maxLines int) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("stat log: %w", err)
	}
	size := info.Size()
	if maxLines <= 0 {
		return nil, size, nil
	}

	// Bound the scan at the stat size so concurrent appends stream later
	// instead of racing the backfill.
	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(io.LimitReader(file, size))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, size, nil
}

package app

import (
	"encoding/csv"
	"os"
	"sync"

	"github.com/skywatch-go/skywatch/sbs"
)

// csvLog is the optional append-only processed-message log. It is
// written by the processor loop and flushed by the monitor task, so
// every access is serialized under mu.
type csvLog struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// openCSVLog opens path for append, writing the SBS field-name header
// only if the file is currently empty. An empty path disables the log
// entirely (openCSVLog returns nil, nil).
func openCSVLog(path string) (*csvLog, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(sbs.FieldNames); err != nil {
			f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &csvLog{file: f, writer: w}, nil
}

// Append writes one RFC 4180-quoted row for msg.
func (l *csvLog) Append(msg sbs.Message) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.writer.Write(msg.Fields())
}

// Flush flushes any buffered rows to disk.
func (l *csvLog) Flush() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer.Flush()
}

// Close flushes and closes the underlying file.
func (l *csvLog) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer.Flush()
	return l.file.Close()
}

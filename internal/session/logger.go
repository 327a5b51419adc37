package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt marks a log whose entries are stored as zstd frames.
const CompressedExt = ".zst"

// Logger defines the interface for session event logging.
type Logger interface {
	Log(event Event) error
	Close() error
}

// JSONLogger writes events as newline-delimited JSON (NDJSON). When the
// path ends in CompressedExt every line is written as its own zstd frame,
// so the file stays appendable across runs.
type JSONLogger struct {
	mu   sync.Mutex
	file *os.File
	zenc *zstd.Encoder
	path string
}

var _ Logger = (*JSONLogger)(nil)

// NewJSONLogger creates a logger that appends NDJSON to the given path.
// Parent directories are created automatically.
func NewJSONLogger(path string) (*JSONLogger, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating session log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening session log: %w", err)
	}

	l := &JSONLogger{file: f, path: path}
	if IsCompressed(path) {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		l.zenc = enc
	}
	return l, nil
}

// Log writes a single event as one JSON line.
func (l *JSONLogger) Log(event Event) error {
	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding session event: %w", err)
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.zenc != nil {
		line = l.zenc.EncodeAll(line, nil)
	}
	if _, err := l.file.Write(line); err != nil {
		return fmt.Errorf("writing session log: %w", err)
	}
	return nil
}

// Close releases the encoder and closes the underlying file.
func (l *JSONLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.zenc != nil {
		_ = l.zenc.Close()
	}
	return l.file.Close()
}

// Path returns the file path of the session log.
func (l *JSONLogger) Path() string {
	return l.path
}

// NopLogger discards all events. Useful as a default when logging is disabled.
type NopLogger struct{}

// Log is a no-op.
func (NopLogger) Log(Event) error { return nil }

// Close is a no-op.
func (NopLogger) Close() error { return nil }

// IsCompressed reports whether path names a zstd-framed log.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, CompressedExt)
}

// DefaultLogPath returns a timestamped session log path inside dir. When
// compressed is true the path ends in CompressedExt.
func DefaultLogPath(dir string, compressed bool) string {
	ts := time.Now().UTC().Format("20060102T150405Z")
	name := fmt.Sprintf("%s-session.jsonl", ts)
	if compressed {
		name += CompressedExt
	}
	return filepath.Join(dir, name)
}

package session

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// SessionFile represents a session log file on disk.
type SessionFile struct {
	Path      string
	Name      string
	Size      int64
	ModTime   time.Time
	NumEvents int
}

// ListSessions finds session log files (plain or zstd) in dir.
func ListSessions(dir string) ([]SessionFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading session directory: %w", err)
	}

	var files []SessionFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), CompressedExt)
		if !strings.HasSuffix(name, "-session.jsonl") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}

		path := filepath.Join(dir, e.Name())
		events, _ := ReadEvents(path) //nolint:errcheck
		files = append(files, SessionFile{
			Path:      path,
			Name:      e.Name(),
			Size:      info.Size(),
			ModTime:   info.ModTime(),
			NumEvents: len(events),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})

	return files, nil
}

// ReadEvents parses all events from a session log file.
func ReadEvents(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening session file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	var r io.Reader = f
	if IsCompressed(path) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	var events []Event
	scanner := bufio.NewScanner(r)
	// Increase buffer for large lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			continue // skip malformed lines
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}
	return events, nil
}

// RenderTimeline writes a human-readable session timeline to w.
//
//nolint:errcheck // display-only writes; errors are not actionable
func RenderTimeline(w io.Writer, events []Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return
	}

	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(w, " SESSION TIMELINE")
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(w)

	start := events[0].Timestamp
	for _, ev := range events {
		ts := formatDuration(ev.Timestamp.Sub(start))

		switch ev.Type {
		case EventSessionStart:
			fmt.Fprintf(w, "[%s] 🚀 Session started  sources=%d  workers=%d\n",
				ts, jsonNumber(ev.Data["source_count"]), jsonNumber(ev.Data["workers"]))

		case EventEvaluationStart:
			src, _ := ev.Data["source"].(string) //nolint:errcheck
			fmt.Fprintf(w, "[%s] ▶  Evaluation %d/%d: %s\n",
				ts, jsonNumber(ev.Data["num"]), jsonNumber(ev.Data["total"]), src)

		case EventCriterionResult:
			criterion, _ := ev.Data["criterion"].(string) //nolint:errcheck
			passed, _ := ev.Data["passed"].(bool)         //nolint:errcheck
			fmt.Fprintf(w, "[%s]    %s %s\n", ts, mark(passed), criterion)

		case EventEvaluationEnd:
			src, _ := ev.Data["source"].(string) //nolint:errcheck
			passed, _ := ev.Data["passed"].(bool) //nolint:errcheck
			fmt.Fprintf(w, "[%s] %s  Evaluation complete: %s %d/%d (%dms)\n",
				ts, mark(passed), src, jsonNumber(ev.Data["score"]), jsonNumber(ev.Data["max_score"]),
				jsonNumber(ev.Data["duration_ms"]))

		case EventProcessInput:
			fmt.Fprintf(w, "[%s] 📥 Process input captured\n", ts)

		case EventError:
			msg, _ := ev.Data["message"].(string) //nolint:errcheck
			fmt.Fprintf(w, "[%s] ❌ Error: %s\n", ts, msg)

		case EventSessionEnd:
			fmt.Fprintf(w, "[%s] 🏁 Session complete  %d/%d passed  %d failed  %d errors  (%dms)\n",
				ts, jsonNumber(ev.Data["passed"]), jsonNumber(ev.Data["evaluated"]),
				jsonNumber(ev.Data["failed"]), jsonNumber(ev.Data["errors"]), jsonNumber(ev.Data["duration_ms"]))

		default:
			fmt.Fprintf(w, "[%s] %s %v\n", ts, ev.Type, ev.Data)
		}
	}
	fmt.Fprintln(w)
}

func mark(passed bool) string {
	if passed {
		return "✓"
	}
	return "✗"
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%6dms", d.Milliseconds())
	}
	return fmt.Sprintf("%6.1fs", d.Seconds())
}

// jsonNumber extracts a number from a JSON-decoded interface{} (float64 or json.Number).
func jsonNumber(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		i, _ := n.Int64() //nolint:errcheck
		return int(i)
	}
	return 0
}

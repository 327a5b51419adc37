// Package spinner draws a single-line progress indicator for batch
// evaluations.
package spinner

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const frameInterval = 80 * time.Millisecond

// Progress is an animated "Evaluating n/total" line. It is safe to call
// Advance from multiple goroutines.
type Progress struct {
	w     io.Writer
	total int
	done  atomic.Int64

	stop     chan struct{}
	cleared  chan struct{}
	stopOnce sync.Once
	width    int
}

// Start displays the progress line on w until Stop is called.
func Start(w io.Writer, total int) *Progress {
	p := &Progress{
		w:       w,
		total:   total,
		stop:    make(chan struct{}),
		cleared: make(chan struct{}),
	}
	go p.run()
	return p
}

// Advance records one finished item.
func (p *Progress) Advance() {
	p.done.Add(1)
}

// Done returns the number of finished items.
func (p *Progress) Done() int {
	return int(p.done.Load())
}

// Stop clears the line and waits for the animation to end.
func (p *Progress) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	<-p.cleared
}

func (p *Progress) message() string {
	return fmt.Sprintf("Evaluating %d/%d explanations", p.Done(), p.total)
}

//nolint:errcheck // display-only writes; errors are not actionable
func (p *Progress) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	i := 0
	for {
		select {
		case <-p.stop:
			if p.width > 0 {
				fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", p.width))
			}
			close(p.cleared)
			return
		case <-ticker.C:
			line := fmt.Sprintf("%s %s", frames[i%len(frames)], p.message())
			p.width = max(p.width, len(line))
			fmt.Fprintf(p.w, "\r%s", line)
			i++
		}
	}
}

package chat

import (
	"fmt"
	"io"
	"time"
)

// clearLine returns the cursor to column zero and erases the line.
const clearLine = "\r\033[K"

// Progress prints elapsed seconds on a single line while an answer is
// pending, one increment per interval. It is not safe for concurrent use;
// only its internal ticker runs on another goroutine.
type Progress struct {
	w        io.Writer
	interval time.Duration

	stop  chan struct{}
	done  chan struct{}
	ticks int
}

// NewProgress returns a Progress writing to w every interval.
func NewProgress(w io.Writer, interval time.Duration) *Progress {
	if interval <= 0 {
		interval = time.Second
	}
	return &Progress{w: w, interval: interval}
}

// Start begins ticking. Starting an already started indicator is a no-op.
func (p *Progress) Start() {
	if p.stop != nil {
		return
	}
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	p.ticks = 0
	go p.run(p.stop, p.done)
}

func (p *Progress) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.ticks++
			fmt.Fprintf(p.w, "%s....%ds", clearLine, p.ticks)
		}
	}
}

// Stop halts the ticker and clears the indicator line. It waits for the
// ticker goroutine to exit and is safe to call when not started.
func (p *Progress) Stop() {
	if p.stop == nil {
		return
	}
	close(p.stop)
	<-p.done
	p.stop, p.done = nil, nil
	if p.ticks > 0 {
		fmt.Fprint(p.w, clearLine)
	}
}

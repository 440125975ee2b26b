package compile

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// progressReporter prints periodic "progress stage=... processed=... total=..."
// lines while the aggregator runs. It implements aggregate.Progress.
type progressReporter struct {
	interval time.Duration
	w        io.Writer

	mu        sync.Mutex
	stageName string
	processed int
	total     int

	stop chan struct{}
	done chan struct{}
}

func newProgressReporter(interval time.Duration, w io.Writer) *progressReporter {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &progressReporter{interval: interval, w: w}
}

// start launches the ticker; close stops it and emits a final line.
func (p *progressReporter) start() {
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	ticker := time.NewTicker(p.interval)
	go func() {
		defer close(p.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.emit()
			case <-p.stop:
				return
			}
		}
	}()
}

func (p *progressReporter) close() {
	if p.stop == nil {
		return
	}
	close(p.stop)
	<-p.done
	p.emit()
}

func (p *progressReporter) Stage(name string, total int) {
	p.mu.Lock()
	p.stageName = name
	p.processed = 0
	p.total = total
	p.mu.Unlock()
	p.emit()
}

func (p *progressReporter) Advance(n int) {
	p.mu.Lock()
	p.processed += n
	p.mu.Unlock()
}

func (p *progressReporter) emit() {
	if p == nil || p.w == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stageName == "" {
		return
	}
	_, _ = fmt.Fprintf(p.w, "progress stage=%s processed=%d total=%d\n", p.stageName, p.processed, p.total)
}

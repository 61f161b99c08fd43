// Package parallel runs the software renderer's visible pass across
// horizontal bands of the viewport.
package parallel

import (
	"image"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of goroutines that execute band jobs.
//
// Pool is safe for concurrent use. Jobs submitted by one Run call finish
// before it returns.
type Pool struct {
	workers int
	jobs    chan func()
	wg      sync.WaitGroup
	running atomic.Bool
	once    sync.Once
}

// NewPool starts a pool of workers goroutines. If workers is 0 or
// negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: workers,
		jobs:    make(chan func(), workers*2),
	}
	p.running.Store(true)
	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		job()
	}
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Run calls fn once per band and waits for all calls. After Close, or
// with a single band, fn runs on the calling goroutine.
func (p *Pool) Run(bands []image.Rectangle, fn func(band image.Rectangle)) {
	if len(bands) == 0 {
		return
	}
	if len(bands) == 1 || p.workers == 1 || !p.running.Load() {
		for _, b := range bands {
			fn(b)
		}
		return
	}
	var done sync.WaitGroup
	done.Add(len(bands))
	for _, b := range bands {
		p.jobs <- func() {
			defer done.Done()
			fn(b)
		}
	}
	done.Wait()
}

// Close stops the workers. It is safe to call more than once.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.running.Store(false)
		close(p.jobs)
		p.wg.Wait()
	})
}

// Bands splits r into at most n horizontal bands of near-equal height.
// Empty bands are omitted.
func Bands(r image.Rectangle, n int) []image.Rectangle {
	h := r.Dy()
	if h <= 0 || r.Dx() <= 0 {
		return nil
	}
	n = max(1, min(n, h))
	out := make([]image.Rectangle, 0, n)
	for i := range n {
		y0 := r.Min.Y + h*i/n
		y1 := r.Min.Y + h*(i+1)/n
		if y1 > y0 {
			out = append(out, image.Rect(r.Min.X, y0, r.Max.X, y1))
		}
	}
	return out
}

package focus

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/ironsheep/image-focus/raster"
)

// ErrAborted means the computation wasn't executed because the request's
// context was done before a worker picked it up.
var ErrAborted = errors.New("focus: request aborted")

// Pool runs Metric computations on a fixed set of worker goroutines.
//
// Computations share nothing, so the pool only bounds how many run at once.
// A computation that has started always runs to completion.
type Pool struct {
	lib      raster.Library
	requests chan *request
	wg       sync.WaitGroup
}

type request struct {
	ctx      context.Context
	img      raster.Image
	fraction float64
	resp     chan<- response
}

type response struct {
	metric int
	err    error
}

// NewPool starts a pool of workers computing metrics with lib, with room for
// queueLen waiting requests. workers <= 0 means one worker per CPU.
func NewPool(lib raster.Library, workers, queueLen int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if queueLen < 0 {
		queueLen = 0
	}

	p := &Pool{lib: lib, requests: make(chan *request, queueLen)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Metric queues Metric(lib, img, fraction) and blocks until it is done.
//
// If ctx is done while waiting for queue space, or before a worker starts
// the request, Metric returns ErrAborted without computing anything. img
// must stay open until Metric returns. Metric must not be called after
// Close.
func (p *Pool) Metric(ctx context.Context, img raster.Image, fraction float64) (int, error) {
	rc := make(chan response, 1)
	r := &request{ctx: ctx, img: img, fraction: fraction, resp: rc}

	select {
	case p.requests <- r:
	case <-ctx.Done():
		return 0, ErrAborted
	}

	s := <-rc
	return s.metric, s.err
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for q := range p.requests {
		var s response
		if hasAborted(q.ctx) {
			Logger().Debug("focus: skipping aborted request")
			s.err = ErrAborted
		} else {
			s.metric, s.err = Metric(p.lib, q.img, q.fraction)
		}
		q.resp <- s
	}
}

// Close shuts down the pool and waits for queued work to finish.
func (p *Pool) Close() {
	close(p.requests)
	p.wg.Wait()
}

func hasAborted(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

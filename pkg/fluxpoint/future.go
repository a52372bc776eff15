package fluxpoint

import (
	"context"
	"io"
	"sync"

	"github.com/koios/fluxpoint/pkg/models"
)

// Future is the pending result of a queued call. It completes exactly once.
type Future struct {
	done   chan struct{}
	once   sync.Once
	resp   models.APIResponse
	err    error
	ctx    context.Context
	cancel context.CancelFunc
}

func newFuture(parent context.Context) *Future {
	ctx, cancel := context.WithCancel(parent)
	return &Future{
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

// complete stores the outcome. The future's context is released right away,
// or when the caller closes a returned image stream.
func (f *Future) complete(resp models.APIResponse, err error) {
	f.once.Do(func() {
		if img, ok := resp.(*models.GeneratedImage); ok {
			resp = models.NewGeneratedImage(&releaseOnClose{ReadCloser: img, release: f.cancel})
		} else {
			f.cancel()
		}
		f.resp = resp
		f.err = err
		close(f.done)
	})
}

// releaseOnClose cancels the request context once the stream is closed
type releaseOnClose struct {
	io.ReadCloser
	release context.CancelFunc
}

func (r *releaseOnClose) Close() error {
	defer r.release()
	return r.ReadCloser.Close()
}

// Done is closed once the result is available
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the call completes or ctx is done. A ctx expiry does not
// cancel the call itself.
func (f *Future) Wait(ctx context.Context) (models.APIResponse, error) {
	select {
	case <-f.done:
		return f.resp, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel aborts the call if it has not completed yet. A request already on
// the wire may still count against the remote quota.
func (f *Future) Cancel() {
	select {
	case <-f.done:
		// Completed: an open image stream belongs to the caller now
	default:
		f.cancel()
	}
}

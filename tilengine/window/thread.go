package window

import (
	"log/slog"
	"runtime"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/backend"
	"github.com/valerio/go-tilengine/tilengine/timing"
)

// CreateThread opens a window run by its own goroutine. The backend is
// initialized, updated and released on that goroutine's OS thread, which
// native window systems require.
func CreateThread(e *tilengine.Engine, b backend.Backend, flags Flags, opts ...Option) (*Window, error) {
	w, err := newWindow(e, b, flags, opts)
	if err != nil {
		return nil, err
	}
	w.threaded = true
	w.requests = make(chan int)
	w.redrawn = make(chan struct{}, 1)
	w.stopped = make(chan struct{})

	ready := make(chan error, 1)
	w.group.Go(func() error {
		defer close(w.stopped)
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		if err := w.init(); err != nil {
			ready <- err
			return err
		}
		ready <- nil
		return w.loop()
	})

	if err := <-ready; err != nil {
		w.group.Wait()
		return nil, err
	}
	return w, nil
}

// loop presents requested frames and keeps polling input between them.
func (w *Window) loop() error {
	poll := timing.NewTickerLimiter(timing.DefaultFPS)
	defer poll.Stop()

	for {
		select {
		case frame, ok := <-w.requests:
			if !ok {
				return w.backend.Cleanup()
			}
			if err := w.present(frame); err != nil {
				slog.Error("window present failed", "error", err)
				w.active.Store(false)
			}
			select {
			case w.redrawn <- struct{}{}:
			default:
			}

		case <-poll.C():
			events, err := w.backend.Update(nil)
			if err != nil {
				slog.Error("window update failed", "error", err)
				w.active.Store(false)
			}
			w.handle(events)
		}
	}
}

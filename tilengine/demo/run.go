package demo

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/window"
)

// Run sets up s on e and drives it on w until the window closes. The scene
// is closed on return.
func Run(e *tilengine.Engine, w *window.Window, s Scene) (err error) {
	if err := s.Setup(e); err != nil {
		_ = s.Close()
		return fmt.Errorf("setup %s: %w", s.Name(), err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", s.Name(), cerr)
		}
	}()

	if h, ok := s.(EventHandler); ok {
		w.SetEventCallback(h.HandleEvent)
		defer w.SetEventCallback(nil)
	}
	w.SetTitle(fmt.Sprintf("tilengine %s: %s", s.Name(), s.Description()))
	slog.Info("running demo", "scene", s.Name())

	for w.Process() {
		if err := s.Update(e.Frame()+1, w); err != nil {
			return fmt.Errorf("update %s: %w", s.Name(), err)
		}
		if err := w.DrawFrame(0); err != nil {
			return fmt.Errorf("draw %s: %w", s.Name(), err)
		}
		w.WaitRedraw()
	}
	slog.Info("demo finished", "scene", s.Name(), "frames", e.Frame())
	return nil
}

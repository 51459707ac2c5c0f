package demo_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/backend"
	"github.com/valerio/go-tilengine/tilengine/backend/headless"
	"github.com/valerio/go-tilengine/tilengine/demo"
)

func BenchmarkScenesHeadless(b *testing.B) {
	const frames = 60

	for _, name := range demo.Names() {
		b.Run(name, func(b *testing.B) {
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			e, err := tilengine.Init(demo.BenchWidth, demo.BenchHeight,
				demo.Layers, demo.Sprites, demo.Animations, tilengine.WithLogger(logger))
			if err != nil {
				b.Fatalf("Failed to create engine: %v", err)
			}
			defer e.Deinit()

			s, err := demo.New(name)
			if err != nil {
				b.Fatal(err)
			}
			if err := s.Setup(e); err != nil {
				b.Fatalf("Failed to set up scene: %v", err)
			}
			defer s.Close()

			// large frame count so the backend never asks to quit
			hBackend := headless.New(frames*(b.N+1), headless.SnapshotConfig{})
			if err := hBackend.Init(backend.Config{Title: "Benchmark", Width: demo.BenchWidth, Height: demo.BenchHeight}); err != nil {
				b.Fatalf("Failed to initialize backend: %v", err)
			}
			defer hBackend.Cleanup()

			b.ResetTimer()
			b.ReportAllocs()

			frame := 0
			for i := 0; i < b.N; i++ {
				for f := 0; f < frames; f++ {
					frame++
					if err := s.Update(frame, controls{}); err != nil {
						b.Fatal(err)
					}
					if err := e.UpdateFrame(frame); err != nil {
						b.Fatal(err)
					}
					if _, err := hBackend.Update(e.FrameBuffer()); err != nil {
						b.Fatalf("Backend update failed: %v", err)
					}
				}
			}
			b.ReportMetric(float64(frames*demo.BenchWidth*demo.BenchHeight)/1e6, "Mpixels/op")
		})
	}
}

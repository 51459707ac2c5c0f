package main

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/demo"
)

// benchmark renders frames frames per mode on contexts independent engines
// at once and returns the results of each engine.
func benchmark(frames, contexts int) ([][]demo.BenchResult, error) {
	if frames <= 0 || contexts <= 0 {
		return nil, fmt.Errorf("frames and contexts must be positive, got %d and %d", frames, contexts)
	}
	results := make([][]demo.BenchResult, contexts)
	var g errgroup.Group
	for i := 0; i < contexts; i++ {
		g.Go(func() error {
			e, err := tilengine.Init(demo.BenchWidth, demo.BenchHeight,
				demo.BenchLayers, demo.BenchSprites, 0,
				tilengine.WithLogger(slog.Default()))
			if err != nil {
				return err
			}
			defer e.Deinit()

			b, err := demo.NewBench(e)
			if err != nil {
				return err
			}
			defer b.Close()

			results[i], err = b.Run(frames, func(r demo.BenchResult) {
				slog.Debug("benchmark mode done", "context", i, "mode", r.Mode, "elapsed", r.Elapsed)
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runBench(c *cli.Context) error {
	frames, contexts := c.Int("frames"), c.Int("contexts")
	fmt.Printf("Tilengine benchmark tool, version %s\n", versionString(tilengine.Version))
	fmt.Printf("%dx%d, %d frames per mode, %d context(s)\n\n", demo.BenchWidth, demo.BenchHeight, frames, contexts)

	results, err := benchmark(frames, contexts)
	if err != nil {
		return err
	}
	for m, mode := range demo.BenchModes() {
		var total float64
		for _, r := range results {
			total += r[m].MPixels()
		}
		fmt.Printf("%-22s %9.3f Mpixels/s\n", mode, total)
	}
	return nil
}

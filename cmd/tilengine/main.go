package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/valerio/go-tilengine/tilengine"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		slog.Error("Error running tilengine", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "tilengine"
	app.Description = "A 2D scanline tile and sprite engine"
	app.Usage = "tilengine <command> [options]"
	app.Version = versionString(tilengine.Version)
	app.Commands = []cli.Command{
		{
			Name:      "demo",
			Usage:     "Run a procedural demo scene",
			ArgsUsage: "<scene>",
			Flags:     windowFlags,
			Action:    runDemo,
		},
		{
			Name:      "world",
			Usage:     "Scroll a Tiled map from the asset path or a resource pack",
			ArgsUsage: "<map.tmx>",
			Flags:     append(append([]cli.Flag{}, assetFlags...), windowFlags...),
			Action:    runWorld,
		},
		{
			Name:      "tiles",
			Usage:     "Save the tiles of a tileset as a PNG sheet",
			ArgsUsage: "<tileset.tsx>",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "Output PNG file",
					Value: "tiles.png",
				},
				cli.IntFlag{
					Name:  "per-row",
					Usage: "Tiles per sheet row",
					Value: 16,
				},
				cli.StringFlag{
					Name:  "config, c",
					Usage: "YAML settings file; flags override its values",
				},
			}, assetFlags...),
			Action: runTiles,
		},
		{
			Name:  "bench",
			Usage: "Measure rendering throughput in Mpixels/s",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "frames",
					Usage: "Frames rendered per mode",
					Value: 1000,
				},
				cli.IntFlag{
					Name:  "contexts",
					Usage: "Number of engines rendering concurrently",
					Value: 1,
				},
			},
			Action: runBench,
		},
		{
			Name:      "pack",
			Usage:     "Build a resource pack from files and directories",
			ArgsUsage: "<file or directory>...",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "Output pack file",
					Value: "assets.pak",
				},
				cli.StringFlag{
					Name:  "key",
					Usage: "Passphrase used to encrypt the pack (empty = unencrypted)",
				},
			},
			Action: runPack,
		},
		{
			Name:   "info",
			Usage:  "Print the engine version, error codes, scenes and benchmark modes",
			Action: runInfo,
		},
	}
	return app
}

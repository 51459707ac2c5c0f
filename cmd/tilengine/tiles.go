package main

import (
	"errors"
	"image/png"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/valerio/go-tilengine/tilengine/config"
	"github.com/valerio/go-tilengine/tilengine/debug"
)

// dumpTiles loads a tileset through the engine loader and writes its tile
// sheet to out.
func dumpTiles(cfg *config.Config, name, out string, perRow int) error {
	e, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer e.Deinit()
	defer e.CloseResourcePack()

	ts, err := e.LoadTileset(name)
	if err != nil {
		return err
	}
	defer ts.Delete()

	img, err := debug.TileSheet(ts, perRow)
	if err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	slog.Info("tile sheet written", "tileset", name, "tiles", ts.NumTiles(), "file", out)
	return f.Close()
}

func runTiles(c *cli.Context) error {
	if c.NArg() == 0 {
		cli.ShowCommandHelp(c, "tiles")
		return errors.New("no tileset given")
	}
	cfg, err := settings(c)
	if err != nil {
		return err
	}
	return dumpTiles(cfg, c.Args().Get(0), c.String("out"), c.Int("per-row"))
}

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/valerio/go-tilengine/tilengine/loader"
)

// buildPack writes a resource pack holding paths to out. Directories are
// added recursively with names relative to the directory; files keep their
// base name.
func buildPack(out, key string, paths []string) (int, error) {
	w := loader.NewPackWriter(key)
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return 0, err
		}
		if info.IsDir() {
			if err := w.AddDir(p); err != nil {
				return 0, fmt.Errorf("add %s: %w", p, err)
			}
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return 0, err
		}
		w.Add(filepath.Base(p), data)
	}

	f, err := os.Create(out)
	if err != nil {
		return 0, err
	}
	if _, err := w.WriteTo(f); err != nil {
		f.Close()
		return 0, fmt.Errorf("write pack: %w", err)
	}
	return len(w.Names()), f.Close()
}

func runPack(c *cli.Context) error {
	if c.NArg() == 0 {
		cli.ShowCommandHelp(c, "pack")
		return errors.New("no input files given")
	}
	out := c.String("out")
	n, err := buildPack(out, c.String("key"), c.Args())
	if err != nil {
		return err
	}
	slog.Info("resource pack written", "file", out, "entries", n, "encrypted", c.String("key") != "")
	return nil
}

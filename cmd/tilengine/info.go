package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/demo"
	"github.com/valerio/go-tilengine/tilengine/errcode"
)

// versionString formats a packed 0x00MMmmpp version.
func versionString(v int) string {
	return fmt.Sprintf("%d.%d.%d", v>>16&0xFF, v>>8&0xFF, v&0xFF)
}

func writeInfo(out io.Writer) {
	fmt.Fprintf(out, "Tilengine %s\n\n", versionString(tilengine.Version))

	fmt.Fprintln(out, "Error codes:")
	for _, code := range errcode.Codes() {
		fmt.Fprintf(out, "  %2d  %s\n", int(code), code)
	}

	fmt.Fprintln(out, "\nDemo scenes:")
	for _, name := range demo.Names() {
		s, _ := demo.New(name)
		fmt.Fprintf(out, "  %-12s %s\n", name, s.Description())
	}

	fmt.Fprintf(out, "\nBenchmark modes: %s\n", strings.Join(demo.BenchModes(), ", "))
}

func runInfo(c *cli.Context) error {
	writeInfo(os.Stdout)
	return nil
}

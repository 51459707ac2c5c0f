// Package debug holds tooling shared by the backends and the CLI: PNG
// snapshots, frame digests, test patterns and the statistics overlay.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/valerio/go-tilengine/tilengine/display"
	"github.com/valerio/go-tilengine/tilengine/video"
)

// Image converts the visible part of a frame buffer to an opaque image.
func Image(frame *video.FrameBuffer) *image.NRGBA {
	w, h := frame.Width(), frame.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := frame.Row(y)
		pix := img.Pix[y*img.Stride:]
		for x, c := range row {
			r, g, b, _ := display.UnpackRGBA(c)
			i := x * display.BytesPerPixel
			pix[i] = r
			pix[i+1] = g
			pix[i+2] = b
			pix[i+3] = display.FullAlpha
		}
	}
	return img
}

// TakeSnapshot saves the frame to directory, the working directory if
// empty, logging failures. It returns the file path, empty on failure.
func TakeSnapshot(frame *video.FrameBuffer, baseName, directory string) string {
	if frame == nil {
		slog.Warn("No frame data available for snapshot")
		return ""
	}
	path, err := SaveFramePNGToDir(frame, baseName, directory)
	if err != nil {
		slog.Error("Failed to save snapshot", "error", err)
		return ""
	}
	return path
}

// SaveFramePNGToDir saves a framebuffer as PNG with timestamp to a specific
// directory, the working directory if empty. It returns the file path.
func SaveFramePNGToDir(frame *video.FrameBuffer, baseName, directory string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.png", baseName, timestamp)

	outputDir := directory
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		outputDir = cwd
	}

	filePath := filepath.Join(outputDir, filename)
	if err := SaveFramePNG(frame, filePath); err != nil {
		return "", err
	}
	slog.Info("Snapshot saved", "path", filePath, "size", fmt.Sprintf("%dx%d", frame.Width(), frame.Height()), "format", "PNG")
	return filePath, nil
}

// SaveFramePNG writes the frame to path as a PNG file.
func SaveFramePNG(frame *video.FrameBuffer, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, Image(frame)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

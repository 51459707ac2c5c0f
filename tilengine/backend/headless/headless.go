package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/valerio/go-tilengine/tilengine/backend"
	"github.com/valerio/go-tilengine/tilengine/debug"
	"github.com/valerio/go-tilengine/tilengine/input/event"
	"github.com/valerio/go-tilengine/tilengine/video"
)

// Backend implements the Backend interface for automated testing and batch processing
type Backend struct {
	config         backend.Config
	frameCount     int
	maxFrames      int
	snapshotConfig SnapshotConfig
	digest         uint64
	snapshots      []string

	mu      sync.Mutex
	pending []backend.InputEvent
}

// SnapshotConfig holds configuration for frame snapshots
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N frames
	Directory string // Directory to save snapshots
	Name      string // Scene name for snapshot filenames
}

// New creates a headless backend that requests shutdown after maxFrames
// presented frames. Zero runs until the caller stops.
func New(maxFrames int, snapshotConfig SnapshotConfig) *Backend {
	return &Backend{
		maxFrames:      maxFrames,
		snapshotConfig: snapshotConfig,
	}
}

func (h *Backend) Init(config backend.Config) error {
	h.config = config

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"width", config.Width,
		"height", config.Height,
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory)

	return nil
}

// Inject queues events returned by the next Update, standing in for a user.
func (h *Backend) Inject(events ...backend.InputEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = append(h.pending, events...)
}

// Update processes a frame and handles snapshots
func (h *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	h.mu.Lock()
	events := h.pending
	h.pending = nil
	h.mu.Unlock()

	if frame == nil {
		return events, nil
	}

	h.frameCount++
	h.digest = debug.FrameDigest(frame)

	// Save snapshot if needed
	if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval == 0 {
		h.saveSnapshot(frame)
	}

	// Log progress periodically
	if h.frameCount%60 == 0 {
		slog.Debug("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	// Check if we've reached the target frame count
	if h.maxFrames > 0 && h.frameCount >= h.maxFrames {
		// Save final snapshot if enabled and we haven't just saved one
		if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval != 0 {
			h.saveSnapshot(frame)
		}

		slog.Info("Headless execution completed",
			"frames", h.frameCount,
			"digest", debug.FormatDigest(h.digest),
			"snapshots", len(h.snapshots))

		// Signal completion via close event
		events = append(events, backend.InputEvent{Type: event.Close})
	}

	return events, nil
}

func (h *Backend) Cleanup() error {
	return nil
}

// Frames returns the number of presented frames.
func (h *Backend) Frames() int { return h.frameCount }

// Digest returns the digest of the last presented frame.
func (h *Backend) Digest() uint64 { return h.digest }

// Snapshots returns the paths of the saved snapshots.
func (h *Backend) Snapshots() []string { return h.snapshots }

// CreateSnapshotConfig creates a snapshot configuration from CLI parameters
func CreateSnapshotConfig(interval int, directory, name string) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
	}

	if !config.Enabled {
		return config, nil
	}

	// Set up snapshot directory
	if directory == "" {
		tempDir, err := os.MkdirTemp("", "tilengine-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = directory
	}

	config.Name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if config.Name == "" || config.Name == "." {
		config.Name = "frame"
	}

	return config, nil
}

// saveSnapshot saves a PNG snapshot for the current frame
func (h *Backend) saveSnapshot(frame *video.FrameBuffer) {
	path := filepath.Join(h.snapshotConfig.Directory, fmt.Sprintf("%s_frame_%05d.png", h.snapshotConfig.Name, h.frameCount))

	if err := debug.SaveFramePNG(frame, path); err != nil {
		slog.Error("Failed to save PNG snapshot", "frame", h.frameCount, "error", err)
		return
	}
	h.snapshots = append(h.snapshots, path)
}

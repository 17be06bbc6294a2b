// Package timelapse compiles each camera's current-day snapshots into a
// single per-day video, refreshed in place while the day is current.
package timelapse

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raoulx24/unifi-timelapse/internal/encoder"
	"github.com/raoulx24/unifi-timelapse/internal/layout"
)

type Assembler struct {
	enc       encoder.Encoder
	paths     layout.Paths
	minFrames int
	log       *slog.Logger
	now       func() time.Time
}

func New(enc encoder.Encoder, paths layout.Paths, minFrames int, log *slog.Logger) *Assembler {
	return &Assembler{
		enc:       enc,
		paths:     paths,
		minFrames: minFrames,
		log:       log,
		now:       time.Now,
	}
}

// UpdateToday regenerates the current-day video for every camera that has
// captured at least minFrames frames today. Encoder failures are logged and
// leave the previous artifact untouched; the next tick tries again.
func (a *Assembler) UpdateToday(ctx context.Context) {
	today := a.now()

	entries, err := os.ReadDir(a.paths.ImagesDir())
	if err != nil {
		a.log.Error("failed to list camera directories", "error", err)
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		camera := entry.Name()

		dayDir := a.paths.DayDir(camera, today)
		frames, err := countFrames(dayDir)
		if err != nil {
			// No folder for today, nothing captured yet.
			continue
		}
		if frames < a.minFrames {
			a.log.Debug("skipping timelapse, not enough frames",
				"camera", camera, "frames", frames, "min", a.minFrames)
			continue
		}

		if err := os.MkdirAll(a.paths.CameraVideoDir(camera), 0o755); err != nil {
			a.log.Error("failed to create video directory", "camera", camera, "error", err)
			continue
		}

		out := a.paths.VideoFile(camera, today)
		glob := filepath.Join(dayDir, "*.jpg")
		if err := a.enc.Encode(ctx, glob, out); err != nil {
			a.log.Error("timelapse encode failed", "camera", camera, "error", err)
			continue
		}
		a.log.Info("generated timelapse", "camera", camera, "file", out, "frames", frames)
	}
}

func countFrames(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jpg") {
			n++
		}
	}
	return n, nil
}

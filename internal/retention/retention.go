// Package retention deletes aged images, videos, and log content under
// independent day-count windows.
package retention

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/raoulx24/unifi-timelapse/internal/layout"
)

const maxLogSize = 10 << 20 // 10 MiB

type Sweeper struct {
	paths     layout.Paths
	imageDays int
	videoDays int
	log       *slog.Logger
	now       func() time.Time
}

func New(paths layout.Paths, imageDays, videoDays int, log *slog.Logger) *Sweeper {
	return &Sweeper{
		paths:     paths,
		imageDays: imageDays,
		videoDays: videoDays,
		log:       log,
		now:       time.Now,
	}
}

// Sweep runs the three passes. Each entry is handled independently: an
// unparseable name or a filesystem error never aborts the rest of the sweep.
func (s *Sweeper) Sweep() {
	now := s.now()
	s.sweepImages(now)
	s.sweepVideos(now)
	s.sweepLog(now)
}

// sweepImages removes per-camera date folders older than the image window.
// Non-directory children (latest.jpg) and folders whose names do not parse
// as a date are foreign and left untouched.
func (s *Sweeper) sweepImages(now time.Time) {
	cameras, err := os.ReadDir(s.paths.ImagesDir())
	if err != nil {
		s.log.Error("image sweep: cannot list cameras", "error", err)
		return
	}

	for _, cam := range cameras {
		if !cam.IsDir() {
			continue
		}
		camDir := filepath.Join(s.paths.ImagesDir(), cam.Name())
		days, err := os.ReadDir(camDir)
		if err != nil {
			s.log.Error("image sweep: cannot list camera folder", "camera", cam.Name(), "error", err)
			continue
		}
		for _, d := range days {
			if !d.IsDir() {
				continue
			}
			day, ok := layout.ParseDay(d.Name())
			if !ok {
				continue
			}
			if ageDays(now, day) <= s.imageDays {
				continue
			}
			target := filepath.Join(camDir, d.Name())
			if err := os.RemoveAll(target); err != nil {
				s.log.Error("image sweep: delete failed", "path", target, "error", err)
				continue
			}
			s.log.Info("deleted old images", "path", target)
		}
	}
}

// sweepVideos removes timelapse files whose embedded date is older than the
// video window. Files that do not match the timelapse naming are skipped.
func (s *Sweeper) sweepVideos(now time.Time) {
	cameras, err := os.ReadDir(s.paths.VideosDir())
	if err != nil {
		s.log.Error("video sweep: cannot list cameras", "error", err)
		return
	}

	for _, cam := range cameras {
		if !cam.IsDir() {
			continue
		}
		camDir := filepath.Join(s.paths.VideosDir(), cam.Name())
		files, err := os.ReadDir(camDir)
		if err != nil {
			s.log.Error("video sweep: cannot list camera folder", "camera", cam.Name(), "error", err)
			continue
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			day, ok := layout.ParseVideoDay(f.Name())
			if !ok {
				continue
			}
			if ageDays(now, day) <= s.videoDays {
				continue
			}
			target := filepath.Join(camDir, f.Name())
			if err := os.Remove(target); err != nil {
				s.log.Error("video sweep: delete failed", "path", target, "error", err)
				continue
			}
			s.log.Info("deleted old video", "path", target)
		}
	}
}

// sweepLog truncates the log file in place once it is older than the image
// window or larger than 10 MiB. Truncation, not rotation: old content is
// discarded in exchange for bounded disk use.
func (s *Sweeper) sweepLog(now time.Time) {
	path := s.paths.LogFile()
	info, err := os.Stat(path)
	if err != nil {
		return
	}

	tooOld := ageDays(now, info.ModTime()) > s.imageDays
	tooBig := info.Size() > maxLogSize
	if !tooOld && !tooBig {
		return
	}
	if err := os.Truncate(path, 0); err != nil {
		s.log.Error("log sweep: truncate failed", "path", path, "error", err)
		return
	}
	s.log.Info("truncated log file", "path", path, "aged", tooOld, "oversized", tooBig)
}

// ageDays is the whole-calendar-day difference between now and t, ignoring
// time of day: a file dated yesterday is 1 day old at any hour.
func ageDays(now, t time.Time) int {
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b).Hours() / 24)
}

// Package capture implements the snapshot capture cycle: one frame per
// camera, written to the timestamped history path and to latest.jpg.
package capture

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/raoulx24/unifi-timelapse/internal/layout"
	"github.com/raoulx24/unifi-timelapse/internal/protect"
)

// Source resolves cameras and fetches frames. Satisfied by *protect.Client.
type Source interface {
	ListCameras(ctx context.Context) []protect.Camera
	FetchSnapshot(ctx context.Context, cameraID string) ([]byte, error)
}

type Service struct {
	src   Source
	paths layout.Paths
	log   *slog.Logger
	now   func() time.Time
}

func New(src Source, paths layout.Paths, log *slog.Logger) *Service {
	return &Service{
		src:   src,
		paths: paths,
		log:   log,
		now:   time.Now,
	}
}

// Run executes one capture cycle. Per-camera failures are logged and never
// abort the remaining cameras; cameras are processed in directory order.
func (s *Service) Run(ctx context.Context) {
	cams := s.src.ListCameras(ctx)
	if len(cams) == 0 {
		return
	}

	// One timestamp for the whole cycle.
	ts := s.now()

	for _, cam := range cams {
		if err := s.captureOne(ctx, cam, ts); err != nil {
			s.log.Error("snapshot failed", "camera", cam.Name, "error", err)
			continue
		}
		s.log.Debug("snapshot saved", "camera", cam.SafeName())
	}
}

func (s *Service) captureOne(ctx context.Context, cam protect.Camera, ts time.Time) error {
	name := cam.SafeName()

	if err := os.MkdirAll(s.paths.DayDir(name, ts), 0o755); err != nil {
		return err
	}

	data, err := s.src.FetchSnapshot(ctx, cam.ID)
	if err != nil {
		return err
	}

	// History first, then latest. History files are immutable once written;
	// latest always holds the most recent successful frame.
	if err := os.WriteFile(s.paths.HistoryFile(name, ts), data, 0o644); err != nil {
		return err
	}
	return os.WriteFile(s.paths.LatestFile(name), data, 0o644)
}

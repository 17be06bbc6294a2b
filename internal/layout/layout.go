// Package layout owns the on-disk directory structure:
//
//	<base>/images/<camera>/<YYYY-MM-DD>/<HH-MM-SS>.jpg
//	<base>/images/<camera>/latest.jpg
//	<base>/videos/<camera>/timelapse_<YYYY-MM-DD>.mp4
//	<base>/logs/app.log
package layout

import (
	"os"
	"path/filepath"
	"time"
)

const (
	DayFormat  = "2006-01-02"
	TimeFormat = "15-04-05"

	VideoPrefix = "timelapse_"
	VideoSuffix = ".mp4"

	LatestName  = "latest.jpg"
	LogFileName = "app.log"
)

// Paths derives every pipeline path from a single base directory.
type Paths struct {
	Base string
}

func (p Paths) ImagesDir() string { return filepath.Join(p.Base, "images") }
func (p Paths) VideosDir() string { return filepath.Join(p.Base, "videos") }
func (p Paths) LogsDir() string   { return filepath.Join(p.Base, "logs") }

func (p Paths) LogFile() string { return filepath.Join(p.LogsDir(), LogFileName) }

// CameraDir is the image root for one camera.
func (p Paths) CameraDir(camera string) string {
	return filepath.Join(p.ImagesDir(), camera)
}

// DayDir is the history folder for one camera and one calendar day.
func (p Paths) DayDir(camera string, day time.Time) string {
	return filepath.Join(p.CameraDir(camera), day.Format(DayFormat))
}

// HistoryFile is the immutable timestamped artifact path.
func (p Paths) HistoryFile(camera string, ts time.Time) string {
	return filepath.Join(p.DayDir(camera, ts), ts.Format(TimeFormat)+".jpg")
}

// LatestFile is the mutable most-recent-frame artifact path.
func (p Paths) LatestFile(camera string) string {
	return filepath.Join(p.CameraDir(camera), LatestName)
}

// CameraVideoDir is the timelapse output folder for one camera.
func (p Paths) CameraVideoDir(camera string) string {
	return filepath.Join(p.VideosDir(), camera)
}

// VideoFile is the per-camera per-day timelapse artifact path.
func (p Paths) VideoFile(camera string, day time.Time) string {
	return filepath.Join(p.CameraVideoDir(camera), VideoPrefix+day.Format(DayFormat)+VideoSuffix)
}

// EnsureBase creates the top-level tree. Failure here is fatal to startup.
func (p Paths) EnsureBase() error {
	for _, dir := range []string{p.ImagesDir(), p.VideosDir(), p.LogsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// ParseDay interprets a directory name as a calendar day. Names that do not
// parse belong to something else and are left alone by the sweeper.
func ParseDay(name string) (time.Time, bool) {
	t, err := time.Parse(DayFormat, name)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseVideoDay extracts the embedded day from a timelapse file name.
func ParseVideoDay(name string) (time.Time, bool) {
	if len(name) < len(VideoPrefix)+len(VideoSuffix) {
		return time.Time{}, false
	}
	if name[:len(VideoPrefix)] != VideoPrefix || name[len(name)-len(VideoSuffix):] != VideoSuffix {
		return time.Time{}, false
	}
	return ParseDay(name[len(VideoPrefix) : len(name)-len(VideoSuffix)])
}

// Package encoder wraps the external video encoder as an opaque transform:
// an ordered set of JPEG files in, one MP4 out.
package encoder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// Encoder turns a glob of same-directory JPEG files into a video at outPath.
// On failure any previous file at outPath must be left untouched.
type Encoder interface {
	Encode(ctx context.Context, inputGlob, outPath string) error
}

type Options struct {
	Framerate int
	CRF       int
	Preset    string
	Timeout   time.Duration // hard subprocess limit, 0 = unbounded
}

// FFmpeg shells out to ffmpeg. The encode writes to a temp sibling and is
// renamed into place only on success, so a failed or killed run never
// clobbers the previous artifact.
type FFmpeg struct {
	opts Options
	log  *slog.Logger
}

func NewFFmpeg(opts Options, log *slog.Logger) *FFmpeg {
	return &FFmpeg{opts: opts, log: log}
}

func (f *FFmpeg) Encode(ctx context.Context, inputGlob, outPath string) error {
	if f.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.Timeout)
		defer cancel()
	}

	tmp := filepath.Join(filepath.Dir(outPath), ".tmp-"+filepath.Base(outPath))
	f.log.Debug("running encoder", "input", inputGlob, "output", outPath)

	cmd := exec.CommandContext(ctx, "ffmpeg", f.args(inputGlob, tmp)...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("ffmpeg: %w: %s", err, tail(stderr.Bytes(), 2048))
	}
	if err := os.Rename(tmp, outPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalizing video: %w", err)
	}
	return nil
}

func (f *FFmpeg) args(inputGlob, outPath string) []string {
	return []string{
		"-y",
		"-framerate", strconv.Itoa(f.opts.Framerate),
		"-pattern_type", "glob",
		"-i", inputGlob,
		"-c:v", "libx264",
		"-crf", strconv.Itoa(f.opts.CRF),
		"-preset", f.opts.Preset,
		"-pix_fmt", "yuv420p",
		outPath,
	}
}

// tail returns the last n bytes of diagnostic output.
func tail(b []byte, n int) string {
	if len(b) > n {
		b = b[len(b)-n:]
	}
	return string(bytes.TrimSpace(b))
}

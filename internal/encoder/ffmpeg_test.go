package encoder

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestArgs(t *testing.T) {
	f := NewFFmpeg(Options{Framerate: 30, CRF: 23, Preset: "medium"}, testLogger())
	args := f.args("/imgs/*.jpg", "/out/v.mp4")

	want := []string{
		"-y",
		"-framerate", "30",
		"-pattern_type", "glob",
		"-i", "/imgs/*.jpg",
		"-c:v", "libx264",
		"-crf", "23",
		"-preset", "medium",
		"-pix_fmt", "yuv420p",
		"/out/v.mp4",
	}
	if len(args) != len(want) {
		t.Fatalf("args = %v", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestTail(t *testing.T) {
	if got := tail([]byte("  short  "), 100); got != "short" {
		t.Errorf("tail = %q", got)
	}
	long := strings.Repeat("a", 50) + "END"
	if got := tail([]byte(long), 3); got != "END" {
		t.Errorf("tail = %q", got)
	}
}

// A failing encode (here: nothing to encode, or no ffmpeg on PATH) must
// leave a pre-existing output file byte-identical and no temp file behind.
func TestEncodeFailurePreservesOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "timelapse_2024-01-01.mp4")
	if err := os.WriteFile(out, []byte("OLD"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewFFmpeg(Options{Framerate: 30, CRF: 23, Preset: "medium", Timeout: 5 * time.Second}, testLogger())
	emptyGlob := filepath.Join(t.TempDir(), "*.jpg")

	if err := f.Encode(context.Background(), emptyGlob, out); err == nil {
		t.Fatal("expected encode to fail")
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "OLD" {
		t.Errorf("output modified by failed encode: %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

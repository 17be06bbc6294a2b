package layout

import (
	"path/filepath"
	"testing"
	"time"
)

func TestPaths(t *testing.T) {
	p := Paths{Base: "/data"}
	ts := time.Date(2024, 6, 1, 14, 30, 5, 0, time.UTC)

	if got, want := p.HistoryFile("Front_Door", ts), filepath.Join("/data", "images", "Front_Door", "2024-06-01", "14-30-05.jpg"); got != want {
		t.Errorf("HistoryFile = %q, want %q", got, want)
	}
	if got, want := p.LatestFile("Front_Door"), filepath.Join("/data", "images", "Front_Door", "latest.jpg"); got != want {
		t.Errorf("LatestFile = %q, want %q", got, want)
	}
	if got, want := p.VideoFile("Front_Door", ts), filepath.Join("/data", "videos", "Front_Door", "timelapse_2024-06-01.mp4"); got != want {
		t.Errorf("VideoFile = %q, want %q", got, want)
	}
	if got, want := p.LogFile(), filepath.Join("/data", "logs", "app.log"); got != want {
		t.Errorf("LogFile = %q, want %q", got, want)
	}
}

func TestParseDay(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		day, ok := ParseDay("2024-01-31")
		if !ok {
			t.Fatal("expected parse to succeed")
		}
		if day.Year() != 2024 || day.Month() != time.January || day.Day() != 31 {
			t.Errorf("got %v", day)
		}
	})

	t.Run("foreign names rejected", func(t *testing.T) {
		for _, name := range []string{"latest.jpg", "notadate", "2024-13-01", "2024-01", ""} {
			if _, ok := ParseDay(name); ok {
				t.Errorf("ParseDay(%q) = ok, want rejection", name)
			}
		}
	})
}

func TestParseVideoDay(t *testing.T) {
	t.Run("valid name", func(t *testing.T) {
		day, ok := ParseVideoDay("timelapse_2024-01-01.mp4")
		if !ok {
			t.Fatal("expected parse to succeed")
		}
		if got := day.Format(DayFormat); got != "2024-01-01" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("foreign names rejected", func(t *testing.T) {
		for _, name := range []string{
			"timelapse_.mp4",
			"timelapse_notadate.mp4",
			"other_2024-01-01.mp4",
			"timelapse_2024-01-01.avi",
			".tmp-timelapse_2024-01-01.mp4",
			"x",
		} {
			if _, ok := ParseVideoDay(name); ok {
				t.Errorf("ParseVideoDay(%q) = ok, want rejection", name)
			}
		}
	})
}

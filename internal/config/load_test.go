package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("UNIFI_HOST", "protect.local")
	t.Setenv("UNIFI_API_KEY", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DataDir != "/data" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Snapshot.IntervalSeconds != 60 {
		t.Errorf("IntervalSeconds = %d", cfg.Snapshot.IntervalSeconds)
	}
	if cfg.Retention.ImageDays != 3 || cfg.Retention.VideoDays != 30 {
		t.Errorf("retention = %d/%d", cfg.Retention.ImageDays, cfg.Retention.VideoDays)
	}
	if cfg.Timelapse.Framerate != 30 || cfg.Timelapse.MinFrames != 5 {
		t.Errorf("timelapse = %+v", cfg.Timelapse)
	}
	if cfg.Timelapse.EncodeTimeout != 10*time.Minute {
		t.Errorf("EncodeTimeout = %v", cfg.Timelapse.EncodeTimeout)
	}
	if cfg.InsecureTLS {
		t.Error("InsecureTLS should default to off")
	}
	if len(cfg.CameraNames) != 0 {
		t.Errorf("CameraNames = %v", cfg.CameraNames)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SNAPSHOT_INTERVAL", "15")
	t.Setenv("CAMERA_NAMES", "Front Door,Garage")
	t.Setenv("RETENTION_DAYS_IMAGES", "7")
	t.Setenv("TLS_INSECURE_SKIP_VERIFY", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Snapshot.IntervalSeconds != 15 {
		t.Errorf("IntervalSeconds = %d", cfg.Snapshot.IntervalSeconds)
	}
	if len(cfg.CameraNames) != 2 || cfg.CameraNames[0] != "Front Door" || cfg.CameraNames[1] != "Garage" {
		t.Errorf("CameraNames = %v", cfg.CameraNames)
	}
	if cfg.Retention.ImageDays != 7 {
		t.Errorf("ImageDays = %d", cfg.Retention.ImageDays)
	}
	if !cfg.InsecureTLS {
		t.Error("InsecureTLS not applied")
	}
}

func TestLoadYamlFile(t *testing.T) {
	setRequired(t)
	t.Setenv("MY_PRESET", "veryfast")
	t.Setenv("RETENTION_DAYS_VIDEOS", "60")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
dataDir: /srv/timelapse
timelapse:
  preset: $(MY_PRESET)
retention:
  videoDays: 10
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DataDir != "/srv/timelapse" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Timelapse.Preset != "veryfast" {
		t.Errorf("env expansion in yaml: Preset = %q", cfg.Timelapse.Preset)
	}
	// env beats yaml
	if cfg.Retention.VideoDays != 60 {
		t.Errorf("VideoDays = %d, want env value 60", cfg.Retention.VideoDays)
	}
}

func TestLoadValidation(t *testing.T) {
	t.Run("missing host", func(t *testing.T) {
		t.Setenv("UNIFI_HOST", "")
		t.Setenv("UNIFI_API_KEY", "secret")
		if _, err := Load(""); err == nil {
			t.Fatal("expected error for missing host")
		}
	})

	t.Run("missing api key", func(t *testing.T) {
		t.Setenv("UNIFI_HOST", "protect.local")
		t.Setenv("UNIFI_API_KEY", "")
		if _, err := Load(""); err == nil {
			t.Fatal("expected error for missing api key")
		}
	})

	t.Run("bad interval", func(t *testing.T) {
		setRequired(t)
		t.Setenv("SNAPSHOT_INTERVAL", "0")
		if _, err := Load(""); err == nil {
			t.Fatal("expected error for zero interval")
		}
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		setRequired(t)
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatal("expected error for missing config file")
		}
	})
}

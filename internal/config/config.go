package config

import "time"

type Config struct {
	Host        string   `yaml:"host" env:"UNIFI_HOST"`
	APIKey      string   `yaml:"apiKey" env:"UNIFI_API_KEY"`
	CameraNames []string `yaml:"cameraNames" env:"CAMERA_NAMES"` // allow-list, empty = all cameras
	InsecureTLS bool     `yaml:"insecureTLS" env:"TLS_INSECURE_SKIP_VERIFY"`

	DataDir string `yaml:"dataDir" env:"DATA_DIR"`

	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Timelapse TimelapseConfig `yaml:"timelapse"`
	Retention RetentionConfig `yaml:"retention"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type SnapshotConfig struct {
	IntervalSeconds int  `yaml:"intervalSeconds" env:"SNAPSHOT_INTERVAL"`
	HighQuality     bool `yaml:"highQuality" env:"SNAPSHOT_HIGH_QUALITY"`
}

type TimelapseConfig struct {
	Framerate     int           `yaml:"framerate" env:"TIMELAPSE_FRAMERATE"`
	CRF           int           `yaml:"crf" env:"TIMELAPSE_CRF"`
	Preset        string        `yaml:"preset" env:"TIMELAPSE_PRESET"`
	MinFrames     int           `yaml:"minFrames" env:"TIMELAPSE_MIN_FRAMES"`
	EncodeTimeout time.Duration `yaml:"encodeTimeout" env:"TIMELAPSE_ENCODE_TIMEOUT"`
}

type RetentionConfig struct {
	ImageDays int `yaml:"imageDays" env:"RETENTION_DAYS_IMAGES"`
	VideoDays int `yaml:"videoDays" env:"RETENTION_DAYS_VIDEOS"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"` // "debug", "info", "warn", "error"
}

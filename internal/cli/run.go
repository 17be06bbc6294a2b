package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/raoulx24/unifi-timelapse/internal/capture"
	"github.com/raoulx24/unifi-timelapse/internal/config"
	"github.com/raoulx24/unifi-timelapse/internal/encoder"
	"github.com/raoulx24/unifi-timelapse/internal/layout"
	"github.com/raoulx24/unifi-timelapse/internal/logging"
	"github.com/raoulx24/unifi-timelapse/internal/protect"
	"github.com/raoulx24/unifi-timelapse/internal/retention"
	"github.com/raoulx24/unifi-timelapse/internal/scheduler"
	"github.com/raoulx24/unifi-timelapse/internal/timelapse"
)

func NewRunCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the capture/timelapse/retention service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			paths := layout.Paths{Base: cfg.DataDir}
			if err := paths.EnsureBase(); err != nil {
				return fmt.Errorf("creating data directories: %w", err)
			}

			log, logFile, err := logging.Setup(paths.LogFile(), cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer logFile.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client := protect.NewClient(cfg, log)
			capt := capture.New(client, paths, log)
			enc := encoder.NewFFmpeg(encoder.Options{
				Framerate: cfg.Timelapse.Framerate,
				CRF:       cfg.Timelapse.CRF,
				Preset:    cfg.Timelapse.Preset,
				Timeout:   cfg.Timelapse.EncodeTimeout,
			}, log)
			asm := timelapse.New(enc, paths, cfg.Timelapse.MinFrames, log)
			sweeper := retention.New(paths, cfg.Retention.ImageDays, cfg.Retention.VideoDays, log)

			sched := scheduler.New(log)
			sched.Every("capture", time.Duration(cfg.Snapshot.IntervalSeconds)*time.Second, capt.Run)
			if err := sched.At("timelapse", "0 * * * *", asm.UpdateToday); err != nil {
				return err
			}
			if err := sched.At("sweep", "0 1 * * *", func(context.Context) { sweeper.Sweep() }); err != nil {
				return err
			}

			log.Info("starting unifi-timelapse service",
				"host", cfg.Host,
				"dataDir", cfg.DataDir,
				"snapshotInterval", cfg.Snapshot.IntervalSeconds)

			// First capture runs immediately so there is data before the
			// first interval elapses.
			capt.Run(ctx)

			sched.Run(ctx)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Optional YAML config file (env vars take precedence)")
	return cmd
}

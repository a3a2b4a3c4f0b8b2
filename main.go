package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/raywall/gh-org-progress/collector"
	"github.com/raywall/gh-org-progress/config"
	"github.com/raywall/gh-org-progress/progress"
	"github.com/raywall/gh-org-progress/snapshot"
	"github.com/raywall/gh-org-progress/utilization"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the config is loaded.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer
}

func newRootCmd() *cobra.Command {
	var configPath string
	a := &app{}

	root := &cobra.Command{
		Use:           "gh-org-progress",
		Short:         "Compare GitHub organization snapshots and estimate member workload",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger, err := initLogger(cfg.Logger)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			a.out = cmd.OutOrStdout()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default ./config.yaml)")

	root.AddCommand(newCompareCmd(a), newUtilizationCmd(a), newSnapshotCmd(a))
	return root
}

func newCompareCmd(a *app) *cobra.Command {
	var oldPath, currentPath string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Diff a historical snapshot against the current one",
		RunE: func(cmd *cobra.Command, args []string) error {
			old, err := snapshot.Load(oldPath)
			if err != nil {
				return err
			}
			current, err := snapshot.Load(currentPath)
			if err != nil {
				return err
			}

			data := progress.Analyze(old, current)
			a.logger.Info("comparison finished",
				zap.Int("projects", len(data.ProjectChanges)),
				zap.Int("members", len(data.MemberChanges)),
				zap.Int("repositories", len(data.RepoChanges)),
				zap.Float64("overall_progress", data.Summary.OverallProgress))

			return writeJSON(a.out, data)
		},
	}
	cmd.Flags().StringVar(&oldPath, "old", "", "Historical snapshot file")
	cmd.Flags().StringVar(&currentPath, "current", "", "Current snapshot file")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("current")
	return cmd
}

func newUtilizationCmd(a *app) *cobra.Command {
	var snapshotPath, statuses string

	cmd := &cobra.Command{
		Use:   "utilization",
		Short: "Estimate the weekly workload of every member of a snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := snapshot.Load(snapshotPath)
			if err != nil {
				return err
			}

			filter := a.cfg.StatusFilter
			if cmd.Flags().Changed("status") {
				filter = utilization.ParseStatusFilter(statuses)
			}

			est := utilization.NewEstimator(a.cfg.Workload)
			results := est.Estimate(utilization.MembersFromSnapshot(s), filter, utilization.BuildStatusIndex(s.Projects))

			for _, r := range results {
				if r.Status == utilization.StatusCritical {
					a.logger.Warn("member over capacity",
						zap.String("member", r.Member),
						zap.Float64("estimated_hours", r.EstimatedHours),
						zap.Float64("utilization", r.UtilizationPercentage))
				}
			}
			return writeJSON(a.out, results)
		},
	}
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Snapshot file")
	cmd.Flags().StringVar(&statuses, "status", "", "Comma separated project statuses to include (empty includes all)")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}

func newSnapshotCmd(a *app) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Collect the live organization data from GitHub and save it",
		RunE: func(cmd *cobra.Command, args []string) error {
			gh := a.cfg.GitHub
			if gh.Owner == "" {
				return fmt.Errorf("github owner is not configured (set github.owner or GITHUB_OWNER)")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			since := time.Now().AddDate(0, 0, -gh.SinceDays)
			c := collector.New(gh.Owner, since, gh.Token, a.cfg.Projects, a.logger)

			s, err := c.Collect(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect snapshot: %w", err)
			}
			if err := c.Export(s, outPath); err != nil {
				return err
			}

			a.logger.Info("snapshot saved", zap.String("path", outPath))
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "progress.json", "Output snapshot file")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// initLogger builds the zap logger described by the config
func initLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapConfig zap.Config
	if cfg.Format == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapConfig.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}

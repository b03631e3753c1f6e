package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tasnim.dev/ecr-mirror/internal/api"
	"tasnim.dev/ecr-mirror/internal/config"
	"tasnim.dev/ecr-mirror/internal/logging"
)

// sourceFlags are the flags shared by every command that talks to a backend.
type sourceFlags struct {
	source     string
	apiBaseURL string
	profile    string
	region     string
	logFile    string
	logLevel   string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "data source: mock, http or aws")
	cmd.Flags().StringVar(&f.apiBaseURL, "api-base-url", "", "backend API base URL")
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "AWS profile to use (aws source)")
	cmd.Flags().StringVarP(&f.region, "region", "r", "", "AWS region to use (aws source)")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "write logs to this file")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// runtime is everything a command needs once flags and config are merged.
type runtime struct {
	cfg      *config.Config
	log      *logrus.Logger
	source   api.Source
	closeLog func() error
}

func (f *sourceFlags) setup(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Override(f.source, f.apiBaseURL); err != nil {
		return nil, err
	}
	if f.logFile != "" {
		cfg.LogFile = f.logFile
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	profile, region := cfg.Merge(f.profile, f.region)

	log, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	src, err := api.New(ctx, cfg, profile, region, log)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("initializing data source: %w", err)
	}
	log.WithFields(logrus.Fields{
		"source":  cfg.Source,
		"backend": src.Describe(),
	}).Info("data source ready")

	return &runtime{cfg: cfg, log: log, source: src, closeLog: closeLog}, nil
}

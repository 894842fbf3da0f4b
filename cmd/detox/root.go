package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/detox/internal/config"
	"github.com/JaimeStill/detox/internal/infrastructure"
	"github.com/JaimeStill/detox/internal/recommendations"
	"github.com/JaimeStill/detox/internal/risk"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "detox",
		Short:         "Analyze digital usage and build detox recommendations",
		Long:          "Classify daily usage, assess addiction risk with the pretrained model, and render personalized recommendations.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.BaseConfigFile, "Path to the TOML config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log infrastructure activity to stderr")

	cmd.AddCommand(
		newRunCmd(opts),
		newPatternsCmd(),
		newOpenAPICmd(opts),
	)
	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (o *rootOptions) logger() *slog.Logger {
	if !o.verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// session owns the infrastructure backing one CLI invocation.
type session struct {
	infra  *infrastructure.Infrastructure
	engine *recommendations.Engine
}

func (o *rootOptions) open(ctx context.Context, seed uint64) (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	infra, err := infrastructure.NewWithLogger(cfg, o.logger())
	if err != nil {
		return nil, err
	}
	if err := infra.Start(); err != nil {
		return nil, err
	}
	infra.Lifecycle.WaitForStartup()

	if err := infra.Model.Init(ctx); err != nil {
		infra.Lifecycle.Shutdown(time.Second)
		return nil, fmt.Errorf("load model: %w", err)
	}

	var rng recommendations.Rand
	if seed != 0 {
		rng = rand.New(rand.NewPCG(seed, seed))
	}

	assessor := risk.New(infra.Model, infra.Cache, infra.Logger)
	return &session{
		infra:  infra,
		engine: recommendations.NewEngine(assessor, rng, infra.Logger),
	}, nil
}

func (s *session) close() {
	s.infra.Lifecycle.Shutdown(5 * time.Second)
}

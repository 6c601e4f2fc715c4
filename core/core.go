// Package core has core logic for routing, scoring and describing vectors.
package core

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/rvss/core/algo"
	"github.com/huangsam/rvss/core/codec"
	"github.com/huangsam/rvss/internal/contract"
	"github.com/huangsam/rvss/internal/outwriter"
	"github.com/huangsam/rvss/schema"
)

// ExecutorFunc defines the function signature for executing the scoring commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, reg *Registry, store contract.HistoryStore, args []string) error

// serializeOptions returns the codec options implied by cfg.
func serializeOptions(cfg *contract.Config) []codec.Option {
	var opts []codec.Option
	if cfg.Full {
		opts = append(opts, codec.WithDefaults())
	}
	if cfg.Prefix {
		opts = append(opts, codec.WithPrefix())
	}
	return opts
}

// ExecuteCalc scores the vectors given on the command line and prints the results.
// It serves as the main entry point for the 'calc' command.
func ExecuteCalc(ctx context.Context, cfg *contract.Config, reg *Registry, store contract.HistoryStore, args []string) error {
	if len(args) == 0 {
		return errors.New("at least one vector is required")
	}
	start := time.Now()
	results, err := scoreAll(ctx, cfg, reg, args, nil)
	if err != nil {
		return err
	}
	recordRun(cfg, store, "calc", start, results)
	ranked := algo.RankResults(results, cfg.ResultLimit)
	return outwriter.NewOutWriter().WriteScores(ranked, cfg, time.Since(start))
}

// ExecuteParse prints the resolved metrics and canonical form of a single vector.
func ExecuteParse(_ context.Context, cfg *contract.Config, reg *Registry, _ contract.HistoryStore, args []string) error {
	if len(args) != 1 {
		return errors.New("exactly one vector is required")
	}
	parsed, err := reg.Describe(args[0], serializeOptions(cfg)...)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteParse(parsed, cfg)
}

// ExecuteSystems lists the registered scoring systems.
func ExecuteSystems(_ context.Context, cfg *contract.Config, reg *Registry, _ contract.HistoryStore, _ []string) error {
	systems := reg.Systems()
	infos := make([]schema.SystemInfo, len(systems))
	for i, sys := range systems {
		infos[i] = sys.Info()
	}
	return outwriter.NewOutWriter().WriteSystems(infos, cfg)
}

// ExecuteDescribe prints the metric enumeration of one system, looked up by name or prefix.
func ExecuteDescribe(_ context.Context, cfg *contract.Config, reg *Registry, _ contract.HistoryStore, args []string) error {
	if len(args) != 1 {
		return errors.New("exactly one system name or prefix is required")
	}
	sys, err := reg.System(args[0])
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteDescription(sys.Describe(), cfg)
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rushteam/fleetrank/codec"
	"github.com/rushteam/fleetrank/config"
	"github.com/rushteam/fleetrank/core"
	"github.com/rushteam/fleetrank/feature"
	"github.com/rushteam/fleetrank/filter"
	"github.com/rushteam/fleetrank/model"
	"github.com/rushteam/fleetrank/rank"
)

type rankOptions struct {
	in      string
	out     string
	pretty  bool
	summary bool
}

func newRankCmd(a *app) *cobra.Command {
	opts := &rankOptions{}
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Score and bucket a batch of train records",
		Long:  "Reads a JSON array of train records (stdin or --in), ranks them and writes the scored array (stdout or --out) in Revenue, Standby, Maintenance order.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runRank(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.in, "in", "i", "", "Path to input JSON file (default stdin)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Path to output JSON file (default stdout)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent the output document")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Write per-bucket counts to stderr")
	return cmd
}

func (a *app) runRank(cmd *cobra.Command, opts *rankOptions) error {
	s, err := a.settings()
	if err != nil {
		return err
	}
	if err := s.RequireModel(); err != nil {
		return err
	}

	runID := uuid.New().String()
	logger := newLogger(a.stderr, s.LogLevel, runID)

	// 1. 启动时加载模型（或整条 pipeline），之后只读
	engine, err := buildEngine(s)
	if err != nil {
		return err
	}
	logger.Debug().Str("model_path", s.ModelPath).Str("pipeline_path", s.PipelinePath).Msg("engine ready")

	// 2. 读取完整输入
	records, err := readInput(a.stdin, opts.in)
	if err != nil {
		return err
	}

	// 3. 排序
	rctx := core.NewRankContext(runID)
	rctx.Logger = logger
	scored, err := engine.Rank(cmd.Context(), rctx, records)
	if err != nil {
		return err
	}

	// 4. 完整编码后再写出
	data, err := codec.EncodeScored(scored, opts.pretty)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if opts.out != "" {
		if err := os.WriteFile(opts.out, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", opts.out, err)
		}
	} else if _, err := a.stdout.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	summary := core.Summarize(scored)
	logger.Info().
		Int("records", summary.Total()).
		Int("revenue", summary.Revenue).
		Int("standby", summary.Standby).
		Int("maintenance", summary.Maintenance).
		Msg("ranking complete")
	if opts.summary {
		fmt.Fprintln(a.stderr, summary.String())
	}
	return nil
}

func buildEngine(s config.Settings) (*rank.Engine, error) {
	if s.PipelinePath != "" {
		p, err := config.LoadPipeline(s.PipelinePath)
		if err != nil {
			return nil, err
		}
		return rank.NewEngineFromPipeline(p), nil
	}

	m, err := model.Load(s.ModelPath, len(feature.Columns))
	if err != nil {
		return nil, err
	}
	rules, err := filter.NewExprRules(s.Override.Rules)
	if err != nil {
		return nil, fmt.Errorf("override rules: %w", err)
	}
	return rank.NewEngine(m,
		rank.WithRevenueSlots(s.RevenueSlots),
		rank.WithOverrideRules(rules...),
	), nil
}

func readInput(stdin io.Reader, path string) ([]core.TrainRecord, error) {
	if path == "" {
		return codec.ReadRecords(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	defer f.Close()
	return codec.ReadRecords(f)
}

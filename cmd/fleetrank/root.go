package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rushteam/fleetrank/config"
	"github.com/rushteam/fleetrank/core"
)

// app 持有一次命令执行的状态；每次 newRootCmd 创建独立实例，测试之间互不影响。
type app struct {
	v          *viper.Viper
	configFile string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		v:      config.NewViper(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	root := &cobra.Command{
		Use:           "fleetrank",
		Short:         "Rank a daily train fleet into Revenue, Standby and Maintenance",
		Long:          "fleetrank scores every train with a pre-trained model, forces trains with an open job card into Maintenance, and assigns the best-scoring trains to the limited Revenue slots.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "Path to a YAML/JSON settings file")
	flags.StringP("model", "m", "", "Path to the model artifact (env FLEETRANK_MODEL_PATH)")
	flags.String("pipeline", "", "Path to a pipeline file; replaces the built-in pipeline (env FLEETRANK_PIPELINE_PATH)")
	flags.Int("revenue-slots", core.DefaultRevenueSlotCount, "Number of Revenue slots (env FLEETRANK_REVENUE_SLOTS)")
	flags.StringArray("rule", nil, "Extra maintenance rule as a CEL expression, repeatable (one rule per flag)")
	flags.String("log-level", "info", "Log level: trace, debug, info, warn, error, disabled (env FLEETRANK_LOG_LEVEL)")

	bind := map[string]string{
		"model_path":     "model",
		"pipeline_path":  "pipeline",
		"revenue_slots":  "revenue-slots",
		"override.rules": "rule",
		"log_level":      "log-level",
	}
	for key, flag := range bind {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", flag, err))
		}
	}

	rankCmd := newRankCmd(a)
	root.AddCommand(rankCmd, newValidateCmd(a))

	// 不带子命令时执行 rank
	root.Flags().AddFlagSet(rankCmd.Flags())
	root.RunE = rankCmd.RunE
	return root
}

func (a *app) settings() (config.Settings, error) {
	return config.Load(a.v, a.configFile)
}

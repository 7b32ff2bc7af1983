package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/rushteam/fleetrank/core"
)

// EnvPrefix 是环境变量前缀，例如 FLEETRANK_REVENUE_SLOTS。
const EnvPrefix = "FLEETRANK"

// Settings 是一次运行的全部配置。
// 优先级：命令行参数 > 环境变量 > 配置文件 > 默认值。
type Settings struct {
	ModelPath    string `mapstructure:"model_path"`
	PipelinePath string `mapstructure:"pipeline_path"`
	RevenueSlots int    `mapstructure:"revenue_slots" validate:"gte=0"`
	LogLevel     string `mapstructure:"log_level" validate:"oneof=trace debug info warn error disabled"`

	Override OverrideSettings `mapstructure:"override"`
}

// OverrideSettings 是额外的强制检修规则（CEL 表达式）。
type OverrideSettings struct {
	Rules []string `mapstructure:"rules" validate:"dive,required"`
}

// NewViper 创建带默认值和环境变量绑定的 viper 实例，命令行参数由调用方再 BindPFlag。
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("model_path", "")
	v.SetDefault("pipeline_path", "")
	v.SetDefault("revenue_slots", core.DefaultRevenueSlotCount)
	v.SetDefault("log_level", "info")
	v.SetDefault("override.rules", []string{})
	return v
}

// Load 读取可选配置文件（YAML/JSON），合并到 v 后解码并校验。
func Load(v *viper.Viper, configFile string) (Settings, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	// 不使用 viper 默认的按逗号切分：CEL 规则本身可以包含逗号，
	// 环境变量 FLEETRANK_OVERRIDE_RULES 只表示一条规则。
	var s Settings
	if err := v.Unmarshal(&s, viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc())); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate 校验配置取值。
func (s Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// RequireModel 在需要打分时检查模型来源：model_path 与 pipeline_path 至少有一个。
func (s Settings) RequireModel() error {
	if s.ModelPath == "" && s.PipelinePath == "" {
		return fmt.Errorf("no model configured: set --model or %s_MODEL_PATH", EnvPrefix)
	}
	return nil
}

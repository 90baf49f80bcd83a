// Package config loads the settings of the ntk command.
package config

import (
	"reflect"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/born-ml/ntk/internal/dataset"
	"github.com/born-ml/ntk/internal/nn"
	"github.com/born-ml/ntk/internal/ntk"
)

// EnvPrefix prefixes environment overrides, e.g. NTK_DATA_TRAIN=64.
const EnvPrefix = "NTK"

type Config struct {
	// Upper bound on Jacobian chunk memory, in bytes.
	BudgetBytes float64
	Model       ModelConfig
	Data        DataConfig
	Logging     LoggingConfig
	Metrics     MetricsConfig
}

type ModelConfig struct {
	InputDim   int
	Hidden     []int
	Activation string
	Init       nn.Init
	Bias       bool
	Seed       uint64
}

type DataConfig struct {
	Train        int
	Test         int
	Distribution string
	Seed         uint64
}

type LoggingConfig struct {
	Level  string
	Format string
}

type MetricsConfig struct {
	// Prometheus textfile written after a run; empty disables it.
	File string
}

// SetDefaults registers the default value of every key on v. Keys must be
// known to viper for environment overrides to apply on Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("budgetBytes", ntk.DefaultBudgetBytes)
	v.SetDefault("model.inputDim", 4)
	v.SetDefault("model.hidden", []int{64, 64})
	v.SetDefault("model.activation", nn.ActivationTanh)
	v.SetDefault("model.init", string(nn.InitNormal))
	v.SetDefault("model.bias", true)
	v.SetDefault("model.seed", 1)
	v.SetDefault("data.train", 32)
	v.SetDefault("data.test", 8)
	v.SetDefault("data.distribution", dataset.DistSphere)
	v.SetDefault("data.seed", 2)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("metrics.file", "")
}

// Load reads the optional YAML file at path into v, applies NTK_ environment
// overrides and unmarshals the result.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "reading config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	return cfg, nil
}

// decodeHook keeps viper's default hooks and adds init-scheme parsing.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		InitDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// InitDecodeHook parses strings into nn.Init, rejecting unknown schemes.
func InitDecodeHook() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(nn.Init("")) {
			return data, nil
		}
		return nn.ParseInit(data.(string))
	}
}

// Validate checks the configuration for values the command cannot run with.
// Every problem found is reported.
func (c Config) Validate() error {
	var result *multierror.Error
	fail := func(format string, args ...interface{}) {
		result = multierror.Append(result, errors.Errorf(format, args...))
	}

	if c.BudgetBytes <= 0 {
		fail("budgetBytes must be positive, got %v", c.BudgetBytes)
	}
	if c.Model.InputDim <= 0 {
		fail("model.inputDim must be positive, got %d", c.Model.InputDim)
	}
	for i, h := range c.Model.Hidden {
		if h <= 0 {
			fail("model.hidden[%d] must be positive, got %d", i, h)
		}
	}
	switch c.Model.Activation {
	case nn.ActivationTanh, nn.ActivationReLU, nn.ActivationSigmoid:
	default:
		fail("model.activation: unknown activation %q", c.Model.Activation)
	}
	if c.Data.Train <= 0 {
		fail("data.train must be positive, got %d", c.Data.Train)
	}
	if c.Data.Test < 0 {
		fail("data.test must not be negative, got %d", c.Data.Test)
	}
	switch c.Data.Distribution {
	case dataset.DistUniform, dataset.DistSphere:
	default:
		fail("data.distribution: unknown distribution %q", c.Data.Distribution)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "logging.level"))
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		fail("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return result.ErrorOrNil()
}

// MLP returns the network description for the model section.
func (c Config) MLP() nn.MLPConfig {
	return nn.MLPConfig{
		InputDim:   c.Model.InputDim,
		Hidden:     c.Model.Hidden,
		Activation: c.Model.Activation,
		Init:       c.Model.Init,
		Bias:       c.Model.Bias,
	}
}

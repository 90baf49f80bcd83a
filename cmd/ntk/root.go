package main

import (
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/born-ml/ntk/internal/autodiff"
	"github.com/born-ml/ntk/internal/backend/cpu"
	"github.com/born-ml/ntk/internal/config"
	"github.com/born-ml/ntk/internal/dataset"
	"github.com/born-ml/ntk/internal/logging"
	"github.com/born-ml/ntk/internal/metrics"
	"github.com/born-ml/ntk/internal/nn"
	"github.com/born-ml/ntk/internal/ntk"
	"github.com/born-ml/ntk/internal/tensor"
)

const customConfigLocation = "config"

// flagKeys maps command line flags to the config keys they override.
var flagKeys = map[string]string{
	"budget-bytes": "budgetBytes",
	"train":        "data.train",
	"test":         "data.test",
	"log-level":    "logging.level",
	"metrics-file": "metrics.file",
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "ntk",
		SilenceUsage: true,
		Short:        "Empirical neural tangent kernels of multilayer perceptrons",
	}

	cmd.PersistentFlags().String(customConfigLocation, "", "Path to a YAML configuration file")
	cmd.PersistentFlags().Float64("budget-bytes", 0, "Upper bound on Jacobian chunk memory in bytes")
	cmd.PersistentFlags().Int("train", 0, "Number of training samples")
	cmd.PersistentFlags().Int("test", 0, "Number of test samples")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics in text format to this file after the run")

	cmd.AddCommand(
		kernelCmd(),
		likelihoodCmd(),
		versionCmd(),
	)
	return cmd
}

// loadConfig binds the persistent flags into a fresh viper instance, loads
// the configuration and configures logging from it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v := viper.New()
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return config.Config{}, errors.Wrapf(err, "binding flag %s", flag)
		}
	}

	path, err := cmd.Flags().GetString(customConfigLocation)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(v, path)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, errors.WithMessage(err, "invalid configuration")
	}
	if err := logging.Configure(cfg.Logging); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

type experiment struct {
	net *nn.Network[*cpu.CPUBackend]
	xtr []*tensor.Tensor
	xte []*tensor.Tensor

	budgetBytes float64
	metricsFile string
	registry    *prometheus.Registry
	metrics     *metrics.Metrics
}

// newExperiment builds the network and sample sets described by cfg.
// Model and data use independent seeds.
func newExperiment(cfg config.Config) (*experiment, error) {
	backend := autodiff.New(cpu.New())
	model, err := nn.NewMLP(cfg.MLP(), backend, rand.New(rand.NewPCG(cfg.Model.Seed, cfg.Model.Seed)))
	if err != nil {
		return nil, errors.Wrap(err, "building model")
	}

	rng := rand.New(rand.NewPCG(cfg.Data.Seed, cfg.Data.Seed))
	xtr, err := dataset.Generate(cfg.Data.Distribution, rng, cfg.Data.Train, cfg.Model.InputDim)
	if err != nil {
		return nil, errors.Wrap(err, "generating train samples")
	}
	xte, err := dataset.Generate(cfg.Data.Distribution, rng, cfg.Data.Test, cfg.Model.InputDim)
	if err != nil {
		return nil, errors.Wrap(err, "generating test samples")
	}

	exp := &experiment{
		net:         nn.NewNetwork(model, backend),
		xtr:         xtr,
		xte:         xte,
		budgetBytes: cfg.BudgetBytes,
		metricsFile: cfg.Metrics.File,
	}
	if exp.metricsFile != "" {
		exp.registry = prometheus.NewRegistry()
		exp.metrics = metrics.New(exp.registry)
	}
	return exp, nil
}

func (e *experiment) options() []ntk.Option {
	opts := []ntk.Option{ntk.WithBudgetBytes(e.budgetBytes)}
	if e.metrics != nil {
		opts = append(opts, ntk.WithRecorder(e.metrics))
	}
	return opts
}

// flushMetrics writes the metrics file, if one was configured.
func (e *experiment) flushMetrics() error {
	if e.registry == nil {
		return nil
	}
	return errors.Wrap(metrics.WriteTextfile(e.metricsFile, e.registry), "writing metrics")
}

func (e *experiment) targets() []float64 {
	return dataset.Targets(e.xtr, dataset.SinOfSum)
}

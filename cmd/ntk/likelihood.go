package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/born-ml/ntk/internal/nn"
	"github.com/born-ml/ntk/internal/ntk"
)

func likelihoodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "likelihood",
		Short: "Report the negative log marginal likelihood of the train targets under the train kernel",
		Args:  cobra.NoArgs,
	}
	mean := cmd.Flags().Float64("mean", 0, "Prior mean subtracted from every target")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		exp, err := newExperiment(cfg)
		if err != nil {
			return err
		}

		k, err := ntk.ComputeKernel[*nn.Parameter](exp.net, exp.xtr, exp.options()...)
		if err != nil {
			return errors.Wrap(err, "computing kernel")
		}
		if err := exp.flushMetrics(); err != nil {
			return err
		}
		nll, err := ntk.KernelLikelihood(k, exp.targets(), []float64{*mean})
		if err != nil {
			return errors.Wrap(err, "likelihood")
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.6g\n", nll)
		return err
	}
	return cmd
}

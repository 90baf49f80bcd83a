package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ntk/internal/nn"
	"github.com/born-ml/ntk/internal/ntk"
)

func kernelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kernel",
		Short: "Compute the train-train, test-train and test-test kernels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			exp, err := newExperiment(cfg)
			if err != nil {
				return err
			}

			params := exp.net.Parameters()
			log.WithFields(log.Fields{
				"parameters": len(params),
				"numel":      ntk.Numel(params),
				"train":      len(exp.xtr),
				"test":       len(exp.xte),
			}).Info("computing kernels")

			k, err := ntk.ComputeKernels[*nn.Parameter](exp.net, exp.xtr, exp.xte, exp.options()...)
			if err != nil {
				return errors.Wrap(err, "computing kernels")
			}
			if err := exp.flushMetrics(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, block := range []struct {
				name string
				m    mat.Matrix
			}{
				{"train-train", k.TrainTrain},
				{"test-train", k.TestTrain},
				{"test-test", k.TestTest},
			} {
				if err := printSummary(out, block.name, block.m); err != nil {
					return err
				}
			}

			nll, err := ntk.KernelLikelihood(k.TrainTrain, exp.targets(), nil)
			if err != nil {
				return errors.Wrap(err, "likelihood")
			}
			_, err = fmt.Fprintf(out, "nll %.6g\n", nll)
			return err
		},
	}
}

func printSummary(w io.Writer, name string, m mat.Matrix) error {
	s, err := ntk.Summarize(m)
	if err != nil {
		return errors.Wrapf(err, "summarizing %s", name)
	}
	if _, err := fmt.Fprintf(w, "%-11s %dx%d trace=%.6g mean=%.6g", name, s.Rows, s.Cols, s.Trace, s.Mean); err != nil {
		return err
	}
	if s.Rows == s.Cols {
		_, err = fmt.Fprintf(w, " eig=[%.6g, %.6g] asym=%.3g", s.MinEig, s.MaxEig, ntk.SymmetryError(m))
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}

// Package main provides the ntk command, which estimates empirical neural
// tangent kernels of small multilayer perceptrons.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

var version = "v0.1.0-dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// Package logging wires up the structured logger every other package takes
// as a logr.Logger, the way heka's plugins take a LogError/LogMessage
// callback from their runner (pipeline/inputs.go, pipeline/outputs.go).
// Log level is driven by the AMQPD_LOG_LEVEL environment variable
// (spec.md 6, "Log filter is driven by an environment variable").
package logging

import (
	"log"
	"os"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

const LevelEnvVar = "AMQPD_LOG_LEVEL"

// New builds a logr.Logger backed by the standard library's log package,
// at the verbosity named by AMQPD_LOG_LEVEL (an integer V-level; higher is
// more verbose, default 0).
func New(prefix string) logr.Logger {
	stdr.SetVerbosity(levelFromEnv())
	std := log.New(os.Stderr, prefix, log.LstdFlags)
	return stdr.New(std)
}

func levelFromEnv() int {
	raw := os.Getenv(LevelEnvVar)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

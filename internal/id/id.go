// Package id generates short identifiers for scenario runs.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// RunPrefix marks identifiers produced by Run.
const RunPrefix = "run-"

// Run returns a random run identifier such as "run-3fa91c".
// Identifiers correlate log lines from one replay.
func Run() string {
	b := make([]byte, 3)
	_, _ = rand.Read(b)
	return RunPrefix + hex.EncodeToString(b)
}

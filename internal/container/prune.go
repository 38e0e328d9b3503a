// SPDX-License-Identifier: MPL-2.0

package container

import (
	"fmt"
	"strings"

	"github.com/docker/go-units"
)

const reclaimedPrefix = "Total reclaimed space:"

// PruneReport summarises a prune invocation.
type PruneReport struct {
	// Deleted lists the IDs of removed containers in engine order.
	Deleted []string
	// ReclaimedSpace is the engine's human-readable figure (docker only).
	ReclaimedSpace string
	// ReclaimedBytes is ReclaimedSpace in bytes, or 0 when not reported.
	ReclaimedBytes int64
	// Invocation is the underlying prune invocation.
	Invocation *Invocation
}

// PruneArgs returns the argument vector for pruning stopped containers.
// --force answers the confirmation prompt.
func PruneArgs() []string {
	return []string{"container", "prune", "--force"}
}

// ParsePruneOutput extracts deleted IDs and reclaimed space from prune
// output. Docker prints a "Deleted Containers:" heading, one ID per line and a
// trailing "Total reclaimed space: <size>"; Podman prints bare IDs.
// An unparseable size still yields the IDs alongside the error.
func ParsePruneOutput(output string) (PruneReport, error) {
	var report PruneReport
	var sizeErr error
	for _, line := range splitLines(output) {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, reclaimedPrefix):
			report.ReclaimedSpace = strings.TrimSpace(strings.TrimPrefix(line, reclaimedPrefix))
			n, err := units.FromHumanSize(report.ReclaimedSpace)
			if err != nil {
				sizeErr = fmt.Errorf("parse reclaimed space %q: %w", report.ReclaimedSpace, err)
				continue
			}
			report.ReclaimedBytes = n
		case strings.HasSuffix(line, ":"):
			// Section heading such as "Deleted Containers:".
			continue
		default:
			report.Deleted = append(report.Deleted, line)
		}
	}
	return report, sizeErr
}

// HumanReclaimed formats ReclaimedBytes the way the engine does.
func (r PruneReport) HumanReclaimed() string {
	if r.ReclaimedSpace == "" && r.ReclaimedBytes == 0 {
		return "0B"
	}
	return units.HumanSize(float64(r.ReclaimedBytes))
}

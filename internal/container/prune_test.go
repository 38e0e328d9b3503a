// SPDX-License-Identifier: MPL-2.0

package container

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParsePruneOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		output  string
		want    PruneReport
		wantErr bool
	}{
		{
			name:   "docker",
			output: "Deleted Containers:\n4a1b\n9c2d\n\nTotal reclaimed space: 12.5MB\n",
			want:   PruneReport{Deleted: []string{"4a1b", "9c2d"}, ReclaimedSpace: "12.5MB", ReclaimedBytes: 12_500_000},
		},
		{
			name:   "docker nothing to prune",
			output: "Total reclaimed space: 0B\n",
			want:   PruneReport{ReclaimedSpace: "0B"},
		},
		{
			name:   "podman bare ids",
			output: "4a1b\n9c2d\n",
			want:   PruneReport{Deleted: []string{"4a1b", "9c2d"}},
		},
		{
			name:   "empty",
			output: "",
			want:   PruneReport{},
		},
		{
			name:    "unreadable size keeps ids",
			output:  "Deleted Containers:\n4a1b\nTotal reclaimed space: lots\n",
			want:    PruneReport{Deleted: []string{"4a1b"}, ReclaimedSpace: "lots"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePruneOutput(tt.output)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePruneOutput() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty(), cmpopts.IgnoreFields(PruneReport{}, "Invocation")); diff != "" {
				t.Errorf("ParsePruneOutput() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPruneReport_HumanReclaimed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		report PruneReport
		want   string
	}{
		{report: PruneReport{}, want: "0B"},
		{report: PruneReport{ReclaimedSpace: "1.5kB", ReclaimedBytes: 1500}, want: "1.5kB"},
		{report: PruneReport{ReclaimedSpace: "12.5MB", ReclaimedBytes: 12_500_000}, want: "12.5MB"},
	}
	for _, tt := range tests {
		if got := tt.report.HumanReclaimed(); got != tt.want {
			t.Errorf("HumanReclaimed(%d) = %q, want %q", tt.report.ReclaimedBytes, got, tt.want)
		}
	}
}

func TestPruneArgs(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff([]string{"container", "prune", "--force"}, PruneArgs()); diff != "" {
		t.Errorf("PruneArgs() mismatch (-want +got):\n%s", diff)
	}
}

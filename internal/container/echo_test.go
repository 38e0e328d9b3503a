// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"testing"
)

func TestEcho(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{name: "stdout with newline", result: Result{Stdout: "hello, world\n"}, want: "hello, world\n"},
		{name: "stdout without newline", result: Result{Stdout: "hello"}, want: "hello\n"},
		{name: "multi-line stdout", result: Result{Stdout: "a\nb\n"}, want: "a\nb\n"},
		{name: "silent success", result: Result{Stderr: "warning\n"}, want: ""},
		{name: "failure with stderr", result: Result{Stderr: "boom\n", ExitCode: 2}, want: "exit_status: 2\nboom\n"},
		{name: "failure without stderr", result: Result{Stdout: "out\n", ExitCode: 125}, want: "exit_status: 125\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := Echo(&buf, &Invocation{result: tt.result}); err != nil {
				t.Fatalf("Echo() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("Echo() wrote %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

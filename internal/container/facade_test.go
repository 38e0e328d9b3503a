// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFacade_RunArgs(t *testing.T) {
	t.Parallel()

	f := newMockFacade(t, NewMockCommandRecorder())

	tests := []struct {
		name string
		req  RunRequest
		want []string
	}{
		{
			name: "remove with command",
			req:  RunRequest{Command: []string{"echo", "hello, world"}},
			want: []string{"run", "--rm", "ubuntu", "echo", "hello, world"},
		},
		{
			name: "keep with command",
			req:  RunRequest{Command: []string{"ls", "-la"}, Remove: KeepAfterExit},
			want: []string{"run", "ubuntu", "ls", "-la"},
		},
		{
			name: "image default command",
			req:  RunRequest{},
			want: []string{"run", "--rm", "ubuntu"},
		},
		{
			name: "per-request image",
			req:  RunRequest{Command: []string{"true"}, Image: "alpine:3.20"},
			want: []string{"run", "--rm", "alpine:3.20", "true"},
		},
		{
			name: "metacharacters stay in one argument",
			req:  RunRequest{Command: []string{"sh", "-c", "echo a; echo b"}},
			want: []string{"run", "--rm", "ubuntu", "sh", "-c", "echo a; echo b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, f.RunArgs(tt.req)); diff != "" {
				t.Errorf("RunArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFacade_RunScript(t *testing.T) {
	t.Parallel()

	f := newMockFacade(t, NewMockCommandRecorder(), WithImage("debian:stable-slim"))

	got := f.RunScript(RunRequest{RawShell: true, Script: "echo hello, world; ls"})
	if want := "/usr/bin/docker run --rm debian:stable-slim echo hello, world; ls"; got != want {
		t.Errorf("RunScript() = %q, want %q", got, want)
	}

	got = f.RunScript(RunRequest{RawShell: true, Script: "ls", Remove: KeepAfterExit})
	if want := "/usr/bin/docker run debian:stable-slim ls"; got != want {
		t.Errorf("RunScript() = %q, want %q", got, want)
	}
}

func TestFacade_Run_ArgvIssuesExactlyOneEngineCommand(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.Stdout = "hello, world\n"
	f := newMockFacade(t, recorder)

	inv, err := f.Run(context.Background(), RunRequest{Command: []string{"echo", "hello, world"}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	recorder.AssertInvocationCount(t, 1)
	recorder.AssertCommand(t, "/usr/bin/docker", "run", "--rm", "ubuntu", "echo", "hello, world")
	if inv.Stdout() != "hello, world\n" {
		t.Errorf("Stdout() = %q", inv.Stdout())
	}
	if p, ok := inv.RemovePolicy(); !ok || p != RemoveOnExit {
		t.Errorf("RemovePolicy() = (%v, %v), want (remove, true)", p, ok)
	}
	if inv.CommandLine() != "/usr/bin/docker run --rm ubuntu echo 'hello, world'" {
		t.Errorf("CommandLine() = %q", inv.CommandLine())
	}
}

func TestFacade_Run_RawShellComposesThroughBash(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	f := newMockFacade(t, recorder)

	inv, err := f.Run(context.Background(), RunRequest{RawShell: true, Script: "echo hello, world", Remove: KeepAfterExit})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	recorder.AssertInvocationCount(t, 1)
	recorder.AssertCommand(t, "/usr/bin/env", "bash", "-c", "/usr/bin/docker run ubuntu echo hello, world")
	if inv.Script() != "echo hello, world" {
		t.Errorf("Script() = %q, want the caller's script", inv.Script())
	}
	if argv := inv.Argv(); argv[len(argv)-1] != "/usr/bin/docker run ubuntu echo hello, world" {
		t.Errorf("Argv() = %q, want the composed command line last", argv)
	}
	if p, _ := inv.RemovePolicy(); p != KeepAfterExit {
		t.Errorf("RemovePolicy() = %v, want keep", p)
	}
}

func TestFacade_Run_NonZeroExitIsNotAnError(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.Stderr = "ls: cannot access '/nope': No such file or directory\n"
	recorder.ExitCode = 2
	f := newMockFacade(t, recorder)

	inv, err := f.Run(context.Background(), RunRequest{Command: []string{"ls", "/nope"}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if inv.ExitCode() != 2 {
		t.Errorf("ExitCode() = %d, want 2", inv.ExitCode())
	}
	if !strings.Contains(inv.Stderr(), "No such file") {
		t.Errorf("Stderr() = %q", inv.Stderr())
	}
}

func TestFacade_Run_InvalidRequest(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	f := newMockFacade(t, recorder)

	tests := []struct {
		name string
		req  RunRequest
	}{
		{name: "raw without script", req: RunRequest{RawShell: true}},
		{name: "raw with blank script", req: RunRequest{RawShell: true, Script: "  "}},
		{name: "raw with argv", req: RunRequest{RawShell: true, Script: "ls", Command: []string{"ls"}}},
		{name: "script without opt-in", req: RunRequest{Script: "ls"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := f.Run(context.Background(), tt.req); !errors.Is(err, ErrInvalidRunRequest) {
				t.Errorf("Run() error = %v, want ErrInvalidRunRequest", err)
			}
		})
	}
	recorder.AssertInvocationCount(t, 0)
}

func TestFacade_Run_Timeout(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.Sleep = 10 * time.Second
	f := newMockFacade(t, recorder, WithTimeout(100*time.Millisecond))

	_, err := f.Run(context.Background(), RunRequest{Command: []string{"sleep", "infinity"}})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestFacade_Run_MissingBinary(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	engine := NewBaseCLIEngine("", WithInvoker(NewInvoker(WithExecCommand(recorder.ContextCommandFunc(t)))))
	f, err := NewFacade(engine)
	if err != nil {
		t.Fatalf("NewFacade() error = %v", err)
	}

	for _, req := range []RunRequest{{Command: []string{"true"}}, {RawShell: true, Script: "true"}} {
		_, err := f.Run(context.Background(), req)
		var notAvail *ErrEngineNotAvailable
		if !errors.As(err, &notAvail) {
			t.Errorf("Run(%+v) error = %v, want *ErrEngineNotAvailable", req, err)
		}
	}
	recorder.AssertInvocationCount(t, 0)
}

func TestFacade_RunAndEcho(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stdout   string
		stderr   string
		exitCode int
		want     string
	}{
		{name: "hello world", stdout: "hello, world\n", want: "hello, world\n"},
		{name: "silent success", want: ""},
		{name: "failure with stderr", stderr: "boom\n", exitCode: 3, want: "exit_status: 3\nboom\n"},
		{name: "failure without stderr", stdout: "ignored\n", exitCode: 1, want: "exit_status: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			recorder := NewMockCommandRecorder()
			recorder.Stdout = tt.stdout
			recorder.Stderr = tt.stderr
			recorder.ExitCode = tt.exitCode
			f := newMockFacade(t, recorder)

			var buf bytes.Buffer
			if _, err := f.RunAndEcho(context.Background(), RunRequest{Command: []string{"echo", "hello, world"}}, &buf); err != nil {
				t.Fatalf("RunAndEcho() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestFacade_List(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.Stdout = strings.Join([]string{
		"3f1c\tubuntu\t\"echo 'hello, world'\"\t2025-01-01 10:00:00 +0000 UTC\tExited (0) 2 minutes ago\t\tbrave_turing",
		"9a2b\tnginx:1.27\t\"/docker-entrypoint.sh nginx -g 'daemon off;'\"\t2025-01-01 09:00:00 +0000 UTC\tUp 1 hour\t0.0.0.0:8080->80/tcp\tweb",
		"",
	}, "\n")
	f := newMockFacade(t, recorder)

	got, err := f.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	recorder.AssertInvocationCount(t, 1)
	recorder.AssertCommand(t, "/usr/bin/docker", f.ListArgs()...)

	want := []Record{
		{
			"ID":        "3f1c",
			"Image":     "ubuntu",
			"Command":   "\"echo 'hello, world'\"",
			"CreatedAt": "2025-01-01 10:00:00 +0000 UTC",
			"Status":    "Exited (0) 2 minutes ago",
			"Ports":     "",
			"Names":     "brave_turing",
		},
		{
			"ID":        "9a2b",
			"Image":     "nginx:1.27",
			"Command":   "\"/docker-entrypoint.sh nginx -g 'daemon off;'\"",
			"CreatedAt": "2025-01-01 09:00:00 +0000 UTC",
			"Status":    "Up 1 hour",
			"Ports":     "0.0.0.0:8080->80/tcp",
			"Names":     "web",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
	for i, rec := range got {
		if !slices.Equal(rec.Columns(), slices.Sorted(slices.Values(DefaultListColumns))) {
			t.Errorf("record %d columns = %v", i, rec.Columns())
		}
	}
}

func TestFacade_ListArgs(t *testing.T) {
	t.Parallel()

	f := newMockFacade(t, NewMockCommandRecorder(), WithListColumns("ID", "Names"))
	want := []string{"container", "ls", "-a", "--no-trunc", "--format", `{{.ID}}\t{{.Names}}`}
	if diff := cmp.Diff(want, f.ListArgs()); diff != "" {
		t.Errorf("ListArgs() mismatch (-want +got):\n%s", diff)
	}
}

func TestFacade_List_Empty(t *testing.T) {
	t.Parallel()

	f := newMockFacade(t, NewMockCommandRecorder())

	got, err := f.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("List() = %#v, want empty non-nil slice", got)
	}
}

func TestFacade_List_MalformedRow(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.Stdout = "a\tb\n" + "only-one\n"
	f := newMockFacade(t, recorder, WithListColumns("ID", "Names"))

	got, err := f.List(context.Background())
	if got != nil {
		t.Errorf("List() records = %v, want nil on error", got)
	}
	if !errors.Is(err, ErrMalformedListing) {
		t.Fatalf("List() error = %v, want ErrMalformedListing", err)
	}
	var rowErr *MalformedRowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("error is not *MalformedRowError: %T", err)
	}
	if rowErr.Line != 2 || rowErr.Want != 2 || rowErr.Got != 1 {
		t.Errorf("MalformedRowError = %+v", rowErr)
	}
}

func TestFacade_List_CommandFailed(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.Stderr = "Cannot connect to the Docker daemon at unix:///var/run/docker.sock\n"
	recorder.ExitCode = 1
	f := newMockFacade(t, recorder)

	_, err := f.List(context.Background())
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("List() error = %v, want ErrCommandFailed", err)
	}
	var cmdErr *CommandFailedError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error is not *CommandFailedError: %T", err)
	}
	if cmdErr.Invocation.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d", cmdErr.Invocation.ExitCode())
	}
	if !strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
		t.Errorf("error message %q lacks stderr", err.Error())
	}
}

func TestFacade_Prune(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.Stdout = "Deleted Containers:\nabc123\ndef456\n\nTotal reclaimed space: 1.5kB\n"
	f := newMockFacade(t, recorder)

	report, err := f.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}

	recorder.AssertInvocationCount(t, 1)
	recorder.AssertCommand(t, "/usr/bin/docker", "container", "prune", "--force")

	if diff := cmp.Diff([]string{"abc123", "def456"}, report.Deleted); diff != "" {
		t.Errorf("Deleted mismatch (-want +got):\n%s", diff)
	}
	if report.ReclaimedBytes != 1500 {
		t.Errorf("ReclaimedBytes = %d, want 1500", report.ReclaimedBytes)
	}
	if report.Invocation == nil {
		t.Error("Invocation is nil")
	}
}

func TestFacade_Prune_AnswersConfirmation(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.EchoStdin = true
	f := newMockFacade(t, recorder)

	report, err := f.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if got := report.Invocation.Stdout(); got != "y\n" {
		t.Errorf("prune stdin = %q, want %q", got, "y\n")
	}
}

func TestFacade_Prune_NothingToPrune(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.Stdout = "Total reclaimed space: 0B\n"
	f := newMockFacade(t, recorder)

	report, err := f.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if len(report.Deleted) != 0 || report.ReclaimedBytes != 0 {
		t.Errorf("report = %+v, want empty", report)
	}
}

func TestFacade_Prune_CommandFailed(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.Stderr = "Error response from daemon: a prune operation is already running\n"
	recorder.ExitCode = 1
	f := newMockFacade(t, recorder)

	if _, err := f.Prune(context.Background()); !errors.Is(err, ErrCommandFailed) {
		t.Errorf("Prune() error = %v, want ErrCommandFailed", err)
	}
}

func TestNewFacade(t *testing.T) {
	t.Parallel()

	engine := newMockEngine(t, NewMockCommandRecorder())

	f, err := NewFacade(engine)
	if err != nil {
		t.Fatalf("NewFacade() error = %v", err)
	}
	if f.Image() != DefaultImage {
		t.Errorf("Image() = %q, want %q", f.Image(), DefaultImage)
	}
	if diff := cmp.Diff(DefaultListColumns, f.Columns()); diff != "" {
		t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
	}

	if _, err := NewFacade(nil); err == nil {
		t.Error("NewFacade(nil) error = nil")
	}
	if _, err := NewFacade(engine, WithTimeout(-time.Second)); err == nil {
		t.Error("NewFacade() with negative timeout error = nil")
	}
	if _, err := NewFacade(engine, WithListColumns("ID", "ID")); !errors.Is(err, ErrMalformedListing) {
		t.Errorf("NewFacade() duplicate columns error = %v", err)
	}
	if _, err := NewFacade(engine, WithListColumns("ID}}{{.Bad")); !errors.Is(err, ErrMalformedListing) {
		t.Errorf("NewFacade() invalid column error = %v", err)
	}
}

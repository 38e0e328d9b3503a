// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"
)

// DefaultImage is the base image used when no image is configured.
const DefaultImage = "ubuntu"

type (
	// FacadeOption configures a Facade.
	FacadeOption func(*Facade)

	// Facade runs, lists and prunes containers through an Engine. It holds no
	// mutable state after construction and is safe for concurrent use.
	Facade struct {
		engine  Engine
		image   string
		timeout time.Duration
		columns []string
	}

	// RunRequest describes one throwaway container.
	//
	// Exactly one mode is used: Command (argument vector, the default) or,
	// with RawShell set, Script. In raw-shell mode the script is appended
	// verbatim to the run command line and interpreted by the host shell, so
	// it must come from a trusted source.
	RunRequest struct {
		// Command is the argument vector executed inside the container.
		// Empty means the image's default command.
		Command []string
		// Script is the raw shell text used when RawShell is set.
		Script string
		// RawShell opts in to shell composition of Script.
		RawShell bool
		// Remove selects --rm (RemoveOnExit, the zero value) or KeepAfterExit.
		Remove RemovePolicy
		// Image overrides the facade's base image for this run.
		Image string
	}
)

// Validate reports requests that mix or misuse the two command modes.
func (r RunRequest) Validate() error {
	if r.RawShell {
		if strings.TrimSpace(r.Script) == "" {
			return fmt.Errorf("%w: raw shell mode requires a script", ErrInvalidRunRequest)
		}
		if len(r.Command) > 0 {
			return fmt.Errorf("%w: raw shell mode cannot be combined with an argument vector", ErrInvalidRunRequest)
		}
		return nil
	}
	if r.Script != "" {
		return fmt.Errorf("%w: a script requires the raw shell opt-in", ErrInvalidRunRequest)
	}
	return nil
}

// WithImage sets the base image for Run (default DefaultImage).
func WithImage(image string) FacadeOption {
	return func(f *Facade) {
		if image != "" {
			f.image = image
		}
	}
}

// WithTimeout bounds every invocation. Zero, the default, means no timeout:
// a container that never exits blocks the caller indefinitely.
func WithTimeout(d time.Duration) FacadeOption {
	return func(f *Facade) {
		f.timeout = d
	}
}

// WithListColumns sets the columns List requests (default DefaultListColumns).
func WithListColumns(columns ...string) FacadeOption {
	return func(f *Facade) {
		if len(columns) > 0 {
			f.columns = slices.Clone(columns)
		}
	}
}

// NewFacade creates a facade over engine.
func NewFacade(engine Engine, opts ...FacadeOption) (*Facade, error) {
	if engine == nil {
		return nil, &ErrEngineNotAvailable{Engine: "none", Reason: "no engine supplied"}
	}
	f := &Facade{
		engine:  engine,
		image:   DefaultImage,
		columns: slices.Clone(DefaultListColumns),
	}
	for _, opt := range opts {
		opt(f)
	}
	if err := ValidateColumns(f.columns); err != nil {
		return nil, err
	}
	if f.timeout < 0 {
		return nil, fmt.Errorf("invalid timeout %s: must not be negative", f.timeout)
	}
	return f, nil
}

// Engine returns the engine the facade drives.
func (f *Facade) Engine() Engine { return f.engine }

// Image returns the configured base image.
func (f *Facade) Image() string { return f.image }

// Columns returns a copy of the listing columns.
func (f *Facade) Columns() []string { return slices.Clone(f.columns) }

// --- Run ---

// RunArgs returns the engine arguments for req in argument-vector mode:
// run [--rm] <image> <command...>.
func (f *Facade) RunArgs(req RunRequest) []string {
	args := []string{"run"}
	if req.Remove == RemoveOnExit {
		args = append(args, "--rm")
	}
	args = append(args, f.imageFor(req))
	return append(args, req.Command...)
}

// RunScript returns the raw-shell command text for req:
// <binary> run [--rm] <image> <script>, with the script unmodified.
func (f *Facade) RunScript(req RunRequest) string {
	prefix := append([]string{f.engine.BinaryPath()}, f.RunArgs(RunRequest{Remove: req.Remove, Image: req.Image})...)
	return QuoteArgs(prefix) + " " + req.Script
}

// Run starts a container, waits for it to exit and returns the captured
// invocation. A non-zero exit status is reported in the invocation, not as
// an error.
func (f *Facade) Run(ctx context.Context, req RunRequest) (*Invocation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	var (
		inv *Invocation
		err error
	)
	if req.RawShell {
		if f.engine.BinaryPath() == "" {
			return nil, &ErrEngineNotAvailable{Engine: f.engine.Name(), Reason: "binary not found in PATH"}
		}
		inv, err = f.engine.Invoker().Shell(ctx, f.RunScript(req))
	} else {
		inv, err = f.engine.Command(ctx, nil, f.RunArgs(req)...)
	}
	if err != nil {
		return nil, err
	}
	run := inv.withRemovePolicy(req.Remove)
	if req.RawShell {
		// Argv keeps the composed engine command line.
		run.script = req.Script
	}
	return run, nil
}

// RunAndEcho runs req and prints the outcome to w with Echo.
func (f *Facade) RunAndEcho(ctx context.Context, req RunRequest, w io.Writer) (*Invocation, error) {
	inv, err := f.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := Echo(w, inv); err != nil {
		return inv, fmt.Errorf("echo run output: %w", err)
	}
	return inv, nil
}

// --- List ---

// ListArgs returns the engine arguments that list every container in the
// tab-delimited format List parses.
func (f *Facade) ListArgs() []string {
	return []string{"container", "ls", "-a", "--no-trunc", "--format", ListFormat(f.columns)}
}

// List returns one Record per container, running or stopped, in the engine's
// listing order. A row that does not match the column count fails the whole
// listing with a *MalformedRowError.
//
// Docker quotes the Command column but Podman prints it raw, so on Podman a
// container whose command contains a tab or newline makes its row malformed
// and fails the listing. Drop Command from the columns to list such hosts.
func (f *Facade) List(ctx context.Context) ([]Record, error) {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	inv, err := f.engine.Command(ctx, nil, f.ListArgs()...)
	if err != nil {
		return nil, err
	}
	if !inv.Succeeded() {
		return nil, newCommandFailedError("list containers", inv)
	}
	records, err := ParseRecords(f.columns, inv.Stdout(), SplitTabs)
	if err != nil {
		return nil, fmt.Errorf("parse %s output: %w", f.engine.Name(), err)
	}
	f.engine.Invoker().Logger().Debug("listed containers", "count", len(records))
	return records, nil
}

// --- Prune ---

// Prune removes every stopped container. This is irreversible and affects
// containers this process did not create. It issues exactly one invocation
// and never waits on an interactive prompt: --force confirms, and stdin
// carries a "y" answer for engines that ask anyway.
func (f *Facade) Prune(ctx context.Context) (*PruneReport, error) {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	inv, err := f.engine.Command(ctx, strings.NewReader("y\n"), PruneArgs()...)
	if err != nil {
		return nil, err
	}
	if !inv.Succeeded() {
		return nil, newCommandFailedError("prune containers", inv)
	}

	report, parseErr := ParsePruneOutput(inv.Stdout())
	if parseErr != nil {
		// The containers are already gone; a bad size figure is not worth failing for.
		f.engine.Invoker().Logger().Warn("could not read reclaimed space", "err", parseErr)
	}
	report.Invocation = inv
	f.engine.Invoker().Logger().Debug("pruned containers", "count", len(report.Deleted), "reclaimed", report.ReclaimedSpace)
	return &report, nil
}

func (f *Facade) imageFor(req RunRequest) string {
	if req.Image != "" {
		return req.Image
	}
	return f.image
}

func (f *Facade) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.timeout > 0 {
		return context.WithTimeout(ctx, f.timeout)
	}
	return ctx, func() {}
}

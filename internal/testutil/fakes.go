package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/specialistvlad/gridtask/internal/env"
	"github.com/specialistvlad/gridtask/internal/runner"
)

// FakeRunner records every command it is asked to run instead of starting
// processes. Commands whose joined argv starts with a registered prefix exit
// with the scripted code.
type FakeRunner struct {
	mu       sync.Mutex
	commands []runner.Command
	failures []scriptedFailure
}

type scriptedFailure struct {
	prefix string
	code   int
	dir    string
}

// FailOn makes every command starting with prefix exit with code.
func (f *FakeRunner) FailOn(prefix string, code int) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, scriptedFailure{prefix: prefix, code: code})
	return f
}

// FailOnInDir is like FailOn but only matches commands running in dir.
func (f *FakeRunner) FailOnInDir(dir, prefix string, code int) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, scriptedFailure{prefix: prefix, code: code, dir: dir})
	return f
}

// Run implements runner.Runner.
func (f *FakeRunner) Run(_ context.Context, cmd runner.Command) (*runner.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(cmd.Argv) == 0 {
		return nil, errors.New("fake runner: empty argv")
	}
	f.commands = append(f.commands, cmd)

	line := strings.Join(cmd.Argv, " ")
	for _, fail := range f.failures {
		if fail.dir != "" && fail.dir != cmd.Dir {
			continue
		}
		if strings.HasPrefix(line, fail.prefix) {
			return &runner.Result{Argv: cmd.Argv, ExitCode: fail.code, Output: []byte("scripted failure\n")}, nil
		}
	}
	return &runner.Result{Argv: cmd.Argv, ExitCode: 0}, nil
}

// Commands returns every recorded command.
func (f *FakeRunner) Commands() []runner.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]runner.Command(nil), f.commands...)
}

// Lines returns the recorded argvs joined with spaces.
func (f *FakeRunner) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]string, 0, len(f.commands))
	for _, c := range f.commands {
		lines = append(lines, strings.Join(c.Argv, " "))
	}
	return lines
}

// FakeProvisioner hands out directory-less environments and records every
// request. Initial install targets are forwarded to Runner, if set, so they
// show up in the command log like the real provisioner's pip call.
type FakeProvisioner struct {
	Runner runner.Runner

	mu       sync.Mutex
	requests []env.Request
	disposed []string
	failing  map[string]bool
	seq      int
}

// FailRuntime makes every provisioning request for runtime fail.
func (p *FakeProvisioner) FailRuntime(runtime string) *FakeProvisioner {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failing == nil {
		p.failing = make(map[string]bool)
	}
	p.failing[runtime] = true
	return p
}

// Provision implements env.Provisioner.
func (p *FakeProvisioner) Provision(ctx context.Context, req env.Request) (*env.Environment, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.seq++
	id := fmt.Sprintf("env-%d", p.seq)
	failing := p.failing[req.Runtime]
	p.mu.Unlock()

	if failing {
		return nil, &env.ProvisionError{Task: req.Task, Runtime: req.Runtime, Err: errors.New("scripted: runtime unavailable")}
	}
	e := &env.Environment{ID: id, Task: req.Task, Runtime: req.Runtime}
	if p.Runner != nil && len(req.Targets) > 0 {
		if err := runner.Check(p.Runner.Run(ctx, e.Command("", env.InstallArgv(req.Targets)...))); err != nil {
			return nil, &env.ProvisionError{Task: req.Task, Runtime: req.Runtime, Err: err}
		}
	}
	return e, nil
}

// Dispose implements env.Provisioner.
func (p *FakeProvisioner) Dispose(_ context.Context, e *env.Environment) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disposed = append(p.disposed, e.ID)
	return nil
}

// Requests returns every recorded provisioning request.
func (p *FakeProvisioner) Requests() []env.Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]env.Request(nil), p.requests...)
}

// Disposed returns the IDs of disposed environments in disposal order.
func (p *FakeProvisioner) Disposed() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.disposed...)
}

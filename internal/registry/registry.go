package registry

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/specialistvlad/gridtask/internal/config"
	"github.com/specialistvlad/gridtask/internal/env"
	"github.com/specialistvlad/gridtask/internal/runner"
)

// Body is the procedure a task runs against its session.
type Body func(ctx context.Context, s *Session) error

// Module is the interface that all task modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Task is a registered unit of work.
type Task struct {
	Name        string
	Description string
	// Runtimes is the version matrix. Empty means a single run against the
	// default interpreter.
	Runtimes []string
	// Install is applied while the task's own environment is provisioned.
	Install []string
	// Calls lists the tasks the body may run as sub-steps.
	Calls []string

	handler string
	body    Body
}

// Option customizes a task registered directly from Go code.
type Option func(*Task)

// WithCalls declares the sub-tasks a task may run.
func WithCalls(names ...string) Option {
	return func(t *Task) { t.Calls = append(t.Calls, names...) }
}

// WithInstall declares the targets installed during provisioning.
func WithInstall(targets ...string) Option {
	return func(t *Task) { t.Install = append(t.Install, targets...) }
}

// WithDescription sets the text shown by --list.
func WithDescription(text string) Option {
	return func(t *Task) { t.Description = text }
}

// Registry holds all the registered handlers and task definitions for a
// single application instance, plus the collaborators sessions run against.
type Registry struct {
	Provisioner env.Provisioner
	Runner      runner.Runner
	Banner      *runner.Banner

	handlers map[string]Body
	tasks    map[string]*Task
	order    []string
	model    *config.Model
}

// New creates and initializes a new Registry instance. A nil banner disables
// session summaries.
func New(p env.Provisioner, r runner.Runner, banner *runner.Banner) *Registry {
	return &Registry{
		Provisioner: p,
		Runner:      r,
		Banner:      banner,
		handlers:    make(map[string]Body),
		tasks:       make(map[string]*Task),
		model:       &config.Model{},
	}
}

// RegisterHandler registers the Go body a taskfile binds to through on_run.
func (r *Registry) RegisterHandler(name string, body Body) {
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("task handler with name '%s' already registered", name))
	}
	slog.Debug("Registering task handler.", "name", name)
	r.handlers[name] = body
}

// Register declares a task directly from Go code, bypassing the taskfile.
func (r *Registry) Register(name string, runtimes []string, body Body, opts ...Option) {
	if _, exists := r.tasks[name]; exists {
		panic(fmt.Sprintf("task with name '%s' already registered", name))
	}
	t := &Task{Name: name, Runtimes: slices.Clone(runtimes), body: body}
	for _, opt := range opts {
		opt(t)
	}
	r.tasks[name] = t
	r.order = append(r.order, name)
}

// PopulateTasksFromModel copies the task definitions from the config model
// into the registry. Bodies are bound by ValidateRegistry.
func (r *Registry) PopulateTasksFromModel(model *config.Model) {
	r.model = model
	for _, def := range model.Tasks {
		if _, exists := r.tasks[def.Name]; !exists {
			r.order = append(r.order, def.Name)
		}
		r.tasks[def.Name] = &Task{
			Name:        def.Name,
			Description: def.Description,
			Runtimes:    slices.Clone(def.Runtimes),
			Install:     slices.Clone(def.Install),
			Calls:       slices.Clone(def.Calls),
			handler:     def.OnRun,
		}
	}
}

// Task looks a task up by name.
func (r *Registry) Task(name string) (*Task, bool) {
	t, ok := r.tasks[name]
	return t, ok
}

// Tasks returns every task in registration order.
func (r *Registry) Tasks() []*Task {
	out := make([]*Task, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tasks[name])
	}
	return out
}

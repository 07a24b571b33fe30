package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/gridtask/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gridtask", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
gridtask - Runs a project's developer tasks in isolated, disposable environments.

Usage:
  gridtask [options] TASK
  gridtask --list

Arguments:
  TASK
    Name of the task to run, as declared in the taskfile.

Options:
`)
		flagSet.PrintDefaults()
	}

	var file, runtime string
	flagSet.StringVar(&file, "file", "gridtask.hcl", "Path to the taskfile or a directory of .hcl files. The built-in taskfile is used when it does not exist.")
	flagSet.StringVar(&file, "f", "gridtask.hcl", "Path to the taskfile (shorthand).")
	flagSet.StringVar(&runtime, "runtime", "", "Run only this runtime from the task's matrix.")
	flagSet.StringVar(&runtime, "r", "", "Run only this runtime (shorthand).")
	listFlag := flagSet.Bool("list", false, "List the declared tasks and exit.")
	envDirFlag := flagSet.String("envdir", ".gridtask", "Directory provisioned environments are created under.")
	keepFlag := flagSet.Bool("keep-envs", false, "Keep environment directories after each session.")
	noColorFlag := flagSet.Bool("no-color", false, "Disable coloured session output.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	// Flags may appear on either side of the task name.
	var positional []string
	for rest := args; ; {
		if err := flagSet.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, true, nil
			}
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		if flagSet.NArg() == 0 {
			break
		}
		positional = append(positional, flagSet.Arg(0))
		rest = flagSet.Args()[1:]
	}
	slog.Debug("Arguments parsed successfully.", "positional", positional)

	if len(positional) > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected a single task, got %d: %s", len(positional), strings.Join(positional, ", "))}
	}
	task := ""
	if len(positional) == 1 {
		task = positional[0]
	}

	if task == "" && !*listFlag {
		slog.Debug("No task provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		TaskfilePath: file,
		EnvDir:       *envDirFlag,
		KeepEnvs:     *keepFlag,
		Task:         task,
		Runtime:      runtime,
		List:         *listFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		NoColor:      *noColorFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

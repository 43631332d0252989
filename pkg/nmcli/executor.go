// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package nmcli

import (
	"bytes"
	"context"
	goerrors "errors"
	"os/exec"
	"strings"
	"time"

	"github.com/stratastor/ferret/pkg/errors"
	"github.com/stratastor/logger"
)

// Dangerous characters that could enable command injection
var dangerousChars = "&|><$`\\[];{}"

const (
	maxCommandArgs = 64

	// Default timeout for command execution
	DefaultTimeout = 30 * time.Second
)

// Result carries what one executor invocation produced. A non-zero exit code
// is data, not an executor error: interpreting it is the manager's job.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Executor runs an argument vector on some host and reports exit code,
// stdout and stderr. The manager depends only on this contract; remote
// transports (SSH and the like) plug in from outside.
type Executor interface {
	Run(ctx context.Context, args []string) (*Result, error)
}

// LocalExecutor runs commands on the local host via os/exec.
type LocalExecutor struct {
	logger  logger.Logger
	useSudo bool
	timeout time.Duration
}

// NewLocalExecutor creates a local executor. A non-positive timeout falls
// back to DefaultTimeout; callers wire the configured nmcli timeout here.
func NewLocalExecutor(log logger.Logger, useSudo bool, timeout time.Duration) *LocalExecutor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &LocalExecutor{
		logger:  log,
		useSudo: useSudo,
		timeout: timeout,
	}
}

func (e *LocalExecutor) Run(ctx context.Context, args []string) (*Result, error) {
	if err := validateArgs(args); err != nil {
		return nil, err
	}

	// Apply timeout if the caller didn't set a deadline
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	if e.useSudo {
		args = append([]string{"sudo"}, args...)
	}

	e.logger.Debug("Executing command", "cmd", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if goerrors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), errors.CommandTimeout).
				WithMetadata("command", strings.Join(args, " "))
		}
		return nil, errors.Wrap(err, errors.CommandExecution).
			WithMetadata("command", strings.Join(args, " "))
	}

	return result, nil
}

// validateArgs performs security checks on the argument vector
func validateArgs(args []string) error {
	if len(args) == 0 || args[0] == "" {
		return errors.New(errors.CommandInvalidInput, "empty command")
	}

	name := args[0]
	if !strings.HasPrefix(name, "/") && strings.ContainsAny(name, "/\\") {
		return errors.New(
			errors.CommandInvalidInput,
			"relative paths are not allowed for commands",
		)
	}
	if strings.ContainsAny(name, dangerousChars) {
		return errors.New(errors.CommandInvalidInput, "command contains invalid characters")
	}

	for _, arg := range args[1:] {
		if strings.ContainsAny(arg, dangerousChars) {
			return errors.New(
				errors.CommandInvalidInput,
				"argument contains invalid characters",
			)
		}
	}

	if len(args) > maxCommandArgs {
		return errors.New(errors.CommandInvalidInput, "too many arguments")
	}

	return nil
}

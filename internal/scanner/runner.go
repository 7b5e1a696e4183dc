package scanner

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// CommandRunner abstracts command execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, argv []string) (stdout string, stderr string, exitCode int, err error)
}

// ExecRunner implements CommandRunner via os/exec. Commands run
// argv-style, never through a shell.
type ExecRunner struct{}

func (e *ExecRunner) Run(ctx context.Context, argv []string) (string, string, int, error) {
	if len(argv) == 0 {
		return "", "", -1, fmt.Errorf("empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdoutBuf, stderrBuf strings.Builder
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return stdoutBuf.String(), stderrBuf.String(), -1, fmt.Errorf("exec: %w", err)
		}
	}
	return stdoutBuf.String(), stderrBuf.String(), exitCode, nil
}

// Runner invokes scanner commands and hands their output to the adapter.
type Runner struct {
	cmd     CommandRunner
	log     *zap.Logger
	timeout time.Duration
}

// NewRunner creates a Runner with the given command runner. A nil
// logger disables diagnostics.
func NewRunner(cmd CommandRunner, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cmd: cmd, log: log, timeout: 5 * time.Minute}
}

// SetTimeout overrides the per-command timeout. Values <= 0 are ignored.
func (r *Runner) SetTimeout(d time.Duration) {
	if d > 0 {
		r.timeout = d
	}
}

// Scan runs the adapter's manifest scan against target and returns the
// normalized results. A non-zero exit code with usable stdout is not an
// error: CI-mode scanners exit non-zero whenever findings exist, so
// stdout is treated as the result regardless of the exit code.
func (r *Runner) Scan(ctx context.Context, a Adapter, target string) ([]CheckResult, error) {
	argv := a.ScanManifestsCmd(target)
	stdout, stderr, code, err := r.run(ctx, argv)
	if err != nil {
		return nil, fmt.Errorf("running %s scan: %w", a.Name(), err)
	}
	if code != 0 {
		r.log.Warn("scan exited non-zero",
			zap.String("scanner", a.Name()),
			zap.Int("exit_code", code),
			zap.String("stderr", strings.TrimSpace(stderr)))
	}
	if strings.TrimSpace(stdout) == "" {
		return nil, fmt.Errorf("%s produced no output (exit code %d)", a.Name(), code)
	}
	return a.ParseResults([]byte(stdout))
}

// Version runs the adapter's version command and parses its output.
func (r *Runner) Version(ctx context.Context, a Adapter) (string, error) {
	stdout, _, code, err := r.run(ctx, a.VersionCmd())
	if err != nil {
		return "", fmt.Errorf("querying %s version: %w", a.Name(), err)
	}
	if code != 0 {
		return "", fmt.Errorf("%s version command exited with code %d", a.Name(), code)
	}
	return a.ParseVersion(stdout)
}

func (r *Runner) run(ctx context.Context, argv []string) (string, string, int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.cmd.Run(ctx, argv)
}

package git

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
	"syscall"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Spec describes a single external tool invocation.
type Spec struct {
	Path string // binary to execute, e.g. "git"
	Args []string
	Dir  string
	Env  []string // extra variables, "KEY=value" form
}

// Result is the terminal outcome of a finished process.
type Result struct {
	ExitCode   int
	StderrTail string // last lines of captured stderr, for diagnostics
	Cancelled  bool   // the process was terminated on context cancellation
}

// LineSink receives one line of process stdout as soon as it is produced.
type LineSink func(line string)

// Runner executes the external tool, streaming its stdout line by line.
type Runner interface {
	Run(ctx context.Context, spec Spec, sink LineSink) (Result, error)
}

// passthroughEnv lists host variables always exported to the child process.
var passthroughEnv = []string{
	"HOME",
	"PATH",
	"TZ",

	// Proxy settings for HTTPS remotes.
	"all_proxy",
	"http_proxy",
	"HTTP_PROXY",
	"https_proxy",
	"HTTPS_PROXY",
	"no_proxy",
}

const (
	maxLineSize     = 1024 * 1024
	stderrTailLines = 20
)

// ExecRunner runs the tool with os/exec. The child is started in its own
// process group; when the context is cancelled the whole group receives
// SIGTERM and the exit is reported as a cancellation, distinct from an
// organic non-zero exit.
type ExecRunner struct{}

// NewExecRunner creates a process runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts the process described by spec and blocks until it exits. Each
// stdout line is handed to sink from the calling goroutine, so a consumer
// observes a single delivery context. The returned error is non-nil only for
// spawn or plumbing failures; a non-zero exit is reported via Result.
func (r *ExecRunner) Run(ctx context.Context, spec Spec, sink LineSink) (Result, error) {
	cmd := exec.Command(spec.Path, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = buildEnvironment(spec.Env)
	// Own process group so the termination signal reaches git and any
	// helpers it spawned.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("stderr pipe: %w", err)
	}

	if startErr := cmd.Start(); startErr != nil {
		return Result{ExitCode: -1}, fmt.Errorf("start %s: %w", spec.Path, startErr)
	}

	spawnedProcessesTotal.Inc()
	inFlightProcessGauge.Inc()
	defer inFlightProcessGauge.Dec()

	logger.Debugf("spawned %s (pid %d) args=%v", spec.Path, cmd.Process.Pid, spec.Args)

	var cancelled atomic.Bool
	done := make(chan struct{})

	var group errgroup.Group

	// Terminate the process group when the context is cancelled. Killing
	// the child closes its pipes, which unblocks the stdout loop below.
	group.Go(func() error {
		select {
		case <-ctx.Done():
			cancelled.Store(true)
			if p := cmd.Process; p != nil && p.Pid > 0 {
				_ = syscall.Kill(-p.Pid, syscall.SIGTERM)
			}
		case <-done:
		}
		return nil
	})

	// Collect a bounded stderr tail independently of stdout consumption.
	tail := make([]string, 0, stderrTailLines)
	group.Go(func() error {
		scanner := bufio.NewScanner(stderr)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			if len(tail) == stderrTailLines {
				copy(tail, tail[1:])
				tail = tail[:stderrTailLines-1]
			}
			tail = append(tail, scanner.Text())
		}
		return nil
	})

	// Stdout is drained on the calling goroutine so sink callbacks keep a
	// single consistent delivery context per operation.
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if sink != nil {
			sink(scanner.Text())
		}
	}

	waitErr := cmd.Wait()
	close(done)
	_ = group.Wait() // collectors return nil; tail is stable after this

	result := Result{
		StderrTail: strings.Join(tail, "\n"),
		Cancelled:  cancelled.Load(),
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			result.ExitCode = -1
			return result, fmt.Errorf("wait %s: %w", spec.Path, waitErr)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	return result, nil
}

// buildEnvironment combines the spec's variables with the forced git
// settings and the host passthrough set.
func buildEnvironment(env []string) []string {
	out := make([]string, 0, len(env)+len(passthroughEnv)+2)
	out = append(out, env...)
	out = append(out,
		// Never let git prompt on a pipe; auth comes from the
		// credentials provider or fails outright.
		"GIT_TERMINAL_PROMPT=0",
		// Force english locale for stable diagnostic output.
		"LANG=en_US.UTF-8",
	)
	for _, name := range passthroughEnv {
		if val, ok := os.LookupEnv(name); ok {
			out = append(out, name+"="+val)
		}
	}
	return out
}

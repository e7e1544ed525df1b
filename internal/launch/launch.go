// Package launch hands a chosen package to the external runner script.
package launch

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"charm.land/log/v2"

	"github.com/baaaaaaaka/apkenv-launcher/internal/logging"
)

// ErrBusy is returned while the previously launched program is still alive.
var ErrBusy = errors.New("previous launch still running")

var processAlive = isAlive

// Runner starts Command with the package path appended as its last argument.
// It never waits for the program in the caller; a background goroutine reaps
// it and logs how it ended.
type Runner struct {
	Command []string
	// Output receives the program's stdout and stderr. Nil discards them.
	Output io.Writer
	Logger *log.Logger

	mu   sync.Mutex
	pid  int
	done chan struct{}
	err  error
}

func New(command []string, output io.Writer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Runner{Command: command, Output: output, Logger: logger}
}

// Launch starts the runner for path and returns the child's pid.
func (r *Runner) Launch(path string) (int, error) {
	if len(r.Command) == 0 || strings.TrimSpace(r.Command[0]) == "" {
		return 0, errors.New("launcher command is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("resolve package path: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pid > 0 && processAlive(r.pid) {
		return 0, ErrBusy
	}

	args := append(append([]string{}, r.Command[1:]...), abs)
	cmd := exec.Command(r.Command[0], args...)
	if r.Output != nil {
		cmd.Stdout = r.Output
		cmd.Stderr = r.Output
	}
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start %s: %w", r.Command[0], err)
	}

	pid := cmd.Process.Pid
	done := make(chan struct{})
	r.pid = pid
	r.done = done
	r.err = nil
	r.logger().Info("launched", "apk", abs, "pid", pid)

	go r.reap(cmd, abs, done)
	return pid, nil
}

// Running reports whether the last launched program is still alive.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pid > 0 && processAlive(r.pid)
}

// Wait blocks until the last launched program exits and returns its error.
// It returns nil immediately when nothing was launched.
func (r *Runner) Wait() error {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done == nil {
		return nil
	}
	<-done

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Runner) reap(cmd *exec.Cmd, path string, done chan struct{}) {
	err := cmd.Wait()
	logger := r.logger()
	switch sig, crashed := fatalSignal(err); {
	case err == nil:
		logger.Info("program exited", "apk", path)
	case crashed:
		logger.Error("program crashed", "apk", path, "signal", sig)
	default:
		logger.Warn("program failed", "apk", path, "err", err)
	}

	r.mu.Lock()
	if r.done == done {
		r.pid = 0
		r.err = err
	}
	r.mu.Unlock()
	close(done)
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return logging.Discard()
	}
	return r.Logger
}

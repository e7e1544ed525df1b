//go:build !windows

package launch

import (
	"errors"
	"os/exec"
	"syscall"
)

var crashSignals = map[syscall.Signal]struct{}{
	syscall.SIGABRT: {},
	syscall.SIGBUS:  {},
	syscall.SIGFPE:  {},
	syscall.SIGILL:  {},
	syscall.SIGSEGV: {},
	syscall.SIGSYS:  {},
	syscall.SIGTRAP: {},
}

// fatalSignal reports the signal that killed the program when it was a
// crash signal rather than a normal exit or a SIGTERM/SIGKILL.
func fatalSignal(err error) (string, bool) {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return "", false
	}
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok || !status.Signaled() {
		return "", false
	}
	sig := status.Signal()
	if _, ok := crashSignals[sig]; !ok {
		return "", false
	}
	return sig.String(), true
}

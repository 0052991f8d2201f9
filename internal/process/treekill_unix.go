//go:build !windows

package process

import (
	"errors"
	"os/exec"
	"syscall"
	"time"
)

// KillOptions configures process group termination behavior.
type KillOptions struct {
	// GracePeriod is how long to wait for SIGTERM before sending SIGKILL.
	// Default: 200ms. Ignored when Force is set.
	GracePeriod time.Duration
	// Force skips SIGTERM and sends SIGKILL to the group immediately.
	Force bool
}

// KillProcessGroup terminates the process group led by leaderPID. Without
// Force it sends SIGTERM, polls for the grace period, then escalates to SIGKILL.
func KillProcessGroup(leaderPID int, opts KillOptions) error {
	if leaderPID <= 0 {
		return nil
	}
	if opts.GracePeriod == 0 {
		opts.GracePeriod = 200 * time.Millisecond
	}

	pgid, err := syscall.Getpgid(leaderPID)
	if err != nil {
		if isTypedProcessGoneError(err) {
			return nil
		}
		return err
	}

	if !opts.Force {
		if err := syscall.Kill(-pgid, syscall.SIGTERM); err != nil {
			if isTypedProcessGoneError(err) {
				return nil
			}
			return err
		}

		deadline := time.Now().Add(opts.GracePeriod)
		for time.Now().Before(deadline) {
			if err := syscall.Kill(-pgid, 0); err == syscall.ESRCH {
				return nil
			}
			time.Sleep(10 * time.Millisecond)
		}
	}

	// EPERM can occur if the process group emptied in the meantime
	err = syscall.Kill(-pgid, syscall.SIGKILL)
	if err != nil && !isTypedProcessGoneError(err) && err != syscall.EPERM {
		return err
	}
	return nil
}

// Interrupt delivers SIGINT to a single process.
func Interrupt(pid int) error {
	if pid <= 0 {
		return syscall.ESRCH
	}
	err := syscall.Kill(pid, syscall.SIGINT)
	if isTypedProcessGoneError(err) {
		return nil
	}
	return err
}

// SetProcessGroup configures a command to run in its own process group.
func SetProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

func isTypedProcessGoneError(err error) bool {
	return errors.Is(err, syscall.ESRCH) || errors.Is(err, syscall.ECHILD)
}

package sys

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// ErrNotSupported is returned by every operation the build target lacks.
const ErrNotSupported = syscall.ENOSYS

// InvalidFd is never a valid descriptor.
const InvalidFd = -1

// Op names a facade operation, for use with [Supported].
type Op uint8

const (
	OpOpen Op = iota
	OpRead
	OpWrite
	OpClose
	OpDup2
	OpPipe
	OpFork
	OpExec
	OpPopen
	OpPclose
	OpPoll
	numOps
)

var opNames = [numOps]string{
	OpOpen:   "open",
	OpRead:   "read",
	OpWrite:  "write",
	OpClose:  "close",
	OpDup2:   "dup2",
	OpPipe:   "pipe",
	OpFork:   "fork",
	OpExec:   "execv",
	OpPopen:  "popen",
	OpPclose: "pclose",
	OpPoll:   "poll",
}

// String returns the POSIX name of the operation.
func (o Op) String() string {
	if o < numOps {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Supported reports whether op is backed by a native primitive on this
// target. Unsupported operations fail with [ErrNotSupported].
func Supported(op Op) bool {
	if op >= numOps {
		return false
	}
	return capabilities[op]
}

// Fork always fails with [ErrNotSupported]: the Go runtime is multithreaded
// and cannot survive a bare fork. Use [os.StartProcess] or [Popen] instead.
func Fork() (pid int, err error) {
	return -1, ErrNotSupported
}

// Stream is the pipe end returned by [Popen].
type Stream struct {
	*os.File
	cmd  *exec.Cmd
	mode string
}

// Mode returns the popen mode ("r" or "w") the stream was opened with.
func (s *Stream) Mode() string { return s.mode }

// Pid returns the process id of the command, or -1 if it is not running.
func (s *Stream) Pid() int {
	if s == nil || s.cmd == nil || s.cmd.Process == nil {
		return -1
	}
	return s.cmd.Process.Pid
}

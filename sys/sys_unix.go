//go:build unix

package sys

import (
	"os"

	"golang.org/x/sys/unix"
)

const (
	// POSIX is true when the target implements the Portable Operating
	// System Interface.
	POSIX = true
	// XSI is true when the target implements the X/Open System Interfaces
	// of the Single UNIX Specification.
	XSI = true
	// WINRT is true on restricted runtimes without console or subprocesses.
	WINRT = false
)

// Open flags.
const (
	O_RDONLY = unix.O_RDONLY
	O_WRONLY = unix.O_WRONLY
	O_RDWR   = unix.O_RDWR
	O_APPEND = unix.O_APPEND
	O_CREAT  = unix.O_CREAT
	O_EXCL   = unix.O_EXCL
	O_TRUNC  = unix.O_TRUNC
	// Unix does not distinguish binary and text files.
	O_BINARY = 0
	O_TEXT   = 0
)

const (
	StdinFileno  = 0
	StdoutFileno = 1
	StderrFileno = 2
)

// Poll events.
const (
	POLLIN   = unix.POLLIN
	POLLOUT  = unix.POLLOUT
	POLLERR  = unix.POLLERR
	POLLHUP  = unix.POLLHUP
	POLLNVAL = unix.POLLNVAL
)

// PollFd is struct pollfd.
type PollFd = unix.PollFd

var shell = []string{"/bin/sh", "-c"}

var capabilities = [numOps]bool{
	OpOpen:   true,
	OpRead:   true,
	OpWrite:  true,
	OpClose:  true,
	OpDup2:   true,
	OpPipe:   true,
	OpFork:   false,
	OpExec:   true,
	OpPopen:  true,
	OpPclose: true,
	OpPoll:   true,
}

func Open(path string, flags int, perm uint32) (fd int, err error) {
	return unix.Open(path, flags, perm)
}

func Read(fd int, p []byte) (n int, err error) {
	return unix.Read(fd, p)
}

func Write(fd int, p []byte) (n int, err error) {
	return unix.Write(fd, p)
}

func Close(fd int) error {
	return unix.Close(fd)
}

func Dup2(oldfd, newfd int) error {
	return unix.Dup2(oldfd, newfd)
}

// Pipe fills p[0] with the read end and p[1] with the write end.
func Pipe(p []int) error {
	return unix.Pipe(p)
}

// Execv replaces the process image, keeping the current environment.
func Execv(path string, argv []string) error {
	return unix.Exec(path, argv, os.Environ())
}

// Poll waits up to timeout milliseconds (negative blocks) for events on fds.
func Poll(fds []PollFd, timeout int) (n int, err error) {
	return unix.Poll(fds, timeout)
}

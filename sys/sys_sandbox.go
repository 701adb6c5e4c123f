//go:build js || wasip1

package sys

import "syscall"

// Sandboxed runtimes provide files but no console, pipes or subprocesses.
const (
	POSIX = false
	XSI   = false
	WINRT = true
)

const (
	O_RDONLY = syscall.O_RDONLY
	O_WRONLY = syscall.O_WRONLY
	O_RDWR   = syscall.O_RDWR
	O_APPEND = syscall.O_APPEND
	O_CREAT  = syscall.O_CREAT
	O_EXCL   = syscall.O_EXCL
	O_TRUNC  = syscall.O_TRUNC
	O_BINARY = 0
	O_TEXT   = 0
)

const (
	StdinFileno  = 0
	StdoutFileno = 1
	StderrFileno = 2
)

const (
	POLLIN   = 0x1
	POLLOUT  = 0x4
	POLLERR  = 0x8
	POLLHUP  = 0x10
	POLLNVAL = 0x20
)

type PollFd struct {
	Fd      int32
	Events  int16
	Revents int16
}

var capabilities = [numOps]bool{
	OpOpen:  true,
	OpRead:  true,
	OpWrite: true,
	OpClose: true,
}

func Open(path string, flags int, perm uint32) (int, error) {
	return syscall.Open(path, flags, perm)
}

func Read(fd int, p []byte) (int, error) {
	return syscall.Read(fd, p)
}

func Write(fd int, p []byte) (int, error) {
	return syscall.Write(fd, p)
}

func Close(fd int) error {
	return syscall.Close(fd)
}

func Dup2(oldfd, newfd int) error {
	return ErrNotSupported
}

func Pipe(p []int) error {
	return ErrNotSupported
}

func Execv(path string, argv []string) error {
	return ErrNotSupported
}

func Popen(command string, mode string) (*Stream, error) {
	return nil, ErrNotSupported
}

func Pclose(s *Stream) (int, error) {
	return -1, ErrNotSupported
}

func Poll(fds []PollFd, timeout int) (int, error) {
	return -1, ErrNotSupported
}

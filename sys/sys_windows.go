//go:build windows

package sys

import (
	"os"
	"os/exec"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	POSIX = false
	XSI   = false
	WINRT = false
)

// Open flags. O_BINARY and O_TEXT carry the MSVCRT values; handles opened
// through this package are always binary, so both are accepted and dropped.
const (
	O_RDONLY = windows.O_RDONLY
	O_WRONLY = windows.O_WRONLY
	O_RDWR   = windows.O_RDWR
	O_APPEND = windows.O_APPEND
	O_CREAT  = windows.O_CREAT
	O_EXCL   = windows.O_EXCL
	O_TRUNC  = windows.O_TRUNC
	O_BINARY = 0x8000
	O_TEXT   = 0x4000
)

const (
	StdinFileno  = 0
	StdoutFileno = 1
	StderrFileno = 2
)

// Poll events, as defined for WSAPoll.
const (
	POLLERR  = 0x0001
	POLLHUP  = 0x0002
	POLLNVAL = 0x0004
	POLLOUT  = 0x0010
	POLLIN   = 0x0100 | 0x0200
)

// PollFd mirrors unix.PollFd. Fd is a descriptor from [FdFromSocket]; WSAPoll
// rejects anything other than a socket with WSAENOTSOCK.
type PollFd struct {
	Fd      int32
	Events  int16
	Revents int16
}

// wsaPollFd is WSAPOLLFD.
type wsaPollFd struct {
	fd      windows.Handle
	events  int16
	revents int16
}

var shell = []string{"cmd", "/C"}

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

var (
	modws2_32   = windows.NewLazySystemDLL("ws2_32.dll")
	procWSAPoll = modws2_32.NewProc("WSAPoll")
)

func Open(path string, flags int, perm uint32) (int, error) {
	h, err := windows.Open(path, flags&^(O_BINARY|O_TEXT), perm)
	if err != nil {
		return -1, err
	}
	return fds.alloc(h, kindHandle), nil
}

// FdFromSocket registers a caller-created socket, returning a descriptor
// usable with Read, Write, Close and Poll. The descriptor owns the socket:
// Close calls closesocket.
func FdFromSocket(s windows.Handle) int {
	return fds.alloc(s, kindSocket)
}

func Read(fd int, p []byte) (int, error) {
	e, err := fds.get(fd)
	if err != nil {
		return 0, err
	}
	if e.kind == kindSocket {
		return recvSocket(e.h, p)
	}
	n, err := windows.Read(e.h, p)
	if err == windows.ERROR_BROKEN_PIPE {
		// end of file for the read end of a pipe
		return 0, nil
	}
	return n, err
}

func Write(fd int, p []byte) (int, error) {
	e, err := fds.get(fd)
	if err != nil {
		return 0, err
	}
	if e.kind == kindSocket {
		return sendSocket(e.h, p)
	}
	return windows.Write(e.h, p)
}

func recvSocket(s windows.Handle, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	buf := windows.WSABuf{Len: uint32(len(p)), Buf: &p[0]}
	var n, flags uint32
	if err := windows.WSARecv(s, &buf, 1, &n, &flags, nil, nil); err != nil {
		return 0, err
	}
	return int(n), nil
}

func sendSocket(s windows.Handle, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	buf := windows.WSABuf{Len: uint32(len(p)), Buf: &p[0]}
	var n uint32
	if err := windows.WSASend(s, &buf, 1, &n, 0, nil, nil); err != nil {
		return 0, err
	}
	return int(n), nil
}

// Close releases fd. The standard handles the process started with are
// removed from the table but left open.
func Close(fd int) error {
	e, err := fds.release(fd)
	if err != nil {
		return err
	}
	return e.close()
}

// Dup2 makes newfd refer to a duplicate of oldfd's handle, closing what newfd
// referred to. For 0, 1 and 2 the process standard handle is updated too.
func Dup2(oldfd, newfd int) error {
	e, err := fds.get(oldfd)
	if err != nil {
		return err
	}
	if newfd < 0 {
		return syscall.EBADF
	}
	if oldfd == newfd {
		return nil
	}
	if e.kind == kindSocket {
		// DuplicateHandle does not apply to sockets
		return windows.WSAEOPNOTSUPP
	}
	proc := windows.CurrentProcess()
	var dup windows.Handle
	if err := windows.DuplicateHandle(proc, e.h, proc, &dup, 0, true, windows.DUPLICATE_SAME_ACCESS); err != nil {
		return err
	}
	if std, ok := stdHandles[newfd]; ok {
		if err := windows.SetStdHandle(std, dup); err != nil {
			_ = windows.CloseHandle(dup)
			return err
		}
	}
	prev := fds.put(newfd, fdEntry{h: dup, kind: kindHandle})
	_ = prev.close()
	return nil
}

// Pipe fills p[0] with the read end and p[1] with the write end.
func Pipe(p []int) error {
	if len(p) != 2 {
		return syscall.EINVAL
	}
	var h [2]windows.Handle
	if err := windows.Pipe(h[:]); err != nil {
		return err
	}
	p[0], p[1] = fds.alloc(h[0], kindHandle), fds.alloc(h[1], kindHandle)
	return nil
}

// Execv behaves as MSVCRT _execv: Windows cannot replace a process image,
// so the program is run to completion and the caller exits with its status.
// Execv only returns if the program could not be started.
func Execv(path string, argv []string) error {
	cmd := exec.Command(path)
	if len(argv) > 0 {
		cmd.Args = argv
	}
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Start(); err != nil {
		return err
	}
	_ = cmd.Wait()
	os.Exit(cmd.ProcessState.ExitCode())
	return nil
}

// Poll waits up to timeout milliseconds (negative blocks) for events on
// socket descriptors, using WSAPoll.
func Poll(pfds []PollFd, timeout int) (int, error) {
	if len(pfds) == 0 {
		return 0, syscall.EINVAL
	}
	raw := make([]wsaPollFd, len(pfds))
	for i := range pfds {
		e, err := fds.get(int(pfds[i].Fd))
		if err != nil {
			return -1, err
		}
		raw[i] = wsaPollFd{fd: e.h, events: pfds[i].Events}
	}
	r, _, e := procWSAPoll.Call(uintptr(unsafe.Pointer(&raw[0])), uintptr(len(raw)), uintptr(int32(timeout)))
	n := int(int32(r))
	if n < 0 {
		return -1, e
	}
	for i := range raw {
		pfds[i].Revents = raw[i].revents
	}
	return n, nil
}

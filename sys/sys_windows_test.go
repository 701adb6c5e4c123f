//go:build windows

package sys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"
)

// loopbackSocket returns a UDP socket bound to the loopback address and
// connected to itself.
func loopbackSocket(t *testing.T) windows.Handle {
	t.Helper()
	var data windows.WSAData
	require.NoError(t, windows.WSAStartup(uint32(0x202), &data))
	t.Cleanup(func() { _ = windows.WSACleanup() })

	s, err := windows.Socket(windows.AF_INET, windows.SOCK_DGRAM, windows.IPPROTO_UDP)
	require.NoError(t, err)
	require.NoError(t, windows.Bind(s, &windows.SockaddrInet4{Addr: [4]byte{127, 0, 0, 1}}))
	sa, err := windows.Getsockname(s)
	require.NoError(t, err)
	require.NoError(t, windows.Connect(s, sa))
	return s
}

func handleOpen(h windows.Handle) bool {
	_, err := windows.GetFileType(h)
	return err == nil
}

func TestPoll_Socket(t *testing.T) {
	require.True(t, Supported(OpPoll))

	fd := FdFromSocket(loopbackSocket(t))
	defer Close(fd)

	pfds := []PollFd{{Fd: int32(fd), Events: POLLIN}}
	n, err := Poll(pfds, 0)
	require.NoError(t, err)
	assert.Zero(t, n)

	written, err := Write(fd, []byte("ping"))
	require.NoError(t, err)
	assert.Equal(t, 4, written)

	n, err = Poll(pfds, 5000)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NotZero(t, pfds[0].Revents&POLLIN)

	buf := make([]byte, 16)
	read, err := Read(fd, buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf[:read]))

	assert.ErrorIs(t, Dup2(fd, fd+1), windows.WSAEOPNOTSUPP)
}

func TestPoll_NotSocket(t *testing.T) {
	p := make([]int, 2)
	require.NoError(t, Pipe(p))
	defer Close(p[0])
	defer Close(p[1])

	// WSAPoll either fails the call or flags the entry
	pfds := []PollFd{{Fd: int32(p[0]), Events: POLLIN}}
	if _, err := Poll(pfds, 0); err != nil {
		assert.ErrorIs(t, err, windows.WSAENOTSOCK)
	} else {
		assert.NotZero(t, pfds[0].Revents&POLLNVAL)
	}
}

func TestClose_ReusedStandardSlot(t *testing.T) {
	// descriptor 0 is handed out again once closed
	saved, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	require.NoError(t, err)
	e, err := fds.release(StdinFileno)
	if err != nil {
		t.Skip("no standard input")
	}
	defer func() {
		if prev := fds.put(StdinFileno, e); prev.kind != kindFree {
			_ = prev.close()
		}
	}()

	name := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(name, []byte("x"), 0o600))
	fd, err := Open(name, O_RDONLY, 0)
	require.NoError(t, err)
	require.Equal(t, StdinFileno, fd)

	entry, err := fds.get(fd)
	require.NoError(t, err)
	assert.Equal(t, kindHandle, entry.kind)
	require.NoError(t, Close(fd))

	// the file handle was closed, not leaked
	assert.False(t, handleOpen(entry.h))

	h, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	require.NoError(t, err)
	assert.Equal(t, saved, h)
}

func TestDup2_ReplacesOwnedHandle(t *testing.T) {
	p := make([]int, 2)
	require.NoError(t, Pipe(p))
	defer Close(p[0])
	defer Close(p[1])

	target := p[1] + 8
	require.NoError(t, Dup2(p[1], target))
	first, err := fds.get(target)
	require.NoError(t, err)

	require.NoError(t, Dup2(p[0], target))
	second, err := fds.get(target)
	require.NoError(t, err)
	assert.NotEqual(t, first.h, second.h)

	// the first duplicate was closed when it was replaced
	assert.False(t, handleOpen(first.h))
	assert.True(t, handleOpen(second.h))
	require.NoError(t, Close(target))
}

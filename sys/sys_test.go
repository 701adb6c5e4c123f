package sys

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFork_NotSupported(t *testing.T) {
	for range 3 {
		pid, err := Fork()
		assert.Equal(t, -1, pid)
		require.Error(t, err)
		assert.True(t, errors.Is(err, syscall.ENOSYS))
		assert.Equal(t, ErrNotSupported, err)
	}
	assert.False(t, Supported(OpFork))
}

func TestOp_String(t *testing.T) {
	for _, tc := range []struct {
		op   Op
		want string
	}{
		{OpOpen, "open"},
		{OpDup2, "dup2"},
		{OpExec, "execv"},
		{OpPoll, "poll"},
		{numOps, "Op(11)"},
	} {
		assert.Equal(t, tc.want, tc.op.String())
	}
	assert.False(t, Supported(numOps))
	assert.False(t, Supported(Op(200)))
}

func TestSupported_FilePrimitives(t *testing.T) {
	for _, op := range []Op{OpOpen, OpRead, OpWrite, OpClose} {
		assert.Truef(t, Supported(op), "%s", op)
	}
}

func TestCapabilityFlags(t *testing.T) {
	if WINRT {
		assert.False(t, POSIX)
		assert.False(t, Supported(OpPipe))
		assert.False(t, Supported(OpPopen))
	}
	if XSI {
		assert.True(t, POSIX)
	}
}

func TestOpen_BinaryTextFlagsCombine(t *testing.T) {
	name := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(name, []byte("hello\r\nworld"), 0o600))

	for _, flags := range []int{O_RDONLY | O_BINARY, O_RDONLY | O_TEXT} {
		fd, err := Open(name, flags, 0)
		require.NoError(t, err)
		buf := make([]byte, 64)
		n, err := Read(fd, buf)
		require.NoError(t, err)
		assert.Equal(t, "hello\r\nworld", string(buf[:n]))
		require.NoError(t, Close(fd))
	}
}

func TestOpenWriteRead(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out")
	fd, err := Open(name, O_WRONLY|O_CREAT|O_TRUNC, 0o600)
	require.NoError(t, err)
	n, err := Write(fd, []byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	require.NoError(t, Close(fd))

	fd, err = Open(name, O_RDONLY, 0)
	require.NoError(t, err)
	defer Close(fd)
	buf := make([]byte, 16)
	n, err = Read(fd, buf)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(buf[:n]))
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"), O_RDONLY, 0)
	require.Error(t, err)
	var errno syscall.Errno
	assert.True(t, errors.As(err, &errno))
}

func TestStream_NilPid(t *testing.T) {
	var s *Stream
	assert.Equal(t, -1, s.Pid())
}

// Package sys is a thin facade over the host's system call layer, exposing
// POSIX names and signatures regardless of the build target.
//
// # Platform Support
//
// Each operation resolves, at build time, to the native primitive:
//   - unix: golang.org/x/sys/unix
//   - windows: golang.org/x/sys/windows, behind a CRT-style descriptor table
//     so that descriptors are small integers and 0, 1 and 2 name the
//     standard streams. Poll is WSAPoll, which only accepts sockets;
//     register one with FdFromSocket.
//   - js, wasip1: file primitives only (see [WINRT])
//
// Operations a target cannot provide still exist and fail immediately with
// [ErrNotSupported]. [Supported] reports availability at run time, and the
// [POSIX], [XSI] and [WINRT] constants describe the target at compile time.
//
// # Errors
//
// Nothing is retried, buffered or translated. Errors are the platform errno
// (a [syscall.Errno]), and interpreting them is the caller's job.
//
// # Flags
//
// [O_BINARY] and [O_TEXT] exist everywhere. They carry the MSVCRT values on
// windows and are zero elsewhere, so flag expressions such as
//
//	fd, err := sys.Open(name, sys.O_RDONLY|sys.O_BINARY, 0)
//
// compile and behave the same on every target.
package sys

// Example: System Call Facade
//
// This example demonstrates the sys package:
// - Checking capabilities before use
// - Reading the output of a shell command with Popen
// - Waiting on a pipe with Poll
//
// Run with: go run ./examples/03_sys/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joeycumines/go-sigevent/sys"
)

func main() {
	fmt.Printf("POSIX=%t XSI=%t WINRT=%t\n", sys.POSIX, sys.XSI, sys.WINRT)
	for op := sys.OpOpen; op <= sys.OpPoll; op++ {
		fmt.Printf("  %-6s %t\n", op, sys.Supported(op))
	}

	if sys.Supported(sys.OpPopen) {
		popenExample()
	}
	if sys.Supported(sys.OpPipe) && sys.Supported(sys.OpPoll) {
		pollExample()
	}
}

func popenExample() {
	fmt.Println("\n=== Popen ===")

	s, err := sys.Popen("echo hello from the shell", "r")
	if err != nil {
		fmt.Fprintf(os.Stderr, "popen: %v\n", err)
		return
	}
	out, _ := io.ReadAll(s)
	status, err := sys.Pclose(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pclose: %v\n", err)
		return
	}
	fmt.Printf("output: %q, status: %d\n", out, status)
}

func pollExample() {
	fmt.Println("\n=== Poll ===")

	p := make([]int, 2)
	if err := sys.Pipe(p); err != nil {
		fmt.Fprintf(os.Stderr, "pipe: %v\n", err)
		return
	}
	defer sys.Close(p[0])
	defer sys.Close(p[1])

	fds := []sys.PollFd{{Fd: int32(p[0]), Events: sys.POLLIN}}

	n, err := sys.Poll(fds, 0)
	fmt.Printf("before write: ready=%d err=%v\n", n, err)

	if _, err := sys.Write(p[1], []byte("x")); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		return
	}

	n, err = sys.Poll(fds, 1000)
	fmt.Printf("after write: ready=%d revents=%#x err=%v\n", n, fds[0].Revents, err)
}

//go:build unix || windows

package sys

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// Popen starts command through the platform shell, connecting its stdout
// (mode "r") or stdin (mode "w") to the returned stream.
func Popen(command string, mode string) (*Stream, error) {
	if mode != "r" && mode != "w" {
		return nil, syscall.EINVAL
	}
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(shell[0], append(append([]string(nil), shell[1:]...), command)...)
	s := &Stream{cmd: cmd, mode: mode}
	// child keeps one end, the caller gets the other
	var child *os.File
	if mode == "r" {
		cmd.Stdout, s.File, child = pw, pr, pw
	} else {
		cmd.Stdin, s.File, child = pr, pw, pr
	}
	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return nil, err
	}
	_ = child.Close()
	return s, nil
}

// Pclose closes the stream and waits for the command, returning its exit
// status.
func Pclose(s *Stream) (int, error) {
	if s == nil || s.cmd == nil || s.File == nil {
		return -1, syscall.EINVAL
	}
	_ = s.File.Close()
	err := s.cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return s.cmd.ProcessState.ExitCode(), nil
}

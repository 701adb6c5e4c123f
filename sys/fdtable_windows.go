//go:build windows

package sys

import (
	"sync"
	"syscall"

	"golang.org/x/sys/windows"
)

var stdHandles = map[int]uint32{
	StdinFileno:  windows.STD_INPUT_HANDLE,
	StdoutFileno: windows.STD_OUTPUT_HANDLE,
	StderrFileno: windows.STD_ERROR_HANDLE,
}

// handleKind records who owns a slot's handle, and how it is closed.
type handleKind uint8

const (
	kindFree handleKind = iota
	// kindStd is a standard handle the process started with, never closed
	kindStd
	kindHandle
	kindSocket
)

type fdEntry struct {
	h    windows.Handle
	kind handleKind
}

// close releases the handle, if this package owns it.
func (e fdEntry) close() error {
	switch e.kind {
	case kindHandle:
		return windows.CloseHandle(e.h)
	case kindSocket:
		return windows.Closesocket(e.h)
	default:
		return nil
	}
}

// fdTable maps small integer descriptors onto handles, the way the C runtime
// does.
type fdTable struct {
	mu    sync.Mutex
	slots []fdEntry
}

var fds = newFdTable()

func newFdTable() *fdTable {
	t := &fdTable{slots: make([]fdEntry, StderrFileno+1)}
	for fd, std := range stdHandles {
		h, err := windows.GetStdHandle(std)
		if err != nil || h == 0 || h == windows.InvalidHandle {
			continue
		}
		t.slots[fd] = fdEntry{h: h, kind: kindStd}
	}
	return t
}

// alloc stores h in the lowest free slot.
func (t *fdTable) alloc(h windows.Handle, kind handleKind) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := fdEntry{h: h, kind: kind}
	for fd, v := range t.slots {
		if v.kind == kindFree {
			t.slots[fd] = e
			return fd
		}
	}
	t.slots = append(t.slots, e)
	return len(t.slots) - 1
}

func (t *fdTable) get(fd int) (fdEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if fd < 0 || fd >= len(t.slots) || t.slots[fd].kind == kindFree {
		return fdEntry{}, syscall.EBADF
	}
	return t.slots[fd], nil
}

// put stores e at fd, growing the table, and returns the entry it replaced.
func (t *fdTable) put(fd int, e fdEntry) fdEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	for fd >= len(t.slots) {
		t.slots = append(t.slots, fdEntry{})
	}
	prev := t.slots[fd]
	t.slots[fd] = e
	return prev
}

func (t *fdTable) release(fd int) (fdEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if fd < 0 || fd >= len(t.slots) || t.slots[fd].kind == kindFree {
		return fdEntry{}, syscall.EBADF
	}
	e := t.slots[fd]
	t.slots[fd] = fdEntry{}
	return e, nil
}

//go:build !linux

package sigevent

import (
	"fmt"

	"github.com/joeycumines/go-sigevent/diag"
)

func createKernelTimer(clock Clock, n *notification, _ diag.Sink) (kernelTimer, error) {
	if n.desc.Notify == NotifySignal {
		return nil, fmt.Errorf("%w: notification mechanism %s", ErrNotSupported, n.desc.Notify)
	}
	t, err := createRuntimeTimer(clock, n)
	if err != nil {
		return nil, err
	}
	return t, nil
}

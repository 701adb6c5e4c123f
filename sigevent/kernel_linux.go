package sigevent

import "github.com/joeycumines/go-sigevent/diag"

func createKernelTimer(clock Clock, n *notification, sink diag.Sink) (kernelTimer, error) {
	if n.desc.Notify == NotifySignal {
		t, err := createPosixTimer(clock, n)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	t, err := createTimerfd(clock, n, sink)
	if err != nil {
		return nil, err
	}
	return t, nil
}

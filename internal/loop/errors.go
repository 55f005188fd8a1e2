package loop

import (
	"errors"
	"fmt"
)

// ErrTerminated is returned by an update or render callback to end the loop
// cleanly at the current iteration.
var ErrTerminated = errors.New("loop terminated")

// WorkerFault describes an abnormal end of the worker goroutine: a panic in a
// callback or a callback error other than ErrTerminated.
type WorkerFault struct {
	Value any
	Stack []byte
}

func (f *WorkerFault) Error() string {
	return fmt.Sprintf("loop worker fault: %v", f.Value)
}

// Unwrap exposes the callback error, if the fault carries one.
func (f *WorkerFault) Unwrap() error {
	if err, ok := f.Value.(error); ok {
		return err
	}
	return nil
}

package run

import (
	"fmt"
	"runtime/debug"
)

//PanicError is what a recovered panic turns into. It unwraps to the panic value when that value is an error.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func recovered(p any) error {
	return &PanicError{Value: p, Stack: debug.Stack()}
}

//WithError calls fn and turns its panic, if any, into a *PanicError.
func WithError(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = recovered(p)
		}
	}()

	return fn()
}

//AsyncWithError is WithError in a new goroutine. The returned channel receives exactly one value.
func AsyncWithError(fn func() error) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- WithError(fn)
	}()

	return errCh
}

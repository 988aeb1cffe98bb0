package processor

import (
	"errors"
	"fmt"
)

// Failure kinds. Each aborts the frame.
var (
	ErrBufferUnavailable = errors.New("image buffer unavailable")
	ErrBitmapConversion  = errors.New("bitmap conversion failed")
	ErrDetection         = errors.New("text detection failed")
	ErrPanic             = errors.New("frame processing panicked")
)

// FrameError carries the failure kind together with the underlying cause.
// errors.Is matches both the kind and the cause.
type FrameError struct {
	Kind error
	Err  error
}

func (e *FrameError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *FrameError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// status returns the metrics label for err.
func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrBufferUnavailable):
		return "buffer_unavailable"
	case errors.Is(err, ErrBitmapConversion):
		return "bitmap_conversion"
	case errors.Is(err, ErrDetection):
		return "detection"
	case errors.Is(err, ErrPanic):
		return "panic"
	default:
		return "error"
	}
}

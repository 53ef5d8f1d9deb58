package imagepkg

import "fmt"

// DecodeError reports an asset whose bytes could not be turned into an image.
type DecodeError struct {
	Asset string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Asset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RenderError reports a failure of the drawing surface itself.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

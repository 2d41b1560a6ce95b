package corpus

import "fmt"

// ReadError indicates the corpus could not be read completely. It aborts the
// run; the loader never returns a partially populated corpus alongside one.
type ReadError struct {
	Root string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read corpus under %s: %v", e.Root, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

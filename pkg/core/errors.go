package core

import "fmt"

// InvalidRootError is returned when the directory to catalog does not exist
// or is not a directory.
type InvalidRootError struct {
	Path string
	Err  error
}

func (e *InvalidRootError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s is not a directory: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s is not a directory", e.Path)
}

func (e *InvalidRootError) Unwrap() error {
	return e.Err
}

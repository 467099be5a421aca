package common

import (
	"errors"
	"fmt"
)

// Common pipeline errors. Lookup misses are reported as zero values by the
// store and mapper layers; these sentinels mark actual failures.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
)

// WrapError annotates err with message, preserving the chain for errors.Is.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

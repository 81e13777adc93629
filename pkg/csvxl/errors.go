package csvxl

import (
	"errors"
	"fmt"
)

// ErrNoInput indicates no CSV files were found in the given inputs.
var ErrNoInput = errors.New("no csv files to convert")

// ConvertError represents a failure at one stage of a conversion run.
type ConvertError struct {
	Target string
	Stage  Stage
	Err    error
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("conversion error at %q (%s): %v", e.Target, e.Stage, e.Err)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

// NewConvertError creates a new ConvertError.
func NewConvertError(target string, stage Stage, err error) *ConvertError {
	return &ConvertError{
		Target: target,
		Stage:  stage,
		Err:    err,
	}
}

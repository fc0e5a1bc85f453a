package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/woxQAQ/boundary-probe/internal/inspect"
)

const (
	exitFailure    = 1
	exitDecode     = 2
	exitOutOfRange = 3
)

// errorKind names the failure class printed to the diagnostic sink.
func errorKind(err error) string {
	var decodeErr *inspect.DecodeError
	var rangeErr *inspect.IndexOutOfRangeError
	switch {
	case errors.As(err, &decodeErr):
		return "DecodeError"
	case errors.As(err, &rangeErr):
		return "IndexOutOfRange"
	default:
		return "Error"
	}
}

func exitCode(err error) int {
	switch errorKind(err) {
	case "DecodeError":
		return exitDecode
	case "IndexOutOfRange":
		return exitOutOfRange
	default:
		return exitFailure
	}
}

func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s: %v\n", errorKind(err), err)
}

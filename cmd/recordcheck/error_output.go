package main

import (
	"errors"

	"github.com/reoring/recordcheck"
	"github.com/reoring/recordcheck/internal/config"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitConfig  = 2
)

// errInvalid marks an invalid document whose summary was already printed.
var errInvalid = errors.New("document is invalid")

// reportedError wraps an error whose details were already written to the
// output, so run does not print it a second time.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func isReported(err error) bool {
	var re *reportedError
	return errors.Is(err, errInvalid) || errors.As(err, &re)
}

func exitCodeForError(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errInvalid):
		return exitInvalid
	default:
		// configuration, decode and usage errors
		return exitConfig
	}
}

func errorCode(err error) string {
	var ce *config.Error
	switch {
	case err == nil:
		return ""
	case errors.Is(err, errInvalid):
		return "invalid"
	case errors.As(err, &ce), errors.Is(err, recordcheck.ErrUnknownKind):
		return "configuration_error"
	case errors.Is(err, recordcheck.ErrDecode):
		return "decode_error"
	default:
		return "usage_error"
	}
}

package domain

import "errors"

// Sentinel error kinds for the detection pipeline. None of these are
// retried; detection is deterministic given its inputs.
var (
	// ErrUnknownFileType means the syntax resolver found no DelimiterSet
	// for a path. Not fatal: callers treat it as "skip this file".
	ErrUnknownFileType = errors.New("unknown file type")

	// ErrDecodeFailure means neither UTF-8 nor the ISO-8859-1 fallback
	// could decode a file's leading bytes.
	ErrDecodeFailure = errors.New("decode failure")

	// ErrIOFailure means a file could not be opened or read. Recoverable
	// at the scan level: the caller logs it and continues with other files.
	ErrIOFailure = errors.New("io failure")

	// ErrClassifierBuild means the taxonomy failed a construction
	// invariant (missing/duplicate/reserved tag). Fatal at startup.
	ErrClassifierBuild = errors.New("classifier build failure")

	// ErrBoundaryNotFound means a matched tag's start or end line could
	// not be located. The hit is still returned with empty text.
	ErrBoundaryNotFound = errors.New("license boundary not found")
)

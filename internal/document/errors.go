package document

import "errors"

var (
	// ErrMalformed indicates the bytes on disk are not a JSON object.
	ErrMalformed = errors.New("malformed JSON document")

	// ErrNotObject indicates a key that must hold an object holds something else.
	ErrNotObject = errors.New("value is not an object")
)

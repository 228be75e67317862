package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrIO indicates a file could not be read or written.
	ErrIO = errors.New("io error")

	// ErrParse indicates a document is not valid structured data.
	ErrParse = errors.New("parse error")

	// ErrConfiguration indicates the configured identifiers or vocabularies
	// do not match the loaded metadata.
	ErrConfiguration = errors.New("configuration error")

	// ErrPoolExhausted indicates the identifier pool ran out of entries.
	ErrPoolExhausted = errors.New("identifier pool exhausted")

	// ErrNotFound indicates a referenced record was not found.
	ErrNotFound = errors.New("not found")
)

package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransport covers requests that did not complete or returned a non-2xx status.
	ErrTransport = errors.New("transport failure")
	// ErrMalformedResponse is returned when a response completed but lacked expected fields.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrNotFound means the requested asset/currency pair is absent from the payload.
	// It is always reported together with ErrMalformedResponse.
	ErrNotFound = errors.New("not found")

	ErrScanAborted      = errors.New("market scan aborted")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrResolverContract = errors.New("resolver returned a chain outside the offered candidates")

	ErrAmbiguousAddress = errors.New("address matches several chains")
	ErrUnknownAddress   = errors.New("address matches no known chain")
)

// ResolutionError is returned by resolvers that refuse to pick a chain.
type ResolutionError struct {
	Address    string
	Candidates []string
	Err        error
}

func (e *ResolutionError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("%v: %s", e.Err, e.Address)
	}
	return fmt.Sprintf("%v: %s (candidates: %s)", e.Err, e.Address, strings.Join(e.Candidates, ", "))
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

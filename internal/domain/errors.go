package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals that a required certificate field is missing or unusable.
	ErrInvalidInput = errors.New("invalid certificate input")
	// ErrQREncoding signals that the verification URL could not be encoded as a QR matrix.
	ErrQREncoding = errors.New("qr encoding failed")
	// ErrRenderBackend signals that the document backend failed while drawing or serializing.
	ErrRenderBackend = errors.New("render backend failed")
)

// InvalidInputError reports which CertificateRequest field was rejected.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// QREncodingError wraps the encoder failure, or describes a malformed matrix when Err is nil.
type QREncodingError struct {
	Reason string
	Err    error
}

func (e *QREncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", ErrQREncoding, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrQREncoding, e.Reason)
}

func (e *QREncodingError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrQREncoding, e.Err}
	}
	return []error{ErrQREncoding}
}

// RenderBackendError records the pipeline stage during which the backend failed.
// Any bytes produced by the failing call must be discarded.
type RenderBackendError struct {
	Stage string
	Err   error
}

func (e *RenderBackendError) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("%s: %v", ErrRenderBackend, e.Err)
	}
	return fmt.Sprintf("%s during %s: %v", ErrRenderBackend, e.Stage, e.Err)
}

func (e *RenderBackendError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrRenderBackend, e.Err}
	}
	return []error{ErrRenderBackend}
}

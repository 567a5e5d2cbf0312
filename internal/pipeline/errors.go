package pipeline

import (
	"errors"
	"fmt"
)

// Error kinds reported per brand.
const (
	KindNotFound   = "not_found"
	KindExtraction = "extraction"
)

// ErrorClassifier allows errors to declare their classification for reporting.
type ErrorClassifier interface {
	ErrorKind() string
}

// BrandError records why a brand produced an empty library.
type BrandError struct {
	Brand string
	Kind  string
	Err   error
}

func (e *BrandError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Brand, e.Kind, e.Err)
}

func (e *BrandError) Unwrap() error { return e.Err }

func (e *BrandError) ErrorKind() string { return e.Kind }

// Classify returns the kind of err, or "" when err does not carry one.
func Classify(err error) string {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	return ""
}

// Package apperr holds the error categories that end an analysis request.
// Missing page fields are not errors and never reach this package.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation = errors.New("validation")
	ErrConfig     = errors.New("config")
	ErrUpstream   = errors.New("upstream")
)

type wrapped struct {
	kind error
	msg  string
	err  error
}

func (w *wrapped) Error() string {
	if w.err != nil {
		return w.msg + ": " + w.err.Error()
	}
	return w.msg
}

func (w *wrapped) Unwrap() []error {
	if w.err != nil {
		return []error{w.kind, w.err}
	}
	return []error{w.kind}
}

func Validation(format string, args ...any) error {
	return &wrapped{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func Config(format string, args ...any) error {
	return &wrapped{kind: ErrConfig, msg: fmt.Sprintf(format, args...)}
}

// Upstream marks err as a failure of the page fetch collaborator.
func Upstream(msg string, err error) error {
	return &wrapped{kind: ErrUpstream, msg: msg, err: err}
}

// Message is the client-facing text for err. Upstream details stay in the logs.
func Message(err error) string {
	var w *wrapped
	switch {
	case errors.Is(err, ErrValidation) && errors.As(err, &w):
		return w.msg
	case errors.Is(err, ErrConfig):
		return "Service is misconfigured."
	default:
		return "Scraping failed. Try again later."
	}
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConfig):
		return http.StatusInternalServerError
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether another fetch attempt could succeed.
func Retryable(err error) bool {
	return errors.Is(err, ErrUpstream) && !errors.Is(err, ErrConfig)
}

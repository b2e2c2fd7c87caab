package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies record store failures so callers can react without
// inspecting transport details.
type ErrorKind string

const (
	KindConnectivity ErrorKind = "connectivity"
	KindAuth         ErrorKind = "auth"
	KindPermission   ErrorKind = "permission"
	KindValidation   ErrorKind = "validation"
	KindUnexpected   ErrorKind = "unexpected"
)

// Error carries the classified outcome of a record store call.
type Error struct {
	Kind       ErrorKind
	Op         string
	Path       string
	StatusCode int
	Message    string

	// SessionExpired marks auth failures outside the login and password
	// recovery endpoints, where a stale session must be discarded.
	SessionExpired bool

	Err error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("record store %s: %s (%s)", e.Op, e.Message, e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("record store %s: %v (%s)", e.Op, e.Err, e.Kind)
	}
	return fmt.Sprintf("record store %s: http %d (%s)", e.Op, e.StatusCode, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// authPathPrefixes lists endpoints where a 401/422 means bad credentials,
// not an expired session.
var authPathPrefixes = []string{
	"/api/auth/login",
	"/api/auth/recover",
}

func isAuthPath(path string) bool {
	for _, prefix := range authPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func classify(op, path string, status int, message string) *Error {
	e := &Error{Op: op, Path: path, StatusCode: status, Message: message}

	switch {
	case status == 401 || status == 422:
		e.Kind = KindAuth
		e.SessionExpired = !isAuthPath(path)
	case status == 403:
		e.Kind = KindPermission
	case status == 400 || status == 404:
		e.Kind = KindValidation
	default:
		e.Kind = KindUnexpected
	}

	return e
}

func connectivityError(op, path string, err error) *Error {
	return &Error{Kind: KindConnectivity, Op: op, Path: path, Err: err}
}

func kindOf(err error) (ErrorKind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}

// IsConnectivity reports whether err is a transport level store failure.
func IsConnectivity(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindConnectivity
}

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindAuth
}

// IsPermission reports whether err is an authorization failure.
func IsPermission(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindPermission
}

// IsValidation reports whether err is a rejected request.
func IsValidation(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindValidation
}

// IsSessionExpired reports whether err invalidated the current session.
func IsSessionExpired(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.SessionExpired
}

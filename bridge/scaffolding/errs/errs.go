// Package errs provides coded application errors that know how to encode
// themselves as HTTP responses.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// ErrCode classifies an Error.
type ErrCode struct {
	value int
}

var (
	Internal        = ErrCode{value: 1}
	InternalOnlyLog = ErrCode{value: 2}
	InvalidArgument = ErrCode{value: 3}
	NotFound        = ErrCode{value: 4}
	Unavailable     = ErrCode{value: 5}
)

var codeNames = map[ErrCode]string{
	Internal:        "internal",
	InternalOnlyLog: "internal",
	InvalidArgument: "invalid_argument",
	NotFound:        "not_found",
	Unavailable:     "unavailable",
}

var httpStatuses = map[ErrCode]int{
	Internal:        http.StatusInternalServerError,
	InternalOnlyLog: http.StatusInternalServerError,
	InvalidArgument: http.StatusBadRequest,
	NotFound:        http.StatusNotFound,
	Unavailable:     http.StatusServiceUnavailable,
}

// String returns the wire name of the code.
func (ec ErrCode) String() string {
	if name, ok := codeNames[ec]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (ec ErrCode) MarshalText() ([]byte, error) {
	return []byte(ec.String()), nil
}

// Error is an application error with a code and the caller that raised it.
type Error struct {
	Code     ErrCode `json:"code"`
	Message  string  `json:"message"`
	FuncName string  `json:"-"`
	FileName string  `json:"-"`
	err      error
}

// New wraps err with code. The message sent to clients is err's text.
func New(code ErrCode, err error) *Error {
	e := newError(code, err.Error())
	e.err = err
	return e
}

// Newf constructs an Error with a formatted message.
func Newf(code ErrCode, format string, v ...any) *Error {
	return newError(code, fmt.Sprintf(format, v...))
}

func newError(code ErrCode, msg string) *Error {
	e := Error{Code: code, Message: msg}
	if pc, file, line, ok := runtime.Caller(2); ok {
		e.FileName = fmt.Sprintf("%s:%d", file, line)
		if fn := runtime.FuncForPC(pc); fn != nil {
			e.FuncName = fn.Name()
		}
	}
	return &e
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.err
}

// Encode implements web.Encoder.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

// HTTPStatus implements the web status interface.
func (e *Error) HTTPStatus() int {
	if status, ok := httpStatuses[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsError reports whether err carries an *Error.
func IsError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// GetError returns the *Error carried by err, or nil.
func GetError(err error) *Error {
	var e *Error
	if !errors.As(err, &e) {
		return nil
	}
	return e
}

package errors

import (
	"encoding/json"
	"net/http"
)

// ValidationErr is raised when business rule is violated on provided data
type ValidationErr struct {
	target  string
	message string
}

func (e *ValidationErr) Error() string {
	return e.message
}

// Status is http status hint for the caller
func (e *ValidationErr) Status() int {
	return http.StatusBadRequest
}

func (e *ValidationErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Target  string `json:"target"`
		Message string `json:"message"`
	}{Target: e.target, Message: e.message})
}

func NewValidationErr(target string, msg string) *ValidationErr {
	return &ValidationErr{
		target:  target,
		message: msg,
	}
}

// NotFoundErr is raised when lookup matched zero rows
type NotFoundErr struct {
	message string
}

func (e *NotFoundErr) Error() string {
	return e.message
}

// Status is http status hint for the caller
func (e *NotFoundErr) Status() int {
	return http.StatusNotFound
}

func (e *NotFoundErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Message string `json:"message"`
	}{Message: e.message})
}

func NewNotFoundErr(msg string) *NotFoundErr {
	return &NotFoundErr{message: msg}
}

package main

import (
	"errors"
	"fmt"
)

var (
	// errNotFound is returned by stores when no record matches the key.
	errNotFound = errors.New("not found")

	// errDuplicateEmail is returned on signup when the email is taken.
	errDuplicateEmail = errors.New("user already exists")

	// errInvalidCredentials covers both unknown email and wrong password so
	// callers cannot tell them apart.
	errInvalidCredentials = errors.New("invalid credentials")

	// errMalformedPlan marks a 2xx prediction response that did not decode.
	errMalformedPlan = errors.New("malformed plan response")
)

// genericPlanFailure is used when the prediction service fails without
// telling us why.
const genericPlanFailure = "Something went wrong"

// planRequestError is a failed call to the prediction service. Status is 0
// when no HTTP response was received.
type planRequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *planRequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("prediction service returned status %d: %s", e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("prediction service: %s: %v", e.Message, e.Err)
	}
	return "prediction service: " + e.Message
}

func (e *planRequestError) Unwrap() error { return e.Err }

// goalValidationError wraps an unsafe goal/BMI result when a caller decides
// to block on it.
type goalValidationError struct {
	Result goalValidation
}

func (e *goalValidationError) Error() string { return e.Result.Message }

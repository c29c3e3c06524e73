package llm

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrUnknownProvider   = errors.New("unknown provider")
	ErrEmptyText         = errors.New("empty text")
	ErrInvalidResponse   = errors.New("invalid JSON response")
)

// MissingCredentialError is returned before any network call is made.
type MissingCredentialError struct {
	Provider ProviderName
}

func (e *MissingCredentialError) Error() string {
	return "Missing " + e.Provider.CredentialEnv()
}

func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// StatusError is a non-2xx answer from a provider.
type StatusError struct {
	Provider   ProviderName
	Label      string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %d", e.Label, e.StatusCode)
}

// EmptyTextError means the provider answered but nothing usable could be extracted.
type EmptyTextError struct {
	Provider ProviderName
}

func (e *EmptyTextError) Error() string {
	return fmt.Sprintf("Empty text from %s", e.Provider)
}

func (e *EmptyTextError) Is(target error) bool {
	return target == ErrEmptyText
}

package domain

import "fmt"

// Error types for consistent error handling across client, services and sandbox.

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s não encontrado: %s", e.Resource, e.ID)
}

// ErrAPI is a non-2xx answer from the BankUp API. Error returns the server
// message untouched so it can be shown to the user as is.
type ErrAPI struct {
	Status  int
	Message string
}

func (e *ErrAPI) Error() string {
	return e.Message
}

// ErrExternalService indicates a transport failure talking to the API.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrValidation indicates a validation error (bad input). The message is
// already user facing.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrUnauthorized indicates invalid credentials or token.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Não autorizado."
}

// ErrSessionInvalid means a step of the auth flow ran without the state the
// previous step should have persisted (pending verification, reset token).
type ErrSessionInvalid struct {
	Message string
}

func (e *ErrSessionInvalid) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Sessão inválida. Por favor, tente o processo novamente."
}

// ErrConflict indicates a resource already exists (e.g. duplicate email).
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}

// ErrInvalidCode indicates an invalid or expired verification code.
type ErrInvalidCode struct{}

func (e *ErrInvalidCode) Error() string {
	return "Código inválido ou expirado."
}

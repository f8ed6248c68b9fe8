package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet Lifecycle (WAL) ----

func ErrWalletCreation(err error) *AppError {
	return Wrap("WAL_001", "Wallet creation failed", http.StatusBadGateway, err)
}

func ErrWalletInactive(status string) *AppError {
	return New("WAL_002", fmt.Sprintf("Wallet is %s", status), http.StatusConflict)
}

func ErrInvalidState(from, to string) *AppError {
	return New("WAL_003", fmt.Sprintf("Illegal wallet transition %s -> %s", from, to), http.StatusConflict)
}

func ErrWalletNotFound() *AppError {
	return New("WAL_004", "Wallet not found", http.StatusNotFound)
}

func ErrUnknownWalletMode(mode string) *AppError {
	return New("WAL_005", fmt.Sprintf("Unknown wallet mode %q", mode), http.StatusBadRequest)
}

// ---- Issuance (ISS) ----

func ErrIssuanceNotFound() *AppError {
	return New("ISS_001", "Issuance record not found", http.StatusNotFound)
}

// ---- Rail Providers (PRV) ----

// ErrProviderMint marks a single failed mint attempt. It never reaches the
// caller directly; the orchestrator either recovers onto the next provider
// or escalates to ErrAllProvidersDown.
func ErrProviderMint(provider string, err error) *AppError {
	return Wrap("PRV_001", fmt.Sprintf("Mint failed on provider %s", provider), http.StatusBadGateway, err)
}

func ErrAllProvidersDown() *AppError {
	return New("PRV_002", "No healthy rail provider available", http.StatusServiceUnavailable)
}

func ErrUnknownProvider(name string) *AppError {
	return New("PRV_003", fmt.Sprintf("Unknown provider %q", name), http.StatusInternalServerError)
}

// ---- Reserve Ledger (RES) ----

// ErrReconciliationAnomaly covers a confirmed external mint whose internal
// ledger write failed. Routed to alerting, never to the issuance caller.
func ErrReconciliationAnomaly(err error) *AppError {
	return Wrap("RES_001", "Reserve ledger out of sync with confirmed mint", http.StatusInternalServerError, err)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

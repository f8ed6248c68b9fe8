package domain

import (
	"time"

	"github.com/google/uuid"
)

// IssuanceStatus represents the lifecycle state of an issuance.
type IssuanceStatus string

const (
	IssuanceStatusPending   IssuanceStatus = "PENDING"
	IssuanceStatusSucceeded IssuanceStatus = "SUCCEEDED"
	IssuanceStatusFailed    IssuanceStatus = "FAILED"
)

// AttemptOutcome is the result of a single provider mint attempt.
type AttemptOutcome string

const (
	AttemptOutcomeSucceeded AttemptOutcome = "SUCCEEDED"
	AttemptOutcomeFailed    AttemptOutcome = "FAILED"
)

// ErrorKind classifies why a mint attempt failed.
type ErrorKind string

const (
	ErrorKindTimeout   ErrorKind = "timeout"
	ErrorKindRejected  ErrorKind = "rejected"
	ErrorKindTransport ErrorKind = "transport"
)

// MintAttempt is one entry in an issuance's ordered attempt trail.
type MintAttempt struct {
	ProviderName string         `json:"provider_name"`
	Outcome      AttemptOutcome `json:"outcome"`
	ErrorKind    ErrorKind      `json:"error_kind,omitempty"`
	TimestampMs  int64          `json:"timestamp_ms"`
}

// IssuanceRecord is the immutable-once-succeeded record of a mint request,
// including every provider attempt made along the way.
type IssuanceRecord struct {
	TransactionID string         `json:"transaction_id"` // rail-issued on success, engine-generated on failure
	WalletID      uuid.UUID      `json:"wallet_id"`
	ProviderName  string         `json:"provider_name"` // provider actually used
	Amount        int64          `json:"amount"`        // minor units
	Currency      string         `json:"currency"`
	Status        IssuanceStatus `json:"status"`
	Attempts      []MintAttempt  `json:"attempts"`
	CreatedAt     time.Time      `json:"created_at"`
}

// IsTerminal returns true if the issuance is in a final state.
func (r *IssuanceRecord) IsTerminal() bool {
	return r.Status == IssuanceStatusSucceeded || r.Status == IssuanceStatusFailed
}

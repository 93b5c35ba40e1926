package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransferStatus is the lifecycle state of a transfer record. The only legal
// transitions are PENDING -> SUCCESS and PENDING -> FAILED.
type TransferStatus string

const (
	TransferPending TransferStatus = "PENDING"
	TransferSuccess TransferStatus = "SUCCESS"
	TransferFailed  TransferStatus = "FAILED"
)

// TransferRecord is a client-side entry in the transfer history. It is created
// in PENDING before the backend call resolves, so a crash mid-flight still
// leaves a visible pending entry, and settled exactly once afterwards.
type TransferRecord struct {
	ID            string         `json:"id"`
	Timestamp     string         `json:"timestamp"`
	Recipient     string         `json:"recipient"`
	Amount        string         `json:"amount"`
	Status        TransferStatus `json:"status"`
	TransactionID string         `json:"transactionId,omitempty"`
}

// NewTransferRecord creates a PENDING record with a time+random identifier.
func NewTransferRecord(recipient, amount string) TransferRecord {
	now := time.Now()
	return TransferRecord{
		ID:        fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8]),
		Timestamp: now.Format(time.RFC3339),
		Recipient: recipient,
		Amount:    amount,
		Status:    TransferPending,
	}
}

// Settle moves the record out of PENDING. A record that already settled never
// changes again; Settle reports whether the transition was applied.
func (r *TransferRecord) Settle(status TransferStatus, transactionID string) bool {
	if r.Status != TransferPending {
		return false
	}
	if status != TransferSuccess && status != TransferFailed {
		return false
	}
	r.Status = status
	if status == TransferSuccess {
		r.TransactionID = transactionID
	}
	return true
}

// TransferResult is the backend's reply to a transfer request.
type TransferResult struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

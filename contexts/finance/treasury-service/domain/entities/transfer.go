package entities

import "time"

type TransferStatus string

const (
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusFailed    TransferStatus = "failed"
)

// Transfer is one attempted value movement from a funded account to a
// payout target. Failed attempts are kept for audit and out-of-band retry.
type Transfer struct {
	TransferID string
	Account    string
	Target     string
	Amount     int64
	Status     TransferStatus
	FailReason string
	CreatedAt  time.Time
}

// Account is a funded source the treasury may draw from.
type Account struct {
	Name    string
	Balance int64
}

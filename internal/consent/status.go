// Package consent tracks a visitor's decision about non-essential cookies.
package consent

import (
	"errors"
	"time"
)

// Status is the visitor's cookie decision.
type Status string

const (
	Pending  Status = "pending"
	Accepted Status = "accepted"
	Declined Status = "declined"
)

// Storage keys, also used as cookie names.
const (
	KeyStatus    = "cookie-consent"
	KeyTimestamp = "cookie-consent-timestamp"
)

// MaxAge is how long a decision stays valid before the visitor is asked again.
const MaxAge = 365 * 24 * time.Hour

var ErrInvalidStatus = errors.New("invalid consent status")

// ParseStatus accepts the stored form of a decided status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case Accepted, Declined:
		return Status(s), nil
	case Pending:
		return Pending, nil
	default:
		return Pending, ErrInvalidStatus
	}
}

// Record is a persisted decision.
type Record struct {
	Status    Status    `json:"status"`
	DecidedAt time.Time `json:"decided_at"`
}

// Expired reports whether the record is older than MaxAge at now.
func (r Record) Expired(now time.Time) bool {
	return now.Sub(r.DecidedAt) > MaxAge
}

package types

import (
	"time"
)

type BeneficiaryStatus string

const (
	BeneficiaryStatusPending   BeneficiaryStatus = "pending"
	BeneficiaryStatusValidated BeneficiaryStatus = "validated"
	BeneficiaryStatusRejected  BeneficiaryStatus = "rejected"

	// BeneficiaryStatusUnknown is only ever returned by the public status
	// query when no record matches the email.
	BeneficiaryStatusUnknown BeneficiaryStatus = "unknown"
)

type Address struct {
	City  string `json:"city"`
	State string `json:"state"`
}

type Document struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// HistoryEntry is one line of the append-only audit log embedded in a
// record. Entries are never truncated or reordered.
type HistoryEntry struct {
	At      time.Time `json:"at"`
	By      string    `json:"by"`
	Action  string    `json:"action"`
	Details string    `json:"details"`
}

type Beneficiary struct {
	ID        string            `db:"id" json:"id"`
	Name      string            `db:"name" json:"name"`
	Email     string            `db:"email" json:"email"`
	Phone     string            `db:"phone" json:"phone"`
	Address   Address           `db:"address" json:"address"`             // jsonb
	Document  *Document         `db:"document" json:"document,omitempty"` // jsonb
	Status    BeneficiaryStatus `db:"status" json:"status"`
	Notes     string            `db:"notes" json:"notes"`
	History   []HistoryEntry    `db:"history" json:"history"` // jsonb array
	CreatedAt time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time         `db:"updated_at" json:"updatedAt"`
}

// BeneficiaryStatusView is the unauthenticated projection served to the
// applicant-facing waiting page.
type BeneficiaryStatusView struct {
	Exists bool              `json:"exists"`
	Status BeneficiaryStatus `json:"status"`
	Reason string            `json:"reason,omitempty"`
}

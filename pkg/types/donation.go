package types

import "time"

type Donor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type DonationItem struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// TimelineEntry mirrors HistoryEntry for donations; one entry per admin
// status change.
type TimelineEntry struct {
	At     time.Time `json:"at"`
	By     string    `json:"by"`
	Status string    `json:"status"`
	Note   string    `json:"note"`
}

type Donation struct {
	ID        string          `db:"id" json:"id"`
	Donor     Donor           `db:"donor" json:"donor"`     // jsonb
	Address   Address         `db:"address" json:"address"` // jsonb
	Type      string          `db:"type" json:"type"`
	Items     []DonationItem  `db:"items" json:"items"` // jsonb array
	Status    string          `db:"status" json:"status"`
	Timeline  []TimelineEntry `db:"timeline" json:"timeline"` // jsonb array
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// DonationPatch is the admin-applied partial update. A status change
// appends one timeline entry.
type DonationPatch struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

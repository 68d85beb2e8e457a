package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type RoundStatus string

const (
	RoundOpen   RoundStatus = "open"
	RoundClosed RoundStatus = "closed"
)

// ItemLine is a frozen copy of a quotation item taken at round creation.
// The unit price is the reference to beat, not a ceiling.
type ItemLine struct {
	CatalogItemID int64   `json:"catalog_item_id"`
	Description   string  `json:"description"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
}

type ItemLines []ItemLine

type Int64Set []int64

func (s Int64Set) Contains(v int64) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// Bid is a vendor's live offer: one row per (round, vendor), resubmission
// replaces the prior one.
type Bid struct {
	ID           int64     `json:"id"`
	RoundID      int64     `json:"round_id" gorm:"uniqueIndex:idx_round_vendor"`
	VendorID     int64     `json:"vendor_id" gorm:"uniqueIndex:idx_round_vendor"`
	TotalAmount  float64   `json:"total_amount"`
	DeliveryDays int       `json:"delivery_days"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// BidRound collects vendor bids against an approved quotation's item lines.
// Once LockedAt is set the round is terminal: bids, selection and the invite
// list are frozen.
type BidRound struct {
	ID          int64 `json:"id"`
	CaseID      int64 `json:"case_id"`
	QuotationID int64 `json:"quotation_id"`

	ItemLines        ItemLines `json:"item_lines" gorm:"type:json"`
	InvitedVendorIDs Int64Set  `json:"invited_vendor_ids" gorm:"type:json"`

	Bids []Bid `json:"bids" gorm:"foreignKey:RoundID"`

	SelectedVendorID *int64     `json:"selected_vendor_id,omitempty"`
	AdminApprovedAt  *time.Time `json:"admin_approved_at,omitempty"`
	AdminApprovedBy  *int64     `json:"admin_approved_by,omitempty"`
	LockedAt         *time.Time `json:"locked_at,omitempty"`

	Status    RoundStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (r *BidRound) IsLocked() bool { return r.LockedAt != nil }

func (l ItemLines) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *ItemLines) Scan(src any) error { return scanJSON(src, l) }

func (s Int64Set) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *Int64Set) Scan(src any) error { return scanJSON(src, s) }

package domain

import (
	"math"
	"time"
)

type AuditStatus string

const (
	AuditPending  AuditStatus = "pending"
	AuditApproved AuditStatus = "approved"
	AuditRejected AuditStatus = "rejected"
)

const DefaultTaxPercent = 18.0

type QuotationItem struct {
	ID              int64   `json:"id"`
	QuotationID     int64   `json:"quotation_id"`
	CatalogItemID   int64   `json:"catalog_item_id"`
	Description     string  `json:"description"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
	SortOrder       int     `json:"sort_order"`
}

type Quotation struct {
	ID     int64  `json:"id"`
	CaseID int64  `json:"case_id"`
	BOQID  *int64 `json:"boq_id,omitempty"`

	Items []QuotationItem `json:"items" gorm:"foreignKey:QuotationID"`

	// Derived totals, recomputed from items on every write. Never mutated
	// independently.
	TaxPercent     float64 `json:"tax_percent"`
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	GrandTotal     float64 `json:"grand_total"`

	AuditStatus  AuditStatus `json:"audit_status"`
	RejectReason string      `json:"reject_reason,omitempty" gorm:"type:text"`
	AuditedBy    *int64      `json:"audited_by,omitempty"`
	AuditedAt    *time.Time  `json:"audited_at,omitempty"`

	PreparedBy int64     `json:"prepared_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Recompute rebuilds the derived totals from the item lines.
// grand_total == subtotal - discount_amount + tax_amount always holds after.
func (q *Quotation) Recompute() {
	var subtotal, discount float64
	for _, it := range q.Items {
		line := it.Quantity * it.UnitPrice
		subtotal += line
		discount += line * it.DiscountPercent / 100
	}
	taxable := subtotal - discount
	tax := taxable * q.TaxPercent / 100

	q.Subtotal = round2(subtotal)
	q.DiscountAmount = round2(discount)
	q.TaxAmount = round2(tax)
	q.GrandTotal = round2(taxable + tax)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

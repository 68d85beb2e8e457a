package domain

import "time"

type ProcurementStatus string

const (
	ProcurementPlanned   ProcurementStatus = "planned"
	ProcurementDelivered ProcurementStatus = "delivered"
	ProcurementInvoiced  ProcurementStatus = "invoiced"
)

// ProcurementPlan is one scheduled material delivery. The unique index over
// (case_id, catalog_item_id, quantity, required_on) is the dedup key: a plan
// material line may be scheduled at most once.
type ProcurementPlan struct {
	ID            int64     `json:"id"`
	CaseID        int64     `json:"case_id" gorm:"uniqueIndex:idx_procurement_dedup"`
	CatalogItemID int64     `json:"catalog_item_id" gorm:"uniqueIndex:idx_procurement_dedup"`
	Quantity      float64   `json:"quantity" gorm:"uniqueIndex:idx_procurement_dedup"`
	RequiredOn    string    `json:"required_on" gorm:"uniqueIndex:idx_procurement_dedup"` // YYYY-MM-DD

	VendorID             int64             `json:"vendor_id"`
	ExpectedDeliveryDate time.Time         `json:"expected_delivery_date"`
	Status               ProcurementStatus `json:"status"`
	DeliveredAt          *time.Time        `json:"delivered_at,omitempty"`
	InvoicedAt           *time.Time        `json:"invoiced_at,omitempty"`

	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DedupKey identifies a material line for scheduling purposes.
type DedupKey struct {
	CatalogItemID int64
	Quantity      float64
	RequiredOn    string
}

// ProcurementDateLayout is the day-granular form of RequiredOn used in keys.
const ProcurementDateLayout = "2006-01-02"

func (m PlanMaterial) Key() DedupKey {
	return DedupKey{
		CatalogItemID: m.CatalogItemID,
		Quantity:      m.Quantity,
		RequiredOn:    m.RequiredOn.Format(ProcurementDateLayout),
	}
}

func (p ProcurementPlan) Key() DedupKey {
	return DedupKey{
		CatalogItemID: p.CatalogItemID,
		Quantity:      p.Quantity,
		RequiredOn:    p.RequiredOn,
	}
}

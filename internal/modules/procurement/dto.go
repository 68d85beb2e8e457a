package procurement

import "time"

type CreatePlanRequest struct {
	CatalogItemID        int64     `json:"catalog_item_id" binding:"required"`
	Quantity             float64   `json:"quantity" binding:"required"`
	RequiredOn           time.Time `json:"required_on" binding:"required"`
	VendorID             int64     `json:"vendor_id" binding:"required"`
	ExpectedDeliveryDate time.Time `json:"expected_delivery_date" binding:"required"`
}

// UnscheduledLine is one plan material requirement that has no procurement
// plan yet.
type UnscheduledLine struct {
	CatalogItemID int64   `json:"catalog_item_id"`
	Quantity      float64 `json:"quantity"`
	RequiredOn    string  `json:"required_on"`
}

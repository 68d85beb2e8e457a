package quotation

type ItemRequest struct {
	CatalogItemID   int64   `json:"catalog_item_id" binding:"required"`
	Description     string  `json:"description"`
	Quantity        float64 `json:"quantity" binding:"required"`
	UnitPrice       float64 `json:"unit_price" binding:"required"`
	DiscountPercent float64 `json:"discount_percent"`
}

type CreateRequest struct {
	CaseID     int64         `json:"case_id" binding:"required"`
	BOQID      *int64        `json:"boq_id"`
	TaxPercent *float64      `json:"tax_percent"`
	Items      []ItemRequest `json:"items" binding:"required"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

package casefile

type CreateCaseRequest struct {
	Title      string  `json:"title" binding:"required"`
	ClientName string  `json:"client_name" binding:"required"`
	ClientID   *int64  `json:"client_id"`
	Budget     float64 `json:"budget"`
}

type BOQItemRequest struct {
	CatalogItemID int64   `json:"catalog_item_id" binding:"required"`
	Description   string  `json:"description"`
	Quantity      float64 `json:"quantity" binding:"required"`
	UnitRate      float64 `json:"unit_rate" binding:"required"`
}

type BOQRequest struct {
	Items []BOQItemRequest `json:"items" binding:"required"`
}

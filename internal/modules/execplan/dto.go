package execplan

import "time"

type MaterialRequest struct {
	CatalogItemID int64     `json:"catalog_item_id" binding:"required"`
	Quantity      float64   `json:"quantity" binding:"required"`
	RequiredOn    time.Time `json:"required_on" binding:"required"`
}

type DayRequest struct {
	Title     string            `json:"title"`
	Materials []MaterialRequest `json:"materials"`
	LaborCost float64           `json:"labor_cost"`
}

type SubmitPlanRequest struct {
	Days []DayRequest `json:"days" binding:"required"`
}

type ExpenseRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Note   string  `json:"note"`
}

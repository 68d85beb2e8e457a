package domain

import "time"

type BOQItem struct {
	ID            int64   `json:"id"`
	BOQID         int64   `json:"boq_id"`
	CatalogItemID int64   `json:"catalog_item_id"`
	Description   string  `json:"description"`
	Quantity      float64 `json:"quantity"`
	UnitRate      float64 `json:"unit_rate"`
}

// BOQ is the itemized estimate a quotation is priced from. Approving the
// quotation locks it; a locked BOQ rejects every further edit.
type BOQ struct {
	ID        int64     `json:"id"`
	CaseID    int64     `json:"case_id"`
	Items     []BOQItem `json:"items" gorm:"foreignKey:BOQID"`
	Total     float64   `json:"total"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BOQ) TableName() string { return "boqs" }

func (b *BOQ) Recompute() {
	var total float64
	for _, it := range b.Items {
		total += it.Quantity * it.UnitRate
	}
	b.Total = round2(total)
}

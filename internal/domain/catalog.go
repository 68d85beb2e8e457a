package domain

import "time"

// CatalogItem and Vendor are directory records. The workflow reads them to
// snapshot lines and resolve names; it never mutates them.

type CatalogItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Rate      float64   `json:"rate"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Vendor struct {
	ID            int64     `json:"id"`
	CompanyName   string    `json:"company_name"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	GSTNumber     string    `json:"gst_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

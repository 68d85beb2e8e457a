package bidround

type CreateRoundRequest struct {
	QuotationID      int64   `json:"quotation_id" binding:"required"`
	InvitedVendorIDs []int64 `json:"invited_vendor_ids" binding:"required"`
}

type SubmitBidRequest struct {
	VendorID     int64   `json:"vendor_id" binding:"required"`
	TotalAmount  float64 `json:"total_amount" binding:"required,gt=0"`
	DeliveryDays int     `json:"delivery_days" binding:"required,gt=0"`
}

type SelectVendorRequest struct {
	VendorID int64 `json:"vendor_id" binding:"required"`
}

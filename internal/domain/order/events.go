package order

import "time"

const EventOrderPlaced = "OrderPlaced"

type OrderPlaced struct {
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	VendorID   string    `json:"vendorId,omitempty"`
	Quantity   int       `json:"quantity"`
	UnitPrice  int       `json:"unitPrice"`
	TotalPrice int       `json:"totalPrice"`
	PlacedAt   time.Time `json:"placedAt"`
}

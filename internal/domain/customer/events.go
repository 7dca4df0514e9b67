package customer

import "time"

const EventCustomerRegistered = "CustomerRegistered"

type CustomerRegistered struct {
	UserID       string    `json:"userId"`
	FullName     string    `json:"fullName"`
	Block        string    `json:"block,omitempty"`
	DoorNo       string    `json:"doorNo"`
	Address      string    `json:"address,omitempty"`
	RegisteredAt time.Time `json:"registeredAt"`
}

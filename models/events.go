package models

// OrderEvent is published to Redis whenever an order is created or changes
// status, and fans out to the admin live feed.
type OrderEvent struct {
	Type        string  `json:"type"` // order_created | order_status
	OrderID     string  `json:"orderId"`
	OrderNumber string  `json:"orderNumber"`
	Status      string  `json:"status"`
	Total       float64 `json:"total"`
}

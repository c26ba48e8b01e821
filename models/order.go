package models

import "time"

const (
	DeliveryPickup   = "pickup"
	DeliveryShipping = "shipping"
)

type CustomerInfo struct {
	Name     string `json:"name" bson:"name"`
	LastName string `json:"lastName" bson:"lastName"`
	Email    string `json:"email" bson:"email"`
	Phone    string `json:"phone" bson:"phone"`
	DNI      string `json:"dni" bson:"dni"`
}

type OrderItem struct {
	ProductID string  `json:"product" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Brand     string  `json:"brand" bson:"brand"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
}

type PaymentInfo struct {
	MercadoPagoID string `json:"mercadoPagoId,omitempty" bson:"mercadoPagoId,omitempty"`
	Status        string `json:"status,omitempty" bson:"status,omitempty"`
	PaymentType   string `json:"paymentType,omitempty" bson:"paymentType,omitempty"`
}

type Order struct {
	OrderID      string       `json:"id" bson:"orderid"`
	OrderNumber  string       `json:"orderNumber" bson:"orderNumber"`
	UserID       string       `json:"user,omitempty" bson:"userId,omitempty"` // empty for guest checkout
	CustomerInfo CustomerInfo `json:"customerInfo" bson:"customerInfo"`
	Items        []OrderItem  `json:"items" bson:"items"`
	Total        float64      `json:"total" bson:"total"`
	Status       string       `json:"status" bson:"status"`
	PaymentInfo  PaymentInfo  `json:"paymentInfo" bson:"paymentInfo"`
	DeliveryType string       `json:"deliveryType" bson:"deliveryType"`
	Notes        string       `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt    time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt" bson:"updatedAt"`
}

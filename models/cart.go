package models

import "time"

// CartLine is a snapshot of the product at add-time, not a live join.
type CartLine struct {
	ProductID string  `json:"id" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Img       string  `json:"img,omitempty" bson:"img,omitempty"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

type Cart struct {
	UserID    string     `json:"userId" bson:"userId"`
	Products  []CartLine `json:"products" bson:"products"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

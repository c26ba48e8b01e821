package models

import "time"

// FragranceNotes is the head/heart/base pyramid shown on the product page.
type FragranceNotes struct {
	Head  []string `json:"head" bson:"head"`
	Heart []string `json:"heart" bson:"heart"`
	Base  []string `json:"base" bson:"base"`
}

type Product struct {
	ProductID     string         `json:"id" bson:"productid"`
	Name          string         `json:"name" bson:"name"`
	Brand         string         `json:"brand" bson:"brand"`
	Price         float64        `json:"price" bson:"price"`
	Stock         int            `json:"stock" bson:"stock"`
	Description   string         `json:"description,omitempty" bson:"description,omitempty"`
	Image         string         `json:"image,omitempty" bson:"image,omitempty"`
	Images        []string       `json:"images,omitempty" bson:"images,omitempty"`
	Category      string         `json:"category" bson:"category"`
	Gender        string         `json:"gender,omitempty" bson:"gender,omitempty"`
	Size          string         `json:"size,omitempty" bson:"size,omitempty"`
	Concentration string         `json:"concentration,omitempty" bson:"concentration,omitempty"`
	Family        string         `json:"olfactoryFamily,omitempty" bson:"olfactoryFamily,omitempty"`
	Notes         FragranceNotes `json:"notes" bson:"notes"`
	AverageRating float64        `json:"averageRating" bson:"averageRating"`
	ReviewCount   int            `json:"reviewCount" bson:"reviewCount"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt" bson:"updatedAt"`
}

package models

import "time"

type Review struct {
	ReviewID  string    `json:"id" bson:"reviewid"`
	UserID    string    `json:"user" bson:"userId"`
	UserName  string    `json:"userName,omitempty" bson:"userName,omitempty"`
	ProductID string    `json:"product" bson:"productId"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

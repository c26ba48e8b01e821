package db

import (
	"context"
	"log"
	"os"
	"time"

	"arabianx/globals"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection    *mongo.Collection
	ProductCollection *mongo.Collection
	CartCollection    *mongo.Collection
	OrderCollection   *mongo.Collection
	ReviewCollection  *mongo.Collection
	Client            *mongo.Client
)

// Initialize MongoDB connection
func init() {
	uri := globals.MongoURI()
	if os.Getenv("MONGO_URI") == "" {
		log.Printf("⚠️ MONGO_URI not set; defaulting to %s", uri)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("arabianx")
	UserCollection = database.Collection("users")
	ProductCollection = database.Collection("products")
	CartCollection = database.Collection("carts")
	OrderCollection = database.Collection("orders")
	ReviewCollection = database.Collection("reviews")
}

package orders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"arabianx/db"
	"arabianx/models"

	"go.mongodb.org/mongo-driver/bson"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// Seams over the product collection; tests swap these to drive the stock
// flows without a live store.
var (
	findProductStock = func(ctx context.Context, productID string) (models.Product, error) {
		var product models.Product
		err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product)
		return product, err
	}

	// Conditional take: matches only while stock covers the quantity, so
	// concurrent orders cannot drive it negative. Returns the match count.
	takeProductStock = func(ctx context.Context, productID string, quantity int) (int64, error) {
		res, err := db.ProductCollection.UpdateOne(ctx,
			bson.M{"productid": productID, "stock": bson.M{"$gte": quantity}},
			bson.M{"$inc": bson.M{"stock": -quantity}},
		)
		if err != nil {
			return 0, err
		}
		return res.MatchedCount, nil
	}

	returnProductStock = func(ctx context.Context, productID string, quantity int) error {
		_, err := db.ProductCollection.UpdateOne(ctx,
			bson.M{"productid": productID},
			bson.M{"$inc": bson.M{"stock": quantity}},
		)
		return err
	}
)

// CheckStock re-reads every product and fails if any is missing or short.
// Nothing is written; callers decrement afterwards.
func CheckStock(ctx context.Context, items []models.OrderItem) error {
	for _, item := range items {
		product, err := findProductStock(ctx, item.ProductID)
		if err != nil {
			return fmt.Errorf("product %s not found", item.Name)
		}
		if product.Stock < item.Quantity {
			return fmt.Errorf("%w for %s. Available: %d", ErrInsufficientStock, product.Name, product.Stock)
		}
	}
	return nil
}

// DecrementStock takes one product's stock; a zero match means someone else
// got there first.
func DecrementStock(ctx context.Context, productID string, quantity int) error {
	matched, err := takeProductStock(ctx, productID, quantity)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// restoreStock undoes decrements already applied when a later item fails.
func restoreStock(ctx context.Context, items []models.OrderItem) {
	for _, item := range items {
		if err := returnProductStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Printf("stock restore failed for %s (+%d): %v", item.ProductID, item.Quantity, err)
		}
	}
}

// DecrementAll takes stock for every item, rolling back on the first
// failure so a rejected order leaves no stock mutation behind.
func DecrementAll(ctx context.Context, items []models.OrderItem) error {
	for i, item := range items {
		if err := DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			restoreStock(ctx, items[:i])
			if errors.Is(err, ErrInsufficientStock) {
				return fmt.Errorf("%w for %s", ErrInsufficientStock, item.Name)
			}
			return err
		}
	}
	return nil
}

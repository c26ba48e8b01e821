package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Index names referenced by write paths that classify duplicate-key errors.
const (
	IdxUniqueOrderNumber = "unique_order_number"
	IdxUniqueMPPayment   = "unique_mp_payment"
)

// EnsureIndexes creates the indexes the write paths rely on. The unique index
// on paymentInfo.mercadoPagoId is the idempotency backstop for duplicate
// webhook deliveries; the partial filter keeps orders without payment data
// out of it.
func EnsureIndexes(ctx context.Context) error {
	userIdx := []mongo.IndexModel{
		{
			Keys:    bson.M{"email": 1},
			Options: options.Index().SetUnique(true).SetName("unique_email"),
		},
	}
	if _, err := UserCollection.Indexes().CreateMany(ctx, userIdx); err != nil {
		return err
	}

	orderIdx := []mongo.IndexModel{
		{
			Keys:    bson.M{"orderNumber": 1},
			Options: options.Index().SetUnique(true).SetName(IdxUniqueOrderNumber),
		},
		{
			Keys: bson.M{"paymentInfo.mercadoPagoId": 1},
			Options: options.Index().
				SetUnique(true).
				SetName(IdxUniqueMPPayment).
				SetPartialFilterExpression(bson.M{
					"paymentInfo.mercadoPagoId": bson.M{"$type": "string"},
				}),
		},
		{
			Keys:    bson.M{"createdAt": -1},
			Options: options.Index().SetName("orders_created_desc"),
		},
	}
	if _, err := OrderCollection.Indexes().CreateMany(ctx, orderIdx); err != nil {
		return err
	}

	reviewIdx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_user_product"),
		},
	}
	if _, err := ReviewCollection.Indexes().CreateMany(ctx, reviewIdx); err != nil {
		return err
	}

	cartIdx := []mongo.IndexModel{
		{
			Keys:    bson.M{"userId": 1},
			Options: options.Index().SetUnique(true).SetName("unique_cart_owner"),
		},
	}
	_, err := CartCollection.Indexes().CreateMany(ctx, cartIdx)
	return err
}

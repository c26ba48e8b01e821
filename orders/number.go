package orders

import (
	"context"
	"fmt"
	"time"

	"arabianx/db"

	"go.mongodb.org/mongo-driver/bson"
)

// FormatOrderNumber renders ORD-YYYYMMDD-NNNN. The sequence is the global
// order count, not a per-day counter; the date part changes daily but the
// number keeps growing. Downstream consumers depend on this numbering.
func FormatOrderNumber(seq int64, at time.Time) string {
	return fmt.Sprintf("ORD-%s-%04d", at.UTC().Format("20060102"), seq)
}

// NextOrderNumber derives the next number from the current order count.
func NextOrderNumber(ctx context.Context) (string, error) {
	count, err := db.OrderCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return "", err
	}
	return FormatOrderNumber(count+1, time.Now()), nil
}

package reviews

import (
	"context"
	"log"
	"math"

	"arabianx/db"
	"arabianx/models"

	"go.mongodb.org/mongo-driver/bson"
)

// RoundedAverage is the product aggregate: mean of all ratings rounded to
// one decimal, 0 when there are none.
func RoundedAverage(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10
}

// recomputeProductRating rewrites averageRating and reviewCount from the
// current review set; called after every create and delete.
func recomputeProductRating(ctx context.Context, productID string) {
	cursor, err := db.ReviewCollection.Find(ctx, bson.M{"productId": productID})
	if err != nil {
		log.Println("recomputeProductRating find error:", err)
		return
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		log.Println("recomputeProductRating decode error:", err)
		return
	}

	ratings := make([]int, 0, len(reviews))
	for _, review := range reviews {
		ratings = append(ratings, review.Rating)
	}

	_, err = db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": productID},
		bson.M{"$set": bson.M{
			"averageRating": RoundedAverage(ratings),
			"reviewCount":   len(ratings),
		}},
	)
	if err != nil {
		log.Println("recomputeProductRating update error:", err)
	}
}

package reviews

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"arabianx/db"
	"arabianx/models"
	"arabianx/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateReview accepts one review per (user, product). The unique index on
// that pair backs up the lookup under concurrent submits.
func CreateReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if input.Rating < 1 || input.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": input.ProductID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	count, err := db.ReviewCollection.CountDocuments(ctx, bson.M{"userId": userID, "productId": input.ProductID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "You have already reviewed this product")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		log.Println("CreateReview user lookup error:", err)
	}

	review := models.Review{
		ReviewID:  utils.GenerateID("r"),
		UserID:    userID,
		UserName:  user.Name,
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}

	if _, err := db.ReviewCollection.InsertOne(ctx, review); err != nil {
		if db.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "You have already reviewed this product")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create review")
		return
	}

	recomputeProductRating(ctx, input.ProductID)

	utils.RespondWithJSON(w, http.StatusCreated, review)
}

func GetProductReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ReviewCollection.Find(ctx,
		bson.M{"productId": ps.ByName("productid")},
		options.Find().SetSort(bson.M{"createdAt": -1}),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error fetching reviews")
		return
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error fetching reviews")
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	utils.RespondWithJSON(w, http.StatusOK, reviews)
}

// CheckUserReview tells the UI whether to show the review form. Degrades to
// hasReviewed:false on any failure rather than erroring the page.
func CheckUserReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"hasReviewed": false})
		return
	}

	var review models.Review
	err := db.ReviewCollection.FindOne(r.Context(),
		bson.M{"userId": userID, "productId": ps.ByName("productid")},
	).Decode(&review)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"hasReviewed": false})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"hasReviewed": true, "review": review})
}

// DeleteReview allows the owner, an admin, or a superadmin to remove a
// review, then recomputes the product aggregate.
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var review models.Review
	err := db.ReviewCollection.FindOne(ctx, bson.M{"reviewid": ps.ByName("reviewid")}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error deleting review")
		return
	}

	role := utils.GetRoleFromRequest(r)
	if review.UserID != userID && role != models.RoleAdmin && role != models.RoleSuperadmin {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized")
		return
	}

	if _, err := db.ReviewCollection.DeleteOne(ctx, bson.M{"reviewid": review.ReviewID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error deleting review")
		return
	}

	recomputeProductRating(ctx, review.ProductID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"msg": "Review removed"})
}

package cart

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
)

// GetCart returns the user's cart lines, creating an empty cart document on
// first access.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cart, err := loadOrCreateCart(ctx, userID)
	if err != nil {
		log.Println("GetCart error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, cart.Products)
}

// UpdateCart merges one line into the cart: existing product id gets its
// quantity replaced (removed when <= 0); a new id is inserted only with a
// positive quantity. Product fields are a snapshot from the request, not a
// live join.
func UpdateCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var line models.CartLine
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if line.ProductID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "productId is required")
		return
	}

	cart, err := loadOrCreateCart(ctx, userID)
	if err != nil {
		log.Println("UpdateCart load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	cart.Products = MergeLine(cart.Products, line)

	_, err = db.CartCollection.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"products": cart.Products, "updatedAt": time.Now()}},
	)
	if err != nil {
		log.Println("UpdateCart save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, cart.Products)
}

// MergeLine applies one line update to a cart's line list.
func MergeLine(lines []models.CartLine, line models.CartLine) []models.CartLine {
	for i, existing := range lines {
		if existing.ProductID != line.ProductID {
			continue
		}
		if line.Quantity <= 0 {
			return append(lines[:i], lines[i+1:]...)
		}
		lines[i].Quantity = line.Quantity
		return lines
	}

	if line.Quantity > 0 {
		lines = append(lines, line)
	}
	return lines
}

func loadOrCreateCart(ctx context.Context, userID string) (models.Cart, error) {
	var cart models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err == nil {
		if cart.Products == nil {
			cart.Products = []models.CartLine{}
		}
		return cart, nil
	}
	if err != mongo.ErrNoDocuments {
		return cart, err
	}

	now := time.Now()
	cart = models.Cart{UserID: userID, Products: []models.CartLine{}, CreatedAt: now, UpdatedAt: now}
	_, err = db.CartCollection.InsertOne(ctx, cart)
	return cart, err
}

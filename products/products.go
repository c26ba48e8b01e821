package products

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProducts returns the whole catalog. On a store error it degrades to an
// empty list so the storefront keeps rendering.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if cached, ok := cachedCatalog(); ok {
		utils.RespondWithJSON(w, http.StatusOK, cached)
		return
	}

	cursor, err := db.ProductCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		log.Println("GetProducts Find error:", err)
		utils.RespondWithJSON(w, http.StatusOK, []models.Product{})
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		log.Println("GetProducts cursor error:", err)
		utils.RespondWithJSON(w, http.StatusOK, []models.Product{})
		return
	}

	if products == nil {
		products = []models.Product{}
	}

	cacheCatalog(products)
	utils.RespondWithJSON(w, http.StatusOK, products)
}

func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var product models.Product
	err := db.ProductCollection.FindOne(r.Context(), bson.M{"productid": ps.ByName("productid")}).Decode(&product)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	product, ok := decodeProductForm(w, r)
	if !ok {
		return
	}

	if product.Name == "" || product.Brand == "" || product.Category == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, brand and category are required")
		return
	}
	if product.Price < 0 || product.Stock < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Price and stock must not be negative")
		return
	}

	now := time.Now()
	product.ProductID = utils.GenerateID("p")
	product.AverageRating = 0
	product.ReviewCount = 0
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	invalidateCatalog()
	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct applies only the fields present in the request body; fields
// left out stay untouched. An uploaded image overrides any image URL in the
// body.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	var fields map[string]json.RawMessage
	uploadedImage := ""

	if isMultipart(r) {
		var ok bool
		fields, uploadedImage, ok = parseMultipartUpdate(w, r)
		if !ok {
			return
		}
	} else if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	for _, name := range updatableFields {
		raw, present := fields[name.json]
		if !present {
			continue
		}
		value, err := name.decode(raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid value for "+name.json)
			return
		}
		set[name.bson] = value
	}
	if uploadedImage != "" {
		set["image"] = uploadedImage
	}

	res, err := db.ProductCollection.UpdateOne(ctx, bson.M{"productid": productID}, bson.M{"$set": set})
	if err != nil {
		log.Println("UpdateProduct error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	invalidateCatalog()

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := db.ProductCollection.DeleteOne(r.Context(), bson.M{"productid": ps.ByName("productid")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	invalidateCatalog()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"msg": "Product removed"})
}

// fieldSpec maps a JSON body field onto its bson column with a typed decoder.
type fieldSpec struct {
	json   string
	bson   string
	decode func(json.RawMessage) (any, error)
}

func stringField(j, b string) fieldSpec {
	return fieldSpec{j, b, func(raw json.RawMessage) (any, error) {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}}
}

var updatableFields = []fieldSpec{
	stringField("name", "name"),
	stringField("brand", "brand"),
	stringField("description", "description"),
	stringField("image", "image"),
	stringField("category", "category"),
	stringField("gender", "gender"),
	stringField("size", "size"),
	stringField("concentration", "concentration"),
	stringField("olfactoryFamily", "olfactoryFamily"),
	{"price", "price", func(raw json.RawMessage) (any, error) {
		var f float64
		err := json.Unmarshal(raw, &f)
		return f, err
	}},
	{"stock", "stock", func(raw json.RawMessage) (any, error) {
		var n int
		err := json.Unmarshal(raw, &n)
		return n, err
	}},
	{"images", "images", func(raw json.RawMessage) (any, error) {
		var list []string
		err := json.Unmarshal(raw, &list)
		return list, err
	}},
	{"notes", "notes", func(raw json.RawMessage) (any, error) {
		var notes models.FragranceNotes
		err := json.Unmarshal(raw, &notes)
		return notes, err
	}},
}

func isMultipart(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return len(ct) >= 19 && ct[:19] == "multipart/form-data"
}

package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"arabianx/db"
	"arabianx/models"
	"arabianx/mq"
	"arabianx/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type createOrderRequest struct {
	CustomerInfo models.CustomerInfo `json:"customerInfo"`
	Items        []models.OrderItem  `json:"items"`
	Total        float64             `json:"total"`
	DeliveryType string              `json:"deliveryType"`
	PaymentInfo  models.PaymentInfo  `json:"paymentInfo"`
}

// CreateOrder validates stock for every line before any write, then inserts
// the order. When the payment already arrived approved, stock is taken with
// conditional decrements before the insert so a failed decrement leaves no
// partial order behind.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if len(req.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No items in order")
		return
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, "Item quantity must be at least 1")
			return
		}
	}

	if err := CheckStock(ctx, req.Items); err != nil {
		code := http.StatusBadRequest
		if !errors.Is(err, ErrInsufficientStock) {
			code = http.StatusNotFound
		}
		utils.RespondWithError(w, code, err.Error())
		return
	}

	approved := req.PaymentInfo.Status == "approved"
	if approved {
		if err := DecrementAll(ctx, req.Items); err != nil {
			if errors.Is(err, ErrInsufficientStock) {
				utils.RespondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Println("CreateOrder stock error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Error creating order")
			return
		}
	}

	status := StatusPending
	if approved {
		status = StatusConfirmed
	}
	deliveryType := req.DeliveryType
	if deliveryType == "" {
		deliveryType = models.DeliveryPickup
	}

	order := models.Order{
		OrderID:      utils.GenerateID("o"),
		UserID:       utils.GetUserIDFromRequest(r), // empty for guests
		CustomerInfo: req.CustomerInfo,
		Items:        req.Items,
		Total:        req.Total,
		Status:       status,
		PaymentInfo:  req.PaymentInfo,
		DeliveryType: deliveryType,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := InsertWithOrderNumber(ctx, &order); err != nil {
		log.Println("CreateOrder insert error:", err)
		if approved {
			restoreStock(ctx, req.Items)
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating order")
		return
	}

	mq.EmitOrderEvent(ctx, models.OrderEvent{
		Type:        "order_created",
		OrderID:     order.OrderID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		Total:       order.Total,
	})

	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// InsertWithOrderNumber assigns the next order number and inserts, retrying
// when a concurrent create claimed the same number. Only an orderNumber
// collision triggers a retry; a duplicate on any other unique index (the
// payment id in particular) is returned to the caller untouched so it keeps
// its meaning.
func InsertWithOrderNumber(ctx context.Context, order *models.Order) error {
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		order.OrderNumber, err = NextOrderNumber(ctx)
		if err != nil {
			return err
		}
		_, err = db.OrderCollection.InsertOne(ctx, order)
		if err == nil {
			return nil
		}
		if !db.IsDuplicateKeyOnIndex(err, db.IdxUniqueOrderNumber) {
			return err
		}
	}
	return err
}

// GetMyOrders returns the authenticated user's orders, newest first.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cursor, err := db.OrderCollection.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.M{"createdAt": -1}),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// GetAllOrders is the admin listing with ?status= filter and pagination.
func GetAllOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	skip, limit := utils.ParsePagination(r, 50, 200)

	total, err := db.OrderCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}

	cursor, err := db.OrderCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip).SetLimit(limit),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	pages := total / limit
	if total%limit != 0 {
		pages++
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"orders": orders,
		"pagination": utils.M{
			"total": total,
			"page":  skip/limit + 1,
			"pages": pages,
		},
	})
}

// GetOrderByID is restricted to the order's owner or an admin.
func GetOrderByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var order models.Order
	err := db.OrderCollection.FindOne(r.Context(), bson.M{"orderid": ps.ByName("orderid")}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	role := utils.GetRoleFromRequest(r)
	isAdmin := role == models.RoleAdmin || role == models.RoleSuperadmin
	if !isAdmin && order.UserID != "" && order.UserID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus moves an order through the lifecycle table. An unknown
// status value is a 400; a known value that the current state does not allow
// is a 409.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if !ValidStatus(input.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	orderID := ps.ByName("orderid")

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if !CanTransition(order.Status, input.Status) {
		utils.RespondWithError(w, http.StatusConflict, "Cannot move order from "+order.Status+" to "+input.Status)
		return
	}

	set := bson.M{"status": input.Status, "updatedAt": time.Now()}
	if input.Notes != "" {
		set["notes"] = input.Notes
	}

	if _, err := db.OrderCollection.UpdateOne(ctx, bson.M{"orderid": orderID}, bson.M{"$set": set}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating order")
		return
	}

	order.Status = input.Status
	if input.Notes != "" {
		order.Notes = input.Notes
	}

	mq.EmitOrderEvent(ctx, models.OrderEvent{
		Type:        "order_status",
		OrderID:     order.OrderID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		Total:       order.Total,
	})

	utils.RespondWithJSON(w, http.StatusOK, order)
}

package pay

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"arabianx/models"
	"arabianx/utils"

	"github.com/julienschmidt/httprouter"
)

// Service holds the gateway; handlers hang off it so tests can swap in a
// fake provider.
type Service struct {
	gateway Gateway
}

func NewService(gateway Gateway) *Service {
	return &Service{gateway: gateway}
}

type preferenceItemInput struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Brand    string  `json:"brand"`
}

type createPreferenceRequest struct {
	Items        []preferenceItemInput `json:"items"`
	Payer        Payer                 `json:"payer"`
	CustomerInfo models.CustomerInfo   `json:"customerInfo"`
	DeliveryType string                `json:"deliveryType"`
}

// NormalizeItems maps storefront cart lines onto provider items, falling
// back to the product name when the title is missing.
func NormalizeItems(inputs []preferenceItemInput) []CheckoutItem {
	items := make([]CheckoutItem, 0, len(inputs))
	for _, in := range inputs {
		title := in.Title
		if title == "" {
			title = in.Name
		}
		if title == "" {
			title = "Producto"
		}
		quantity := in.Quantity
		if quantity < 1 {
			quantity = 1
		}
		items = append(items, CheckoutItem{
			ID:        in.ID,
			Title:     title,
			Quantity:  quantity,
			UnitPrice: in.Price,
		})
	}
	return items
}

// NormalizePayer fills safe defaults for every optional payer field.
func NormalizePayer(payer Payer, info models.CustomerInfo) Payer {
	if payer.Name == "" {
		payer.Name = info.Name
	}
	if payer.Surname == "" {
		payer.Surname = info.LastName
	}
	if payer.Email == "" {
		payer.Email = info.Email
	}
	if payer.Phone == "" {
		payer.Phone = info.Phone
	}
	if payer.DNI == "" {
		payer.DNI = info.DNI
	}
	return payer
}

// CreatePreference builds a provider checkout preference. The candidate
// order rides along in the external reference so the webhook can persist it
// once the payment is approved.
func (s *Service) CreatePreference(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var req createPreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if len(req.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No items to pay for")
		return
	}

	draft := OrderDraft{
		CustomerInfo: req.CustomerInfo,
		DeliveryType: req.DeliveryType,
		UserID:       utils.GetUserIDFromRequest(r),
	}
	for _, in := range req.Items {
		name := in.Name
		if name == "" {
			name = in.Title
		}
		draft.Items = append(draft.Items, models.OrderItem{
			ProductID: in.ID,
			Name:      name,
			Brand:     in.Brand,
			Price:     in.Price,
			Quantity:  max(in.Quantity, 1),
			Image:     in.Image,
		})
	}

	extRef, err := EncodeExternalReference(draft)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error al crear la preferencia de pago")
		return
	}

	result, err := s.gateway.CreatePreference(ctx,
		NormalizeItems(req.Items),
		NormalizePayer(req.Payer, req.CustomerInfo),
		extRef,
	)
	if err != nil {
		log.Println("CreatePreference error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error al crear la preferencia de pago")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

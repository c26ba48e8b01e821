package pay

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"time"

	"arabianx/db"
	"arabianx/models"
	"arabianx/mq"
	"arabianx/orders"
	"arabianx/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Seams over the order store; tests swap these to drive the approved-payment
// path without a live store.
var (
	findOrderByPaymentID = func(ctx context.Context, paymentID string) (models.Order, error) {
		var order models.Order
		err := db.OrderCollection.FindOne(ctx, bson.M{"paymentInfo.mercadoPagoId": paymentID}).Decode(&order)
		return order, err
	}
	insertOrder    = orders.InsertWithOrderNumber
	checkStock     = orders.CheckStock
	takeStock      = orders.DecrementStock
	emitOrderEvent = mq.EmitOrderEvent
)

// WebhookNotification is what the provider's query string carries.
type WebhookNotification struct {
	Topic     string
	PaymentID string
}

// ParseWebhookQuery reads topic/type and the payment id from either the
// plain or the data.id query shape the provider uses.
func ParseWebhookQuery(query url.Values) WebhookNotification {
	topic := query.Get("topic")
	if topic == "" {
		topic = query.Get("type")
	}

	id := query.Get("id")
	if id == "" {
		id = query.Get("data.id")
	}

	return WebhookNotification{Topic: topic, PaymentID: id}
}

// ReceiveWebhook acknowledges provider notifications. Business-rule failures
// still return 200 so the provider stops retrying deliveries a retry cannot
// fix; only a provider-API fault returns 5xx and invites a retry.
func (s *Service) ReceiveWebhook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	note := ParseWebhookQuery(r.URL.Query())
	if note.Topic != "payment" || note.PaymentID == "" {
		w.WriteHeader(http.StatusOK)
		return
	}

	// Never trust webhook payload fields; fetch the payment from the
	// provider's own API.
	payment, err := s.gateway.GetPayment(ctx, note.PaymentID)
	if err != nil {
		log.Println("webhook: payment fetch error:", err)
		http.Error(w, "payment lookup failed", http.StatusInternalServerError)
		return
	}

	if payment.Status != "approved" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := s.persistApprovedPayment(ctx, payment); err != nil {
		log.Println("webhook: order persist error:", err)
		http.Error(w, "order persist failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// persistApprovedPayment creates the order for an approved payment exactly
// once. The pre-insert lookup is the fast path; the unique index on
// paymentInfo.mercadoPagoId settles concurrent duplicate deliveries.
func (s *Service) persistApprovedPayment(ctx context.Context, payment *PaymentResult) error {
	existing, err := findOrderByPaymentID(ctx, payment.ID)
	if err == nil {
		log.Printf("webhook: payment %s already processed as %s", payment.ID, existing.OrderNumber)
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	draft, err := DecodeExternalReference(payment.ExternalReference)
	if err != nil {
		// Nothing to build an order from; a retry will not fix the payload.
		log.Printf("webhook: skipping order for payment %s: %v", payment.ID, err)
		return nil
	}

	// Unlike checkout, a short stock position does not block: the customer
	// already paid. Flag it for fulfilment instead.
	if err := checkStock(ctx, draft.Items); err != nil {
		log.Printf("webhook: stock warning for payment %s: %v", payment.ID, err)
	}

	order := models.Order{
		OrderID:      utils.GenerateID("o"),
		UserID:       draft.UserID,
		CustomerInfo: draft.CustomerInfo,
		Items:        draft.Items,
		Total:        draft.Total(),
		Status:       orders.StatusConfirmed,
		DeliveryType: deliveryTypeOrDefault(draft.DeliveryType),
		PaymentInfo: models.PaymentInfo{
			MercadoPagoID: payment.ID,
			Status:        payment.Status,
			PaymentType:   payment.PaymentType,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := insertOrder(ctx, &order); err != nil {
		// Only a duplicate on the payment-id index means another delivery of
		// this notification won the race; any other failure (an exhausted
		// orderNumber retry included) must surface so the provider retries.
		if db.IsDuplicateKeyOnIndex(err, db.IdxUniqueMPPayment) {
			log.Printf("webhook: duplicate delivery for payment %s", payment.ID)
			return nil
		}
		return err
	}

	for _, item := range order.Items {
		if err := takeStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Printf("webhook: stock decrement failed for %s on order %s: %v",
				item.ProductID, order.OrderNumber, err)
		}
	}

	emitOrderEvent(ctx, models.OrderEvent{
		Type:        "order_created",
		OrderID:     order.OrderID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		Total:       order.Total,
	})

	return nil
}

func deliveryTypeOrDefault(deliveryType string) string {
	if deliveryType == models.DeliveryShipping {
		return models.DeliveryShipping
	}
	return models.DeliveryPickup
}

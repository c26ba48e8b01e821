package pay

import (
	"encoding/json"
	"fmt"

	"arabianx/models"
)

// OrderDraft travels through the provider's opaque external_reference field
// from preference creation to the webhook, where it becomes the Order.
type OrderDraft struct {
	CustomerInfo models.CustomerInfo `json:"customerInfo"`
	Items        []models.OrderItem  `json:"items"`
	DeliveryType string              `json:"deliveryType"`
	UserID       string              `json:"userId,omitempty"`
}

func EncodeExternalReference(draft OrderDraft) (string, error) {
	data, err := json.Marshal(draft)
	if err != nil {
		return "", fmt.Errorf("encode external reference: %w", err)
	}
	return string(data), nil
}

func DecodeExternalReference(raw string) (OrderDraft, error) {
	var draft OrderDraft
	if raw == "" {
		return draft, fmt.Errorf("empty external reference")
	}
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return draft, fmt.Errorf("decode external reference: %w", err)
	}
	if len(draft.Items) == 0 {
		return draft, fmt.Errorf("external reference carries no items")
	}
	return draft, nil
}

// Total sums the draft's line prices; the provider-confirmed amount is not
// trusted for the order record.
func (d OrderDraft) Total() float64 {
	total := 0.0
	for _, item := range d.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

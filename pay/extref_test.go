package pay

import (
	"strings"
	"testing"

	"arabianx/models"
)

func TestExternalReferenceRoundTrip(t *testing.T) {
	draft := OrderDraft{
		CustomerInfo: models.CustomerInfo{
			Name: "Ana", LastName: "Pérez", Email: "ana@example.com",
			Phone: "1144445555", DNI: "30111222",
		},
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Oud Royal", Brand: "Lattafa", Price: 45000, Quantity: 2},
			{ProductID: "p2", Name: "Ámbar Noir", Brand: "Armaf", Price: 32000, Quantity: 1},
		},
		DeliveryType: models.DeliveryShipping,
		UserID:       "u123",
	}

	raw, err := EncodeExternalReference(draft)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeExternalReference(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.UserID != draft.UserID {
		t.Errorf("UserID = %q, want %q", got.UserID, draft.UserID)
	}
	if got.DeliveryType != models.DeliveryShipping {
		t.Errorf("DeliveryType = %q, want %q", got.DeliveryType, models.DeliveryShipping)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(got.Items))
	}
	if got.Items[0].ProductID != "p1" || got.Items[0].Quantity != 2 {
		t.Errorf("first item = %+v", got.Items[0])
	}
	if got.CustomerInfo.DNI != "30111222" {
		t.Errorf("DNI = %q", got.CustomerInfo.DNI)
	}
}

func TestDecodeExternalReference_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", "empty external reference"},
		{"not json", "ORD-20250314-0001", "decode external reference"},
		{"no items", `{"customerInfo":{"name":"Ana"},"items":[]}`, "no items"},
		{"items missing", `{"customerInfo":{"name":"Ana"}}`, "no items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeExternalReference(tt.raw)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestOrderDraftTotal(t *testing.T) {
	draft := OrderDraft{Items: []models.OrderItem{
		{Price: 45000, Quantity: 2},
		{Price: 32000, Quantity: 1},
	}}
	if got := draft.Total(); got != 122000 {
		t.Errorf("Total() = %v, want 122000", got)
	}

	empty := OrderDraft{}
	if got := empty.Total(); got != 0 {
		t.Errorf("empty Total() = %v, want 0", got)
	}
}

package orders_test

import (
	"strings"
	"testing"

	"arabianx/orders"
)

func TestReceiptPayloadRoundTrip(t *testing.T) {
	payload := orders.ReceiptPayload("o1a2b3c4d5e6", "ORD-20250314-0007")

	orderID, ok := orders.VerifyReceiptPayload(payload)
	if !ok {
		t.Fatal("freshly built payload did not verify")
	}
	if orderID != "o1a2b3c4d5e6" {
		t.Errorf("verified order id = %q, want %q", orderID, "o1a2b3c4d5e6")
	}
}

func TestVerifyReceiptPayload_Rejects(t *testing.T) {
	good := orders.ReceiptPayload("o1a2b3c4d5e6", "ORD-20250314-0007")

	tests := []struct {
		name    string
		payload string
	}{
		{"empty", ""},
		{"missing signature", "o1a2b3c4d5e6|ORD-20250314-0007"},
		{"tampered order id", strings.Replace(good, "o1a2b3c4d5e6", "oXXXXXXXXXXX", 1)},
		{"tampered order number", strings.Replace(good, "0007", "0008", 1)},
		{"garbage signature", "o1a2b3c4d5e6|ORD-20250314-0007|bm90LWEtc2ln"},
		{"too many parts", good + "|extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := orders.VerifyReceiptPayload(tt.payload); ok {
				t.Errorf("VerifyReceiptPayload(%q) accepted, want reject", tt.payload)
			}
		})
	}
}

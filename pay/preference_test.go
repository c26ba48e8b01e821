package pay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"arabianx/models"
)

// mockGateway swaps the provider for tests.
type mockGateway struct {
	createFunc func(ctx context.Context, items []CheckoutItem, payer Payer, externalReference string) (*PreferenceResult, error)
	getFunc    func(ctx context.Context, id string) (*PaymentResult, error)
}

func (m *mockGateway) CreatePreference(ctx context.Context, items []CheckoutItem, payer Payer, externalReference string) (*PreferenceResult, error) {
	return m.createFunc(ctx, items, payer, externalReference)
}

func (m *mockGateway) GetPayment(ctx context.Context, id string) (*PaymentResult, error) {
	return m.getFunc(ctx, id)
}

func TestNormalizeItems(t *testing.T) {
	tests := []struct {
		name  string
		input preferenceItemInput
		want  CheckoutItem
	}{
		{
			name:  "title kept as-is",
			input: preferenceItemInput{ID: "p1", Title: "Oud Royal", Quantity: 2, Price: 45000},
			want:  CheckoutItem{ID: "p1", Title: "Oud Royal", Quantity: 2, UnitPrice: 45000},
		},
		{
			name:  "name fills missing title",
			input: preferenceItemInput{ID: "p1", Name: "Oud Royal", Quantity: 1, Price: 45000},
			want:  CheckoutItem{ID: "p1", Title: "Oud Royal", Quantity: 1, UnitPrice: 45000},
		},
		{
			name:  "placeholder when both missing",
			input: preferenceItemInput{ID: "p1", Quantity: 1, Price: 45000},
			want:  CheckoutItem{ID: "p1", Title: "Producto", Quantity: 1, UnitPrice: 45000},
		},
		{
			name:  "zero quantity coerced to one",
			input: preferenceItemInput{ID: "p1", Title: "Oud", Quantity: 0, Price: 45000},
			want:  CheckoutItem{ID: "p1", Title: "Oud", Quantity: 1, UnitPrice: 45000},
		},
		{
			name:  "negative quantity coerced to one",
			input: preferenceItemInput{ID: "p1", Title: "Oud", Quantity: -2, Price: 45000},
			want:  CheckoutItem{ID: "p1", Title: "Oud", Quantity: 1, UnitPrice: 45000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeItems([]preferenceItemInput{tt.input})
			if len(got) != 1 {
				t.Fatalf("got %d items, want 1", len(got))
			}
			if got[0] != tt.want {
				t.Errorf("NormalizeItems() = %+v, want %+v", got[0], tt.want)
			}
		})
	}
}

func TestNormalizePayer(t *testing.T) {
	info := models.CustomerInfo{
		Name: "Ana", LastName: "Pérez", Email: "ana@example.com",
		Phone: "1144445555", DNI: "30111222",
	}

	t.Run("empty payer takes customer info defaults", func(t *testing.T) {
		got := NormalizePayer(Payer{}, info)
		want := Payer{Name: "Ana", Surname: "Pérez", Email: "ana@example.com", Phone: "1144445555", DNI: "30111222"}
		if got != want {
			t.Errorf("NormalizePayer() = %+v, want %+v", got, want)
		}
	})

	t.Run("explicit payer fields win", func(t *testing.T) {
		got := NormalizePayer(Payer{Email: "otro@example.com"}, info)
		if got.Email != "otro@example.com" {
			t.Errorf("Email = %q, payer field should win", got.Email)
		}
		if got.Name != "Ana" {
			t.Errorf("Name = %q, missing field should fall back", got.Name)
		}
	})
}

func TestCreatePreferenceHandler(t *testing.T) {
	t.Run("happy path returns id and init point", func(t *testing.T) {
		var gotExtRef string
		svc := NewService(&mockGateway{
			createFunc: func(_ context.Context, items []CheckoutItem, payer Payer, extRef string) (*PreferenceResult, error) {
				gotExtRef = extRef
				if len(items) != 1 || items[0].Title != "Oud Royal" {
					t.Errorf("items = %+v", items)
				}
				return &PreferenceResult{ID: "pref-1", InitPoint: "https://mp.example/init"}, nil
			},
		})

		body := `{"items":[{"id":"p1","title":"Oud Royal","quantity":2,"price":45000}],
			"customerInfo":{"name":"Ana","lastName":"Pérez","email":"ana@example.com"}}`
		req := httptest.NewRequest(http.MethodPost, "/api/payment/create-preference", strings.NewReader(body))
		rec := httptest.NewRecorder()

		svc.CreatePreference(rec, req, nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var result PreferenceResult
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if result.ID != "pref-1" || result.InitPoint != "https://mp.example/init" {
			t.Errorf("result = %+v", result)
		}

		draft, err := DecodeExternalReference(gotExtRef)
		if err != nil {
			t.Fatalf("external reference should carry the order draft: %v", err)
		}
		if draft.Items[0].ProductID != "p1" || draft.Items[0].Quantity != 2 {
			t.Errorf("draft item = %+v", draft.Items[0])
		}
	})

	t.Run("empty cart is a 400", func(t *testing.T) {
		svc := NewService(&mockGateway{})
		req := httptest.NewRequest(http.MethodPost, "/api/payment/create-preference", strings.NewReader(`{"items":[]}`))
		rec := httptest.NewRecorder()

		svc.CreatePreference(rec, req, nil)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		svc := NewService(&mockGateway{})
		req := httptest.NewRequest(http.MethodPost, "/api/payment/create-preference", strings.NewReader(`{`))
		rec := httptest.NewRecorder()

		svc.CreatePreference(rec, req, nil)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("gateway failure is a 500", func(t *testing.T) {
		svc := NewService(&mockGateway{
			createFunc: func(context.Context, []CheckoutItem, Payer, string) (*PreferenceResult, error) {
				return nil, context.DeadlineExceeded
			},
		})
		body := `{"items":[{"id":"p1","title":"Oud","quantity":1,"price":45000}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/payment/create-preference", strings.NewReader(body))
		rec := httptest.NewRecorder()

		svc.CreatePreference(rec, req, nil)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}

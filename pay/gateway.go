package pay

import (
	"context"
	"fmt"
	"strconv"

	"arabianx/globals"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// CheckoutItem is a normalized preference line.
type CheckoutItem struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type Payer struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	DNI     string `json:"dni"`
}

type PreferenceResult struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

type PaymentResult struct {
	ID                string
	Status            string
	PaymentType       string
	ExternalReference string
}

// Gateway abstracts the payment provider so webhook and checkout logic can
// be exercised without the live API.
type Gateway interface {
	CreatePreference(ctx context.Context, items []CheckoutItem, payer Payer, externalReference string) (*PreferenceResult, error)
	GetPayment(ctx context.Context, id string) (*PaymentResult, error)
}

// mercadoPago is the production Gateway.
type mercadoPago struct {
	preferences preference.Client
	payments    payment.Client
}

// NewMercadoPago builds a Gateway from the configured access token.
func NewMercadoPago() (Gateway, error) {
	cfg, err := config.New(globals.MPAccessToken())
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &mercadoPago{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
	}, nil
}

func (mp *mercadoPago) CreatePreference(ctx context.Context, items []CheckoutItem, payer Payer, externalReference string) (*PreferenceResult, error) {
	req := preference.Request{
		Items:             make([]preference.ItemRequest, 0, len(items)),
		ExternalReference: externalReference,
		AutoReturn:        "approved",
		BackURLs: &preference.BackURLsRequest{
			Success: globals.FrontendURL() + "/success",
			Failure: globals.FrontendURL() + "/failure",
			Pending: globals.FrontendURL() + "/pending",
		},
		Payer: &preference.PayerRequest{
			Name:    payer.Name,
			Surname: payer.Surname,
			Email:   payer.Email,
			Phone: &preference.PhoneRequest{
				Number: payer.Phone,
			},
			Identification: &preference.IdentificationRequest{
				Type:   "DNI",
				Number: payer.DNI,
			},
		},
	}

	for _, item := range items {
		req.Items = append(req.Items, preference.ItemRequest{
			ID:         item.ID,
			Title:      item.Title,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			CurrencyID: "ARS",
		})
	}

	resource, err := mp.preferences.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &PreferenceResult{ID: resource.ID, InitPoint: resource.InitPoint}, nil
}

func (mp *mercadoPago) GetPayment(ctx context.Context, id string) (*PaymentResult, error) {
	numericID, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("payment id %q is not numeric", id)
	}

	resource, err := mp.payments.Get(ctx, numericID)
	if err != nil {
		return nil, fmt.Errorf("get payment %s: %w", id, err)
	}

	return &PaymentResult{
		ID:                strconv.Itoa(resource.ID),
		Status:            resource.Status,
		PaymentType:       resource.PaymentTypeID,
		ExternalReference: resource.ExternalReference,
	}, nil
}

package orders

import (
	"context"

	"restaurant/pkg/models"
)

// PaymentGateway is the external payment collaborator. The real gateway
// lives outside this service; it either accepts the charge or it doesn't.
type PaymentGateway interface {
	Charge(ctx context.Context, userID int, amount float64, method models.PaymentMethod) error
}

// AcceptAllGateway approves every charge. Stand-in used until a real
// gateway client is wired in deployment config.
type AcceptAllGateway struct{}

func (AcceptAllGateway) Charge(_ context.Context, _ int, _ float64, _ models.PaymentMethod) error {
	return nil
}

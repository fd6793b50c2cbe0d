package orders

import (
	"context"

	"restaurant/pkg/apperrors"
	"restaurant/pkg/models"

	"github.com/google/uuid"
)

// Service owns the order lifecycle: creation at checkout, the pending
// queue, staff pickup, and the picked -> in_progress -> completed tail.
type Service struct {
	orders     OrderRepository
	processing ProcessingRepository
	validator  *CheckoutValidator
	gateway    PaymentGateway
}

func NewService(orders OrderRepository, processing ProcessingRepository, validator *CheckoutValidator, gateway PaymentGateway) *Service {
	return &Service{
		orders:     orders,
		processing: processing,
		validator:  validator,
		gateway:    gateway,
	}
}

// CreateOrder validates the cart against current store state, charges the
// payment gateway, and persists the order with snapshotted line prices.
// Cart drift aborts before any money moves or any row is written.
func (s *Service) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	if len(req.Lines) == 0 {
		return nil, apperrors.Validation("cart is empty")
	}

	result, err := s.validator.Validate(ctx, req.Lines)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &apperrors.PriceMismatchError{Corrected: result.Corrected}
	}

	var total float64
	lines := make([]models.OrderLineItem, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, models.OrderLineItem{
			ItemID:          line.ItemID,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.Price,
		})
		total += line.Price * line.Quantity
	}

	if err := s.gateway.Charge(ctx, req.UserID, total, req.PaymentMethod); err != nil {
		return nil, apperrors.Validation("payment failed: %v", err)
	}

	order := models.Order{
		Reference:  uuid.NewString(),
		UserID:     req.UserID,
		Status:     models.OrderPaid,
		TotalPrice: total,
		Note:       req.Note,
	}

	orderID, err := s.orders.CreateOrder(ctx, order, lines)
	if err != nil {
		return nil, err
	}

	return s.orders.GetOrder(ctx, orderID)
}

func (s *Service) GetOrder(ctx context.Context, orderID int) (*models.Order, error) {
	return s.orders.GetOrder(ctx, orderID)
}

// ListPending returns paid orders nobody is working on yet.
func (s *Service) ListPending(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListPending(ctx)
}

// Pick claims an order for a staff member. The store arbitrates
// concurrent claims; exactly one of two racing picks succeeds, the other
// gets a conflict.
func (s *Service) Pick(ctx context.Context, orderID, staffID int) (*models.OrderProcessingRecord, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderPaid {
		return nil, apperrors.Validation("order %d is not paid", orderID)
	}

	return s.processing.InsertRecord(ctx, orderID, staffID)
}

// Advance moves a processing record one step along the state machine.
func (s *Service) Advance(ctx context.Context, processingID int, next models.ProcessingStatus) (*models.OrderProcessingRecord, error) {
	if !next.Valid() {
		return nil, apperrors.Validation("unknown status %q", string(next))
	}

	record, err := s.processing.GetRecord(ctx, processingID)
	if err != nil {
		return nil, err
	}

	if !record.Status.CanTransition(next) {
		return nil, &apperrors.InvalidTransitionError{From: record.Status, To: next}
	}

	return s.processing.TransitionRecord(ctx, processingID, record.Status, next)
}

// ListPickedBy returns the orders a staff member currently holds.
func (s *Service) ListPickedBy(ctx context.Context, staffID int) ([]models.Order, error) {
	return s.orders.ListPickedBy(ctx, staffID)
}

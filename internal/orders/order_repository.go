package orders

import (
	"context"
	"fmt"

	"restaurant/internal/repository"
	"restaurant/pkg/apperrors"
	"restaurant/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order models.Order, lines []models.OrderLineItem) (int, error)
	GetOrder(ctx context.Context, id int) (*models.Order, error)
	ListPending(ctx context.Context) ([]models.Order, error)
	ListPickedBy(ctx context.Context, staffID int) ([]models.Order, error)
}

type orderRepositoryImpl struct {
	repository *repository.Repository
}

func NewOrderRepository(r *repository.Repository) OrderRepository {
	return &orderRepositoryImpl{repository: r}
}

// CreateOrder persists the order row and its line items as one
// transaction; either all rows land or none do.
func (r *orderRepositoryImpl) CreateOrder(ctx context.Context, order models.Order, lines []models.OrderLineItem) (int, error) {
	var orderID int

	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		query := tx.Insert("orders").
			Rows(goqu.Record{
				"reference":   order.Reference,
				"user_id":     order.UserID,
				"status":      order.Status,
				"total_price": order.TotalPrice,
				"note":        order.Note,
			}).
			Returning("id")

		found, err := query.Executor().ScanValContext(ctx, &orderID)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}
		if !found {
			return fmt.Errorf("insert order returned no id")
		}

		rows := make([]interface{}, 0, len(lines))
		for _, line := range lines {
			rows = append(rows, goqu.Record{
				"order_id":          orderID,
				"item_id":           line.ItemID,
				"quantity":          line.Quantity,
				"price_at_purchase": line.PriceAtPurchase,
			})
		}

		if _, err := tx.Insert("order_items").Rows(rows...).Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to insert order lines: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return orderID, nil
}

var orderColumns = []interface{}{
	"id", "reference", "user_id", "status", "total_price", "note",
	"order_time", "updated_at",
}

func (r *orderRepositoryImpl) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	var order models.Order
	query := r.repository.GoquDBWrapper.
		Select(orderColumns...).
		From("orders").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStructContext(ctx, &order)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if !found {
		return nil, apperrors.NotFound("order", id)
	}

	var lines []models.OrderLineItem
	linesQuery := r.repository.GoquDBWrapper.
		Select("order_id", "item_id", "quantity", "price_at_purchase").
		From("order_items").
		Where(goqu.Ex{"order_id": id})

	if err := linesQuery.Executor().ScanStructsContext(ctx, &lines); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	order.Lines = lines

	return &order, nil
}

// ListPending returns paid orders that no staff member currently holds:
// orders with no processing record in a non-terminal status.
func (r *orderRepositoryImpl) ListPending(ctx context.Context) ([]models.Order, error) {
	active := r.repository.GoquDBWrapper.
		Select("order_id").
		From("order_processing").
		Where(goqu.C("status").Neq(string(models.ProcessingCompleted)))

	query := r.repository.GoquDBWrapper.
		Select(orderColumns...).
		From("orders").
		Where(
			goqu.C("status").Eq(string(models.OrderPaid)),
			goqu.C("id").NotIn(active),
		).
		Order(goqu.I("order_time").Asc())

	var pending []models.Order
	if err := query.Executor().ScanStructsContext(ctx, &pending); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	return pending, nil
}

// ListPickedBy returns orders whose active processing record belongs to
// the staff member.
func (r *orderRepositoryImpl) ListPickedBy(ctx context.Context, staffID int) ([]models.Order, error) {
	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("o.id"), goqu.I("o.reference"), goqu.I("o.user_id"),
			goqu.I("o.status"), goqu.I("o.total_price"), goqu.I("o.note"),
			goqu.I("o.order_time"), goqu.I("o.updated_at"),
		).
		From(goqu.T("orders").As("o")).
		Join(
			goqu.T("order_processing").As("op"),
			goqu.On(goqu.I("op.order_id").Eq(goqu.I("o.id"))),
		).
		Where(
			goqu.I("op.staff_id").Eq(staffID),
			goqu.I("op.status").Neq(string(models.ProcessingCompleted)),
		).
		Order(goqu.I("op.picked_at").Asc())

	var picked []models.Order
	if err := query.Executor().ScanStructsContext(ctx, &picked); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	return picked, nil
}

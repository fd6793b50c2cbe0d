package catalog

import (
	"context"
	"fmt"

	"restaurant/internal/repository"
	"restaurant/pkg/apperrors"
	"restaurant/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type ItemRepository interface {
	GetItem(ctx context.Context, id int) (*models.Item, error)
	GetItems(ctx context.Context) ([]models.Item, error)
	GetItemsByID(ctx context.Context, ids []int) ([]models.Item, error)
	PersistItem(ctx context.Context, req models.CreateItemRequest) (int, error)
	UpdateItem(ctx context.Context, id int, req models.UpdateItemRequest) error
	DeleteItem(ctx context.Context, id int) error
}

type itemRepositoryImpl struct {
	repository *repository.Repository
}

func NewItemRepository(r *repository.Repository) ItemRepository {
	return &itemRepositoryImpl{repository: r}
}

var itemColumns = []interface{}{
	"id", "name", "description", "stock_quantity", "low_stock_threshold",
	"unit", "price", "for_sale", "category_id", "created_at", "updated_at",
}

func (r *itemRepositoryImpl) GetItem(ctx context.Context, id int) (*models.Item, error) {
	var item models.Item
	query := r.repository.GoquDBWrapper.
		Select(itemColumns...).
		From("items").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStructContext(ctx, &item)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if !found {
		return nil, apperrors.NotFound("item", id)
	}

	return &item, nil
}

func (r *itemRepositoryImpl) GetItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	query := r.repository.GoquDBWrapper.
		Select(itemColumns...).
		From("items").
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructsContext(ctx, &items); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	return items, nil
}

func (r *itemRepositoryImpl) GetItemsByID(ctx context.Context, ids []int) ([]models.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var items []models.Item
	query := r.repository.GoquDBWrapper.
		Select(itemColumns...).
		From("items").
		Where(goqu.C("id").In(ids))

	if err := query.Executor().ScanStructsContext(ctx, &items); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	return items, nil
}

func (r *itemRepositoryImpl) PersistItem(ctx context.Context, req models.CreateItemRequest) (int, error) {
	query := r.repository.GoquDBWrapper.Insert("items").
		Rows(goqu.Record{
			"name":                req.Name,
			"description":         req.Description,
			"stock_quantity":      req.StockQuantity,
			"low_stock_threshold": req.LowStockThreshold,
			"unit":                req.Unit,
			"price":               req.Price,
			"for_sale":            req.ForSale,
			"category_id":         req.CategoryID,
		}).
		Returning("id")

	var id int
	found, err := query.Executor().ScanValContext(ctx, &id)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return 0, apperrors.Conflict(fmt.Sprintf("item %q already exists", req.Name))
		}
		if apperrors.IsForeignKeyViolation(err) {
			return 0, apperrors.NotFound("category", req.CategoryID)
		}
		return 0, fmt.Errorf("failed to insert item: %w", err)
	}
	if !found {
		return 0, fmt.Errorf("insert item returned no id")
	}

	return id, nil
}

func (r *itemRepositoryImpl) UpdateItem(ctx context.Context, id int, req models.UpdateItemRequest) error {
	record := goqu.Record{"updated_at": goqu.L("NOW()")}
	if req.Name != nil {
		record["name"] = *req.Name
	}
	if req.Description != nil {
		record["description"] = *req.Description
	}
	if req.StockQuantity != nil {
		record["stock_quantity"] = *req.StockQuantity
	}
	if req.LowStockThreshold != nil {
		record["low_stock_threshold"] = *req.LowStockThreshold
	}
	if req.Unit != nil {
		record["unit"] = *req.Unit
	}
	if req.Price != nil {
		record["price"] = *req.Price
	}
	if req.ForSale != nil {
		record["for_sale"] = *req.ForSale
	}
	if req.CategoryID != nil {
		record["category_id"] = *req.CategoryID
	}

	query := r.repository.GoquDBWrapper.Update("items").
		Set(record).
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("item", id)
	}

	return nil
}

func (r *itemRepositoryImpl) DeleteItem(ctx context.Context, id int) error {
	query := r.repository.GoquDBWrapper.Delete("items").
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().ExecContext(ctx)
	if err != nil {
		if apperrors.IsForeignKeyViolation(err) {
			return apperrors.Conflict(fmt.Sprintf("item %d is still referenced by ingredient edges or orders", id))
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("item", id)
	}

	return nil
}

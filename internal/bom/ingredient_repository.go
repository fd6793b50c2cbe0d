package bom

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restaurant/internal/repository"
	"restaurant/pkg/apperrors"
	"restaurant/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type IngredientRepository interface {
	InsertEdge(ctx context.Context, edge models.IngredientEdge) error
	UpdateEdgeQuantity(ctx context.Context, edge models.IngredientEdge) error
	DeleteEdge(ctx context.Context, itemID, ingredientID int) error
	GetEdges(ctx context.Context, itemID int) ([]models.IngredientEdge, error)
}

type ingredientRepositoryImpl struct {
	repository *repository.Repository
}

func NewIngredientRepository(r *repository.Repository) IngredientRepository {
	return &ingredientRepositoryImpl{repository: r}
}

func (r *ingredientRepositoryImpl) InsertEdge(ctx context.Context, edge models.IngredientEdge) error {
	query := r.repository.GoquDBWrapper.Insert("item_ingredients").
		Rows(goqu.Record{
			"item_to_create_id":  edge.ItemToCreateID,
			"ingredient_item_id": edge.IngredientItemID,
			"quantity":           edge.Quantity,
		})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return apperrors.Validation("item %d already lists item %d as an ingredient", edge.ItemToCreateID, edge.IngredientItemID)
		}
		if apperrors.IsForeignKeyViolation(err) {
			return apperrors.NotFound("item", edge.IngredientItemID)
		}
		return fmt.Errorf("failed to insert ingredient edge: %w", err)
	}

	return nil
}

func (r *ingredientRepositoryImpl) UpdateEdgeQuantity(ctx context.Context, edge models.IngredientEdge) error {
	query := r.repository.GoquDBWrapper.Update("item_ingredients").
		Set(goqu.Record{"quantity": edge.Quantity}).
		Where(goqu.Ex{
			"item_to_create_id":  edge.ItemToCreateID,
			"ingredient_item_id": edge.IngredientItemID,
		})

	result, err := query.Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update ingredient edge: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("ingredient edge", edge.IngredientItemID)
	}

	return nil
}

func (r *ingredientRepositoryImpl) DeleteEdge(ctx context.Context, itemID, ingredientID int) error {
	query := r.repository.GoquDBWrapper.Delete("item_ingredients").
		Where(goqu.Ex{
			"item_to_create_id":  itemID,
			"ingredient_item_id": ingredientID,
		})

	result, err := query.Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete ingredient edge: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("ingredient edge", ingredientID)
	}

	return nil
}

func (r *ingredientRepositoryImpl) GetEdges(ctx context.Context, itemID int) ([]models.IngredientEdge, error) {
	query := r.repository.GoquDBWrapper.
		Select("item_to_create_id", "ingredient_item_id", "quantity").
		From("item_ingredients").
		Where(goqu.Ex{"item_to_create_id": itemID}).
		Order(goqu.I("ingredient_item_id").Asc())

	var edges []models.IngredientEdge
	if err := query.Executor().ScanStructsContext(ctx, &edges); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.StoreUnavailable(err)
	}

	return edges, nil
}

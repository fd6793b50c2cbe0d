package catalog

import (
	"context"
	"fmt"

	"restaurant/internal/repository"
	"restaurant/pkg/apperrors"
	"restaurant/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type CategoryRepository interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	PersistCategory(ctx context.Context, name string) (int, error)
	DeleteCategory(ctx context.Context, id int) error
}

type categoryRepositoryImpl struct {
	repository *repository.Repository
}

func NewCategoryRepository(r *repository.Repository) CategoryRepository {
	return &categoryRepositoryImpl{repository: r}
}

func (r *categoryRepositoryImpl) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	query := r.repository.GoquDBWrapper.
		Select("id", "name").
		From("categories").
		Order(goqu.I("name").Asc())

	if err := query.Executor().ScanStructsContext(ctx, &categories); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	return categories, nil
}

func (r *categoryRepositoryImpl) PersistCategory(ctx context.Context, name string) (int, error) {
	query := r.repository.GoquDBWrapper.Insert("categories").
		Rows(goqu.Record{"name": name}).
		Returning("id")

	var id int
	found, err := query.Executor().ScanValContext(ctx, &id)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return 0, apperrors.Conflict(fmt.Sprintf("category %q already exists", name))
		}
		return 0, fmt.Errorf("failed to insert category: %w", err)
	}
	if !found {
		return 0, fmt.Errorf("insert category returned no id")
	}

	return id, nil
}

func (r *categoryRepositoryImpl) DeleteCategory(ctx context.Context, id int) error {
	query := r.repository.GoquDBWrapper.Delete("categories").
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().ExecContext(ctx)
	if err != nil {
		if apperrors.IsForeignKeyViolation(err) {
			return apperrors.Conflict(fmt.Sprintf("category %d still has items", id))
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("category", id)
	}

	return nil
}

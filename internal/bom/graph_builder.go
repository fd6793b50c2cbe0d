package bom

import (
	"context"

	"restaurant/internal/repository"
	"restaurant/pkg/apperrors"
	"restaurant/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// GraphBuilder folds the item_ingredients edge set into an adjacency map.
// Pure read of store state at call time; on failure no partial graph is
// returned.
type GraphBuilder interface {
	Build(ctx context.Context) (models.BOMGraph, error)
}

type graphBuilderImpl struct {
	repository *repository.Repository
}

func NewGraphBuilder(r *repository.Repository) GraphBuilder {
	return &graphBuilderImpl{repository: r}
}

func (b *graphBuilderImpl) Build(ctx context.Context) (models.BOMGraph, error) {
	query := b.repository.GoquDBWrapper.
		Select("item_to_create_id", "ingredient_item_id").
		From("item_ingredients").
		Order(goqu.I("item_to_create_id").Asc(), goqu.I("ingredient_item_id").Asc())

	var edges []models.IngredientEdge
	if err := query.Executor().ScanStructsContext(ctx, &edges); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	graph := make(models.BOMGraph, len(edges))
	for _, edge := range edges {
		graph[edge.ItemToCreateID] = append(graph[edge.ItemToCreateID], edge.IngredientItemID)
	}

	return graph, nil
}

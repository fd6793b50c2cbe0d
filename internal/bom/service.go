package bom

import (
	"context"

	"restaurant/pkg/apperrors"
	"restaurant/pkg/models"
)

// ItemCatalog is the slice of the catalog the resolver needs.
type ItemCatalog interface {
	GetItem(ctx context.Context, id int) (*models.Item, error)
	GetItems(ctx context.Context) ([]models.Item, error)
}

// Service owns the ingredient edge set and answers availability queries
// against the cached graph.
type Service struct {
	edges   IngredientRepository
	catalog ItemCatalog
	cache   *GraphCache
}

func NewService(edges IngredientRepository, catalog ItemCatalog, cache *GraphCache) *Service {
	return &Service{
		edges:   edges,
		catalog: catalog,
		cache:   cache,
	}
}

// AddIngredient links an ingredient to an item. Rejects self-reference,
// duplicates, and any edge that would close a cycle, then invalidates the
// cached graph as part of the same logical operation.
func (s *Service) AddIngredient(ctx context.Context, edge models.IngredientEdge) error {
	if edge.ItemToCreateID == edge.IngredientItemID {
		return apperrors.Validation("item %d cannot be its own ingredient", edge.ItemToCreateID)
	}
	if edge.Quantity <= 0 {
		return apperrors.Validation("ingredient quantity must be positive")
	}

	if _, err := s.catalog.GetItem(ctx, edge.ItemToCreateID); err != nil {
		return err
	}
	if _, err := s.catalog.GetItem(ctx, edge.IngredientItemID); err != nil {
		return err
	}

	graph, err := s.cache.Get(ctx)
	if err != nil {
		return err
	}
	if graph.Reaches(edge.IngredientItemID, edge.ItemToCreateID) {
		return apperrors.Validation("adding item %d as an ingredient of item %d would create a cycle",
			edge.IngredientItemID, edge.ItemToCreateID)
	}

	if err := s.edges.InsertEdge(ctx, edge); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) UpdateIngredient(ctx context.Context, edge models.IngredientEdge) error {
	if edge.Quantity <= 0 {
		return apperrors.Validation("ingredient quantity must be positive")
	}

	if err := s.edges.UpdateEdgeQuantity(ctx, edge); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) RemoveIngredient(ctx context.Context, itemID, ingredientID int) error {
	if err := s.edges.DeleteEdge(ctx, itemID, ingredientID); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) GetIngredients(ctx context.Context, itemID int) ([]models.IngredientEdge, error) {
	if _, err := s.catalog.GetItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.edges.GetEdges(ctx, itemID)
}

// AvailableIngredientsFor returns the catalog items that may legally be
// added as a new ingredient of itemID: everything except the item itself
// and its current ingredients.
func (s *Service) AvailableIngredientsFor(ctx context.Context, itemID int) ([]models.Item, error) {
	if _, err := s.catalog.GetItem(ctx, itemID); err != nil {
		return nil, err
	}

	graph, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	excluded := map[int]bool{itemID: true}
	for _, id := range graph.Ingredients(itemID) {
		excluded[id] = true
	}

	items, err := s.catalog.GetItems(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]models.Item, 0, len(items))
	for _, item := range items {
		if !excluded[item.ID] {
			available = append(available, item)
		}
	}

	return available, nil
}

// ItemsUsingIngredient is the reverse lookup: which items list itemID as
// an ingredient. Folds the graph by destination.
func (s *Service) ItemsUsingIngredient(ctx context.Context, itemID int) ([]models.Item, error) {
	if _, err := s.catalog.GetItem(ctx, itemID); err != nil {
		return nil, err
	}

	graph, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	users := map[int]bool{}
	for parent, ingredients := range graph {
		for _, id := range ingredients {
			if id == itemID {
				users[parent] = true
				break
			}
		}
	}

	items, err := s.catalog.GetItems(ctx)
	if err != nil {
		return nil, err
	}

	var result []models.Item
	for _, item := range items {
		if users[item.ID] {
			result = append(result, item)
		}
	}

	return result, nil
}
